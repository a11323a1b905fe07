package opencypher

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/graph-explorer/pkg/graph/values"
)

const (
	entityTypeNode         string = "node"
	entityTypeRelationship string = "relationship"
)

type node struct {
	ID         json.RawMessage            `json:"~id"`
	EntityType string                     `json:"~entityType"`
	Labels     []string                   `json:"~labels"`
	Properties map[string]json.RawMessage `json:"~properties"`
}

type relationship struct {
	ID         json.RawMessage            `json:"~id"`
	EntityType string                     `json:"~entityType"`
	Type       string                     `json:"~type"`
	Start      json.RawMessage            `json:"~start"`
	End        json.RawMessage            `json:"~end"`
	Properties map[string]json.RawMessage `json:"~properties"`
}

// edgeRow is a relationship together with the labels of its endpoints
type edgeRow struct {
	Edge        json.RawMessage `json:"edge"`
	SourceTypes []string        `json:"sourceTypes"`
	TargetTypes []string        `json:"targetTypes"`
}

type field struct {
	name  string
	value json.RawMessage
}

// Decode reads an openCypher response and returns the flattened values of all result
// rows, column by column. Dialect error envelopes are returned as errors.
func Decode(body []byte) ([]values.Value, error) {
	rows, err := resultRows(body)
	if err != nil {
		return nil, err
	}

	decoded := make([]values.Value, 0, len(rows))
	for _, row := range rows {
		v, ok, err := decodeValue(row)
		if err != nil {
			return nil, errors.NewDecodeError(err.Error(), body)
		}
		if ok {
			decoded = append(decoded, v)
		}
	}

	return values.Flatten(decoded...), nil
}

// DecodeRows unmarshals every result row into a T
func DecodeRows[T any](body []byte) ([]T, error) {
	rows, err := resultRows(body)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(rows))
	for _, row := range rows {
		var t T
		if err := json.Unmarshal(row, &t); err != nil {
			return nil, errors.NewDecodeError(fmt.Sprintf("unexpected row: %s", err.Error()), body)
		}
		result = append(result, t)
	}

	return result, nil
}

func resultRows(body []byte) ([]json.RawMessage, error) {
	if err := errors.NewErrorFromEnvelope(body); err != nil {
		return nil, err
	}

	response := struct {
		Results *[]json.RawMessage `json:"results"`
	}{}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.NewDecodeError(fmt.Sprintf("failed to unmarshal openCypher response: %s", err.Error()), body)
	}

	if response.Results == nil {
		return nil, errors.NewDecodeError("openCypher response without results", body)
	}

	return *response.Results, nil
}

// decodeValue returns false for entities of an unknown entity type
func decodeValue(raw json.RawMessage) (values.Value, bool, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 || isNull(raw) {
		return values.Scalar(nil), true, nil
	}

	switch raw[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			return values.Value{}, false, err
		}
		list := make([]values.Value, 0, len(elements))
		for _, element := range elements {
			v, ok, err := decodeValue(element)
			if err != nil {
				return values.Value{}, false, err
			}
			if ok {
				list = append(list, v)
			}
		}
		return values.List(list), true, nil
	case '{':
		return decodeObject(raw)
	default:
		s, err := decodeScalar(raw)
		if err != nil {
			return values.Value{}, false, err
		}
		return values.Scalar(s), true, nil
	}
}

func decodeObject(raw json.RawMessage) (values.Value, bool, error) {
	fields, err := objectFields(raw)
	if err != nil {
		return values.Value{}, false, err
	}

	byName := make(map[string]json.RawMessage, len(fields))
	for _, f := range fields {
		byName[f.name] = f.value
	}

	if entityType, ok := byName["~entityType"]; ok {
		var et string
		if err := json.Unmarshal(entityType, &et); err != nil {
			return values.Value{}, false, fmt.Errorf("invalid entity type: %w", err)
		}

		switch et {
		case entityTypeNode:
			v, err := decodeNode(raw)
			if err != nil {
				return values.Value{}, false, err
			}
			return values.Vertex(v), true, nil
		case entityTypeRelationship:
			e, err := decodeRelationship(raw)
			if err != nil {
				return values.Value{}, false, err
			}
			return values.Edge(e), true, nil
		default:
			return values.Value{}, false, nil
		}
	}

	_, hasEdge := byName["edge"]
	_, hasSourceTypes := byName["sourceTypes"]
	_, hasTargetTypes := byName["targetTypes"]
	if hasEdge && (hasSourceTypes || hasTargetTypes) {
		e, err := decodeEdgeRow(raw)
		if err != nil {
			return values.Value{}, false, err
		}
		return values.Edge(e), true, nil
	}

	// plain maps keep their values in order, the keys are column or key names
	list := make([]values.Value, 0, len(fields))
	for _, f := range fields {
		v, ok, err := decodeValue(f.value)
		if err != nil {
			return values.Value{}, false, err
		}
		if ok {
			list = append(list, v)
		}
	}

	return values.List(list), true, nil
}

func decodeNode(raw json.RawMessage) (values.RawVertex, error) {
	var n node
	if err := json.Unmarshal(raw, &n); err != nil {
		return values.RawVertex{}, fmt.Errorf("invalid node: %w", err)
	}

	id, err := decodeID(n.ID)
	if err != nil {
		return values.RawVertex{}, fmt.Errorf("invalid node id: %w", err)
	}

	properties, err := decodeProperties(n.Properties)
	if err != nil {
		return values.RawVertex{}, fmt.Errorf("invalid node %v: %w", id, err)
	}

	return values.RawVertex{
		ID:         id,
		Labels:     n.Labels,
		Properties: properties,
	}, nil
}

func decodeRelationship(raw json.RawMessage) (values.RawEdge, error) {
	var r relationship
	if err := json.Unmarshal(raw, &r); err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid relationship: %w", err)
	}

	id, err := decodeID(r.ID)
	if err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid relationship id: %w", err)
	}

	start, err := decodeID(r.Start)
	if err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid relationship start: %w", err)
	}

	end, err := decodeID(r.End)
	if err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid relationship end: %w", err)
	}

	properties, err := decodeProperties(r.Properties)
	if err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid relationship %v: %w", id, err)
	}

	return values.RawEdge{
		ID:         id,
		Label:      r.Type,
		SourceID:   start,
		TargetID:   end,
		Properties: properties,
	}, nil
}

func decodeEdgeRow(raw json.RawMessage) (values.RawEdge, error) {
	var row edgeRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid edge row: %w", err)
	}

	e, err := decodeRelationship(row.Edge)
	if err != nil {
		return values.RawEdge{}, err
	}

	e.SourceLabels = row.SourceTypes
	e.TargetLabels = row.TargetTypes

	return e, nil
}

// decodeProperties keeps a nil map nil, multi valued properties are reduced to their first value
func decodeProperties(properties map[string]json.RawMessage) (map[string]any, error) {
	if properties == nil {
		return nil, nil
	}

	result := make(map[string]any, len(properties))
	for name, raw := range properties {
		v, ok, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}

		result[name] = nil
		if !ok {
			continue
		}

		for _, element := range values.Flatten(v) {
			if s, isScalar := element.Scalar(); isScalar {
				result[name] = s
				break
			}
		}
	}

	return result, nil
}

func decodeID(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil, fmt.Errorf("missing id")
	}

	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	var id any
	if err := d.Decode(&id); err != nil {
		return nil, err
	}

	switch v := id.(type) {
	case string:
		return v, nil
	case json.Number:
		// integers beyond the int64 range keep their exact digits
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported id %s", string(raw))
	}
}

func decodeScalar(raw json.RawMessage) (any, error) {
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	var s any
	if err := d.Decode(&s); err != nil {
		return nil, err
	}

	if n, ok := s.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	}

	return s, nil
}

// objectFields returns the members of a JSON object in document order
func objectFields(raw json.RawMessage) ([]field, error) {
	d := json.NewDecoder(bytes.NewReader(raw))

	t, err := d.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object")
	}

	fields := []field{}
	for d.More() {
		t, err := d.Token()
		if err != nil {
			return nil, err
		}

		name, ok := t.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key")
		}

		var value json.RawMessage
		if err := d.Decode(&value); err != nil {
			return nil, err
		}

		fields = append(fields, field{name: name, value: value})
	}

	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
