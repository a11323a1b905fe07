package gremlin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/diwise/graph-explorer/pkg/graph/errors"
	"github.com/diwise/graph-explorer/pkg/graph/values"
)

// GenericValue is the envelope of every typed GraphSON value
type GenericValue struct {
	Type  string          `json:"@type"`
	Value json.RawMessage `json:"@value"`
}

type vertexValue struct {
	ID         json.RawMessage            `json:"id"`
	Label      string                     `json:"label"`
	Properties map[string]json.RawMessage `json:"properties"`
}

type vertexPropertyValue struct {
	ID    json.RawMessage `json:"id"`
	Label string          `json:"label"`
	Value json.RawMessage `json:"value"`
}

type edgeValue struct {
	ID         json.RawMessage            `json:"id"`
	Label      string                     `json:"label"`
	InVLabel   string                     `json:"inVLabel"`
	OutVLabel  string                     `json:"outVLabel"`
	InV        json.RawMessage            `json:"inV"`
	OutV       json.RawMessage            `json:"outV"`
	Properties map[string]json.RawMessage `json:"properties"`
}

type propertyValue struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type pathValue struct {
	Labels  json.RawMessage `json:"labels"`
	Objects json.RawMessage `json:"objects"`
}

type relationIdentifier struct {
	RelationID string `json:"relationId"`
}

// Decode reads a Gremlin Server response and returns the flattened values of result.data.
// Dialect error envelopes are returned as errors.
func Decode(body []byte) ([]values.Value, error) {
	v, err := DecodeResult(body)
	if err != nil {
		return nil, err
	}
	return values.Flatten(v), nil
}

// DecodeResult is like Decode but keeps the nesting of lists and maps. A g:Map is
// returned as a list of alternating keys and values.
func DecodeResult(body []byte) (values.Value, error) {
	data, err := resultData(body)
	if err != nil {
		return values.Value{}, err
	}

	if data == nil {
		return values.List([]values.Value{}), nil
	}

	v, ok, err := decodeValue(data)
	if err != nil {
		return values.Value{}, errors.NewDecodeError(err.Error(), body)
	}

	if !ok {
		return values.List([]values.Value{}), nil
	}

	return v, nil
}

func resultData(body []byte) (json.RawMessage, error) {
	if err := errors.NewErrorFromEnvelope(body); err != nil {
		return nil, err
	}

	response := struct {
		Result *struct {
			Data json.RawMessage `json:"data"`
		} `json:"result"`
	}{}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.NewDecodeError(fmt.Sprintf("failed to unmarshal gremlin response: %s", err.Error()), body)
	}

	if response.Result == nil {
		return nil, errors.NewDecodeError("gremlin response without result", body)
	}

	if isNull(response.Result.Data) {
		return nil, nil
	}

	return response.Result.Data, nil
}

// decodeValue returns false when the value carries an unrecognized type tag
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
		list, err := decodeElements(elements)
		return values.List(list), true, err
	case '{':
		gv, isTagged, err := tagOf(raw)
		if err != nil {
			return values.Value{}, false, err
		}
		if !isTagged {
			var object map[string]json.RawMessage
			if err := json.Unmarshal(raw, &object); err != nil {
				return values.Value{}, false, err
			}
			// untyped maps are read like g:Map, with keys in sorted order
			keys := slices.Sorted(maps.Keys(object))
			list := make([]values.Value, 0, 2*len(keys))
			for _, k := range keys {
				v, ok, err := decodeValue(object[k])
				if err != nil {
					return values.Value{}, false, err
				}
				if ok {
					list = append(list, values.Scalar(k), v)
				}
			}
			return values.List(list), true, nil
		}
		return decodeTagged(gv)
	default:
		s, err := decodePlainScalar(raw)
		if err != nil {
			return values.Value{}, false, err
		}
		return values.Scalar(s), true, nil
	}
}

func decodeTagged(gv GenericValue) (values.Value, bool, error) {
	switch gv.Type {
	case "g:List", "g:Set":
		var elements []json.RawMessage
		if err := json.Unmarshal(gv.Value, &elements); err != nil {
			return values.Value{}, false, fmt.Errorf("invalid %s: %w", gv.Type, err)
		}
		list, err := decodeElements(elements)
		return values.List(list), true, err
	case "g:Map":
		// keys and values alternate, both are kept
		var elements []json.RawMessage
		if err := json.Unmarshal(gv.Value, &elements); err != nil {
			return values.Value{}, false, fmt.Errorf("invalid g:Map: %w", err)
		}
		list, err := decodeElements(elements)
		return values.List(list), true, err
	case "g:BulkSet":
		// values alternate with their bulk count
		var elements []json.RawMessage
		if err := json.Unmarshal(gv.Value, &elements); err != nil {
			return values.Value{}, false, fmt.Errorf("invalid g:BulkSet: %w", err)
		}
		items := make([]json.RawMessage, 0, len(elements)/2+1)
		for i := 0; i < len(elements); i += 2 {
			items = append(items, elements[i])
		}
		list, err := decodeElements(items)
		return values.List(list), true, err
	case "g:Path":
		var path pathValue
		if err := json.Unmarshal(gv.Value, &path); err != nil {
			return values.Value{}, false, fmt.Errorf("invalid g:Path: %w", err)
		}
		return decodeValue(path.Objects)
	case "g:Vertex":
		v, err := decodeVertex(gv.Value)
		if err != nil {
			return values.Value{}, false, err
		}
		return values.Vertex(v), true, nil
	case "g:Edge":
		e, err := decodeEdge(gv.Value)
		if err != nil {
			return values.Value{}, false, err
		}
		return values.Edge(e), true, nil
	case "g:VertexProperty":
		var vp vertexPropertyValue
		if err := json.Unmarshal(gv.Value, &vp); err != nil {
			return values.Value{}, false, fmt.Errorf("invalid g:VertexProperty: %w", err)
		}
		s, err := decodeScalar(vp.Value)
		return values.Scalar(s), true, err
	case "g:Property":
		var p propertyValue
		if err := json.Unmarshal(gv.Value, &p); err != nil {
			return values.Value{}, false, fmt.Errorf("invalid g:Property: %w", err)
		}
		s, err := decodeScalar(p.Value)
		return values.Scalar(s), true, err
	}

	s, ok, err := decodeTypedScalar(gv)
	if err != nil || !ok {
		return values.Value{}, false, err
	}

	return values.Scalar(s), true, nil
}

// decodeTypedScalar returns false for tags that are not known scalar types
func decodeTypedScalar(gv GenericValue) (any, bool, error) {
	switch gv.Type {
	case "g:Int32", "g:Int64", "gx:Byte", "gx:Int16", "gx:BigInteger":
		var n json.Number
		if err := unmarshal(gv.Value, &n); err != nil {
			return nil, false, fmt.Errorf("invalid %s: %w", gv.Type, err)
		}
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return nil, false, fmt.Errorf("invalid %s: %w", gv.Type, err)
			}
			return f, true, nil
		}
		return i, true, nil
	case "g:Double", "g:Float", "gx:BigDecimal":
		var f any
		if err := unmarshal(gv.Value, &f); err != nil {
			return nil, false, fmt.Errorf("invalid %s: %w", gv.Type, err)
		}
		switch v := f.(type) {
		case json.Number:
			n, err := v.Float64()
			return n, err == nil, err
		case string:
			// NaN and Infinity are sent as strings
			return v, true, nil
		default:
			return nil, false, fmt.Errorf("invalid %s", gv.Type)
		}
	case "g:Date", "g:Timestamp":
		var ms int64
		if err := json.Unmarshal(gv.Value, &ms); err != nil {
			return nil, false, fmt.Errorf("invalid %s: %w", gv.Type, err)
		}
		return time.UnixMilli(ms).UTC(), true, nil
	case "g:UUID", "g:T", "g:Direction", "g:Class":
		var s string
		if err := json.Unmarshal(gv.Value, &s); err != nil {
			return nil, false, fmt.Errorf("invalid %s: %w", gv.Type, err)
		}
		return s, true, nil
	case "janusgraph:RelationIdentifier":
		var ri relationIdentifier
		if err := json.Unmarshal(gv.Value, &ri); err != nil {
			return nil, false, fmt.Errorf("invalid relation identifier: %w", err)
		}
		return ri.RelationID, true, nil
	}

	return nil, false, nil
}

func decodeElements(elements []json.RawMessage) ([]values.Value, error) {
	list := make([]values.Value, 0, len(elements))
	for _, element := range elements {
		v, ok, err := decodeValue(element)
		if err != nil {
			return nil, err
		}
		if ok {
			list = append(list, v)
		}
	}
	return list, nil
}

func decodeVertex(raw json.RawMessage) (values.RawVertex, error) {
	var v vertexValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return values.RawVertex{}, fmt.Errorf("invalid g:Vertex: %w", err)
	}

	id, err := decodeID(v.ID)
	if err != nil {
		return values.RawVertex{}, fmt.Errorf("invalid g:Vertex id: %w", err)
	}

	vertex := values.RawVertex{
		ID:     id,
		Labels: []string{v.Label},
	}

	if v.Properties == nil {
		return vertex, nil
	}

	vertex.Properties = make(map[string]any, len(v.Properties))
	for name, raw := range v.Properties {
		value, err := decodeProperty(raw)
		if err != nil {
			return values.RawVertex{}, fmt.Errorf("invalid vertex property %s: %w", name, err)
		}
		vertex.Properties[name] = value
	}

	return vertex, nil
}

func decodeEdge(raw json.RawMessage) (values.RawEdge, error) {
	var e edgeValue
	if err := json.Unmarshal(raw, &e); err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid g:Edge: %w", err)
	}

	id, err := decodeID(e.ID)
	if err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid g:Edge id: %w", err)
	}

	source, err := decodeID(e.OutV)
	if err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid g:Edge outV: %w", err)
	}

	target, err := decodeID(e.InV)
	if err != nil {
		return values.RawEdge{}, fmt.Errorf("invalid g:Edge inV: %w", err)
	}

	edge := values.RawEdge{
		ID:           id,
		Label:        e.Label,
		SourceID:     source,
		SourceLabels: nonEmpty(e.OutVLabel),
		TargetID:     target,
		TargetLabels: nonEmpty(e.InVLabel),
	}

	if e.Properties == nil {
		return edge, nil
	}

	edge.Properties = make(map[string]any, len(e.Properties))
	for name, raw := range e.Properties {
		value, err := decodeProperty(raw)
		if err != nil {
			return values.RawEdge{}, fmt.Errorf("invalid edge property %s: %w", name, err)
		}
		edge.Properties[name] = value
	}

	return edge, nil
}

// decodeProperty unwraps vertex properties (a list of property records, of which the
// first is used) and edge properties (a single record)
func decodeProperty(raw json.RawMessage) (any, error) {
	v, ok, err := decodeValue(raw)
	if err != nil || !ok {
		return nil, err
	}

	for _, element := range values.Flatten(v) {
		if s, isScalar := element.Scalar(); isScalar {
			return s, nil
		}
	}

	return nil, nil
}

func decodeScalar(raw json.RawMessage) (any, error) {
	return decodeProperty(raw)
}

func decodeID(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil, fmt.Errorf("missing id")
	}

	if raw[0] == '{' {
		gv, isTagged, err := tagOf(raw)
		if err != nil {
			return nil, err
		}
		if !isTagged {
			return nil, fmt.Errorf("unsupported id %s", string(raw))
		}
		switch gv.Type {
		case "g:Int32", "g:Int64", "gx:Byte", "gx:Int16", "gx:BigInteger":
			var n json.Number
			if err := unmarshal(gv.Value, &n); err != nil {
				return nil, fmt.Errorf("invalid %s: %w", gv.Type, err)
			}
			return numericID(n), nil
		}
		id, ok, err := decodeTypedScalar(gv)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unsupported id type %s", gv.Type)
		}
		return id, nil
	}

	var id any
	if err := unmarshal(raw, &id); err != nil {
		return nil, err
	}

	if n, ok := id.(json.Number); ok {
		return numericID(n), nil
	}

	return id, nil
}

// numericID keeps the exact digits of identifiers that do not fit in an int64
func numericID(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	return n
}

func decodePlainScalar(raw json.RawMessage) (any, error) {
	var s any
	if err := unmarshal(raw, &s); err != nil {
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

func tagOf(raw json.RawMessage) (GenericValue, bool, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return GenericValue{}, false, err
	}

	typ, hasType := envelope["@type"]
	value, hasValue := envelope["@value"]
	if !hasType || !hasValue {
		return GenericValue{}, false, nil
	}

	gv := GenericValue{Value: value}
	if err := json.Unmarshal(typ, &gv.Type); err != nil {
		return GenericValue{}, false, err
	}

	return gv, true, nil
}

func unmarshal(data []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	return d.Decode(v)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func nonEmpty(label string) []string {
	if label == "" {
		return nil
	}
	return []string{label}
}
