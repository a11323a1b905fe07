package types

import (
	"strings"
	"time"
)

// VertexID and EdgeID carry an origin tag, see package ids
type VertexID string
type EdgeID string

// LabelSeparator delimits the labels of a multi labeled entity in a single wire label
const LabelSeparator string = "::"

// Attributes maps attribute names to decoded scalars. Values are one of
// string, int64, float64, bool, time.Time or Missing.
type Attributes map[string]any

type Vertex struct {
	ID         VertexID   `json:"id"`
	Type       string     `json:"type"`
	Types      []string   `json:"types"`
	Attributes Attributes `json:"attributes"`
	IsFragment bool       `json:"isFragment"`
}

type Edge struct {
	ID          EdgeID     `json:"id"`
	Type        string     `json:"type"`
	SourceID    VertexID   `json:"sourceId"`
	SourceTypes []string   `json:"sourceTypes"`
	TargetID    VertexID   `json:"targetId"`
	TargetTypes []string   `json:"targetTypes"`
	Attributes  Attributes `json:"attributes"`
	IsFragment  bool       `json:"isFragment"`
}

// MissingValue marks an attribute that is present on the wire with a null value
type MissingValue struct{}

func (MissingValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

var Missing = MissingValue{}

// SplitLabels explodes every composite label on the label separator, dropping empty parts
func SplitLabels(labels ...string) []string {
	result := make([]string, 0, len(labels))
	for _, l := range labels {
		for part := range strings.SplitSeq(l, LabelSeparator) {
			if part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}

// AttributeType is the coarse type inferred for an attribute, or requested for a criterion value
type AttributeType string

const (
	String  AttributeType = "String"
	Number  AttributeType = "Number"
	Date    AttributeType = "Date"
	Boolean AttributeType = "Boolean"
)

// InferType derives the coarse type of a decoded scalar
func InferType(value any) AttributeType {
	switch value.(type) {
	case int, int32, int64, float32, float64:
		return Number
	case time.Time:
		return Date
	case bool:
		return Boolean
	default:
		return String
	}
}
