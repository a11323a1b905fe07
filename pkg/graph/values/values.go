// Package values holds the dialect independent representation of decoded wire values
// and maps them into the normalized vertex and edge model.
package values

// Kind discriminates the variants of a decoded Value
type Kind int

const (
	KindVertex Kind = iota
	KindEdge
	KindScalar
	KindList
)

// RawVertex is a vertex as read from the wire. A nil Properties map means that the
// wire record did not carry properties at all.
type RawVertex struct {
	ID         any
	Labels     []string
	Properties map[string]any
}

// RawEdge is an edge as read from the wire. Source and target labels are optional.
type RawEdge struct {
	ID           any
	Label        string
	SourceID     any
	SourceLabels []string
	TargetID     any
	TargetLabels []string
	Properties   map[string]any
}

// Value is a closed variant over vertex, edge, scalar and list
type Value struct {
	kind   Kind
	vertex *RawVertex
	edge   *RawEdge
	scalar any
	list   []Value
}

func Vertex(v RawVertex) Value { return Value{kind: KindVertex, vertex: &v} }
func Edge(e RawEdge) Value     { return Value{kind: KindEdge, edge: &e} }
func Scalar(s any) Value       { return Value{kind: KindScalar, scalar: s} }
func List(l []Value) Value     { return Value{kind: KindList, list: l} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Vertex() (RawVertex, bool) {
	if v.kind != KindVertex {
		return RawVertex{}, false
	}
	return *v.vertex, true
}

func (v Value) Edge() (RawEdge, bool) {
	if v.kind != KindEdge {
		return RawEdge{}, false
	}
	return *v.edge, true
}

func (v Value) Scalar() (any, bool) {
	if v.kind != KindScalar {
		return nil, false
	}
	return v.scalar, true
}

func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Flatten removes all list nesting, keeping element order
func Flatten(vals ...Value) []Value {
	result := make([]Value, 0, len(vals))
	for _, v := range vals {
		if v.kind == KindList {
			result = append(result, Flatten(v.list...)...)
			continue
		}
		result = append(result, v)
	}
	return result
}
