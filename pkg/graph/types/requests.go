package types

type Operator string

const (
	OperatorEq   Operator = "eq"
	OperatorNeq  Operator = "neq"
	OperatorGt   Operator = "gt"
	OperatorGte  Operator = "gte"
	OperatorLt   Operator = "lt"
	OperatorLte  Operator = "lte"
	OperatorLike Operator = "like"
)

// Criterion is a single attribute filter. DataType decides how Value is rendered
// in a query, regardless of the runtime type of Value.
type Criterion struct {
	Name     string        `json:"name"`
	Operator Operator      `json:"operator"`
	Value    any           `json:"value"`
	DataType AttributeType `json:"dataType,omitempty"`
}

type Paging struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type NeighborsRequest struct {
	VertexID       VertexID    `json:"vertexId"`
	VertexTypes    []string    `json:"filterByVertexTypes,omitempty"`
	EdgeTypes      []string    `json:"edgeTypes,omitempty"`
	FilterCriteria []Criterion `json:"filterCriteria,omitempty"`
	Paging
}

type NeighborCountsRequest struct {
	VertexIDs []VertexID `json:"vertexIds"`
}

// SearchByID is the attribute name that makes a keyword search also match identifiers
const SearchByID string = "__id"

type KeywordSearchRequest struct {
	SearchTerm  string   `json:"searchTerm"`
	VertexTypes []string `json:"vertexTypes,omitempty"`
	Attributes  []string `json:"searchByAttributes,omitempty"`
	ExactMatch  bool     `json:"exactMatch,omitempty"`

	// CaseInsensitive makes a non exact search use a regular expression
	CaseInsensitive bool `json:"caseInsensitive,omitempty"`
	Paging
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type Sort struct {
	Attribute string        `json:"attribute"`
	Direction SortDirection `json:"direction"`
}

type FilterAndSortRequest struct {
	VertexTypes    []string    `json:"vertexTypes,omitempty"`
	FilterCriteria []Criterion `json:"filterCriteria,omitempty"`
	Sorting        []Sort      `json:"sorting,omitempty"`
	Paging
}
