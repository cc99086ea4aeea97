package model

// AnswerKind discriminates the two answer shapes
type AnswerKind string

const (
	AnswerScalar AnswerKind = "scalar" // free text or a chosen single option's label
	AnswerChoice AnswerKind = "choice" // multi-select: option keys plus custom free-text entries
)

// CustomEntry is a free-text value supplied for an option that demands one
type CustomEntry struct {
	Option string `json:"option"` // label of the option that requested the text
	Value  string `json:"value"`
}

// Answer is a tagged variant: exactly one of the two shapes is populated,
// discriminated by Kind. Recording overwrites; answers are never removed
// until session reset.
type Answer struct {
	Kind     AnswerKind    `json:"kind"`
	Scalar   string        `json:"scalar,omitempty"`
	Selected []string      `json:"selected,omitempty"` // option keys in selection order
	Custom   []CustomEntry `json:"custom,omitempty"`
}

// NewScalar builds a scalar answer.
func NewScalar(value string) *Answer {
	return &Answer{Kind: AnswerScalar, Scalar: value}
}

// NewChoice builds an empty multi-select answer.
func NewChoice() *Answer {
	return &Answer{Kind: AnswerChoice, Selected: []string{}, Custom: []CustomEntry{}}
}

// IsChoice reports whether the answer carries selection state.
func (a *Answer) IsChoice() bool {
	return a != nil && a.Kind == AnswerChoice
}

// HasSelections reports whether anything was selected or supplied as custom text.
func (a *Answer) HasSelections() bool {
	return a.IsChoice() && (len(a.Selected) > 0 || len(a.Custom) > 0)
}
