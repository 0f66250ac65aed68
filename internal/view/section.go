// Package view projects an analysis result onto ordered display sections.
// It has no side effects and never reaches the network.
package view

import "encoding/json"

// Kind identifies a section
type Kind string

const (
	KindSummary             Kind = "summary"
	KindPersons             Kind = "persons"
	KindStatisticalInsights Kind = "statistical_insights"
	KindOrganizations       Kind = "organizations"
	KindFinancialStatus     Kind = "financial_status"
	KindSentiment           Kind = "sentiment"
	KindContact             Kind = "contact_info"
)

// NoContactMessage is shown when no contact detail was found
const NoContactMessage = "no contact information found"

// ListDelimiter joins emails and phones on one line
const ListDelimiter = ", "

// Section is one block of rendered output. Exactly one of Text, Items or
// Fields carries the content; Items is kept (possibly empty) for list
// sections.
type Section struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	Text   string   `json:"text,omitempty"`
	Items  []string `json:"items,omitempty"`
	Fields []Field  `json:"fields,omitempty"`
}

// HasText reports whether the section carries its content in Text
func (s Section) HasText() bool {
	switch s.Kind {
	case KindSummary, KindFinancialStatus:
		return true
	case KindContact:
		return len(s.Fields) == 0
	default:
		return false
	}
}

// sectionJSON is the wire shape of a Section. Pointers keep an empty text
// or list visible where the kind calls for one.
type sectionJSON struct {
	Kind   Kind      `json:"kind"`
	Title  string    `json:"title"`
	Text   *string   `json:"text,omitempty"`
	Items  *[]string `json:"items,omitempty"`
	Fields []Field   `json:"fields,omitempty"`
}

// MarshalJSON always emits items for list kinds and text for text kinds,
// even when empty
func (s Section) MarshalJSON() ([]byte, error) {
	out := sectionJSON{Kind: s.Kind, Title: s.Title, Fields: s.Fields}
	if s.HasText() || s.Text != "" {
		text := s.Text
		out.Text = &text
	}
	if s.IsList() {
		items := s.Items
		if items == nil {
			items = []string{}
		}
		out.Items = &items
	} else if len(s.Items) > 0 {
		out.Items = &s.Items
	}
	return json.Marshal(out)
}

// Field is a labelled value inside a section
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// IsList reports whether the section renders as a bullet list
func (s Section) IsList() bool {
	switch s.Kind {
	case KindPersons, KindStatisticalInsights, KindOrganizations:
		return true
	default:
		return false
	}
}

var titles = map[Kind]string{
	KindSummary:             "Summary",
	KindPersons:             "Persons",
	KindStatisticalInsights: "Statistical Insights",
	KindOrganizations:       "Organizations",
	KindFinancialStatus:     "Financial Status",
	KindSentiment:           "Sentiment",
	KindContact:             "Contact Information",
}

// Title returns the display title for a kind
func Title(kind Kind) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return string(kind)
}

// Find returns the first section of the given kind
func Find(sections []Section, kind Kind) (Section, bool) {
	for _, s := range sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}
