package analysis

import "github.com/samber/lo"

// Result is the payload returned by the analysis service. Optional fields are
// pointers or nil slices so that an absent key can be told apart from an
// empty one.
type Result struct {
	// Always present, whatever the mode.
	Summary   *string    `json:"summary" validate:"required"`
	Persons   []string   `json:"persons" validate:"required"`
	Sentiment *Sentiment `json:"sentiment" validate:"required"`

	// Guaranteed by the service only in financial mode.
	StatisticalInsights []string `json:"statistical_insights,omitempty"`
	FinancialStatus     *string  `json:"financial_status,omitempty"`

	// Financial enrichment, may legitimately be empty.
	Organizations []string `json:"organizations,omitempty"`

	// May be wholly absent or carry empty lists.
	ContactInfo *ContactInfo `json:"contact_info,omitempty"`
}

// Sentiment holds the polarity and subjectivity scores.
type Sentiment struct {
	Polarity     *float64 `json:"polarity" validate:"required"`
	Subjectivity *float64 `json:"subjectivity" validate:"required"`
}

// ContactInfo lists contact details found in the document.
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// Details returns the emails and phones with blank entries removed. A nil
// receiver has none.
func (c *ContactInfo) Details() (emails, phones []string) {
	if c == nil {
		return nil, nil
	}
	return lo.Compact(c.Emails), lo.Compact(c.Phones)
}

// IsEmpty reports whether no non-blank contact detail is present
func (c *ContactInfo) IsEmpty() bool {
	emails, phones := c.Details()
	return len(emails) == 0 && len(phones) == 0
}

// SummaryText returns the summary or "" when absent.
func (r *Result) SummaryText() string {
	if r == nil || r.Summary == nil {
		return ""
	}
	return *r.Summary
}

// FinancialStatusText returns the financial status label or "" when absent.
func (r *Result) FinancialStatusText() string {
	if r == nil || r.FinancialStatus == nil {
		return ""
	}
	return *r.FinancialStatus
}

// CheckContract verifies the mode-conditional presence guarantees. Financial
// mode requires statistical insights and a financial status.
func (r *Result) CheckContract(mode Mode) error {
	if !mode.IsFinancial() {
		return nil
	}
	if r.StatisticalInsights == nil {
		return NewContractError("statistical_insights", mode)
	}
	if r.FinancialStatus == nil {
		return NewContractError("financial_status", mode)
	}
	return nil
}

// ForMode returns a copy of the result holding only the fields the mode is
// allowed to expose. Financial fields are dropped in basic mode even when the
// service sent them.
func (r *Result) ForMode(mode Mode) *Result {
	if r == nil {
		return nil
	}
	out := *r
	if !mode.IsFinancial() {
		out.StatisticalInsights = nil
		out.Organizations = nil
		out.FinancialStatus = nil
	}
	return &out
}

// String and float helpers for building results in code and tests.

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 {
	return &f
}
