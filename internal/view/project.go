package view

import (
	"strconv"
	"strings"

	"github.com/yildizm/DocSum/internal/analysis"
)

// Project turns a result into display sections for the given mode. Sections
// come out in a fixed order: summary, persons, statistical insights,
// organizations, financial status, sentiment, contact information.
//
// Financial sections appear only in financial mode. Absent insights in that
// mode are a contract violation and are returned as an error together with
// no sections. A nil result yields no sections and no error.
func Project(result *analysis.Result, mode analysis.Mode) ([]Section, error) {
	if result == nil {
		return nil, nil
	}

	sections := make([]Section, 0, 7)
	sections = append(sections,
		textSection(KindSummary, result.SummaryText()),
		listSection(KindPersons, result.Persons),
	)

	if mode.IsFinancial() {
		if result.StatisticalInsights == nil {
			return nil, analysis.NewContractError("statistical_insights", mode)
		}
		sections = append(sections, listSection(KindStatisticalInsights, result.StatisticalInsights))

		if len(result.Organizations) > 0 {
			sections = append(sections, listSection(KindOrganizations, result.Organizations))
		}

		sections = append(sections, textSection(KindFinancialStatus, result.FinancialStatusText()))
	}

	sections = append(sections, sentimentSection(result.Sentiment), contactSection(result.ContactInfo))

	return sections, nil
}

func textSection(kind Kind, text string) Section {
	return Section{Kind: kind, Title: Title(kind), Text: text}
}

func listSection(kind Kind, items []string) Section {
	// Never nil so an empty list still renders as a list.
	copied := append(make([]string, 0, len(items)), items...)
	return Section{Kind: kind, Title: Title(kind), Items: copied}
}

func sentimentSection(s *analysis.Sentiment) Section {
	var polarity, subjectivity *float64
	if s != nil {
		polarity, subjectivity = s.Polarity, s.Subjectivity
	}
	return Section{
		Kind:  KindSentiment,
		Title: Title(KindSentiment),
		Fields: []Field{
			{Label: "Polarity", Value: formatNumber(polarity)},
			{Label: "Subjectivity", Value: formatNumber(subjectivity)},
		},
	}
}

// contactSection lists emails and phones, each line only when it has a
// non-blank entry. Blank entries count as absent.
func contactSection(info *analysis.ContactInfo) Section {
	section := Section{Kind: KindContact, Title: Title(KindContact)}

	emails, phones := info.Details()
	if len(emails) > 0 {
		section.Fields = append(section.Fields, Field{Label: "Emails", Value: strings.Join(emails, ListDelimiter)})
	}
	if len(phones) > 0 {
		section.Fields = append(section.Fields, Field{Label: "Phones", Value: strings.Join(phones, ListDelimiter)})
	}
	if len(section.Fields) == 0 {
		section.Text = NoContactMessage
	}
	return section
}

// formatNumber prints the shortest representation that round-trips, so 0.1
// stays "0.1".
func formatNumber(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
