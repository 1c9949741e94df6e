package pipeline

import (
	"regexp"
	"strings"
)

// Fields holds the quotation metadata found in a document. Absent labels
// leave the field empty.
type Fields struct {
	Client         string // Auftraggeber
	Address        string // Adresse
	Issuer         string // Angebotssteller
	Date           string // Datum
	ValidityPeriod string // Gültigkeitsdauer
	QuoteNumber    string // Angebotsnummer
}

// IsZero reports whether no field was found.
func (f Fields) IsZero() bool {
	return f == Fields{}
}

// fieldLabel binds a literal label to the field it fills.
type fieldLabel struct {
	label   string
	field   func(*Fields) *string
	pattern *regexp.Regexp
}

// fieldLabels is the single place to add a label.
var fieldLabels = compileLabels([]fieldLabel{
	{label: "Auftraggeber", field: func(f *Fields) *string { return &f.Client }},
	{label: "Adresse", field: func(f *Fields) *string { return &f.Address }},
	{label: "Angebotssteller", field: func(f *Fields) *string { return &f.Issuer }},
	{label: "Datum", field: func(f *Fields) *string { return &f.Date }},
	{label: "Gültigkeitsdauer", field: func(f *Fields) *string { return &f.ValidityPeriod }},
	{label: "Angebotsnummer", field: func(f *Fields) *string { return &f.QuoteNumber }},
})

// compileLabels builds the line-anchored `**Label:** value` pattern of each row.
func compileLabels(rows []fieldLabel) []fieldLabel {
	for i := range rows {
		rows[i].pattern = regexp.MustCompile(`(?m)^\*\*` + regexp.QuoteMeta(rows[i].label) + `:\*\*[ \t]*(.*)$`)
	}
	return rows
}

// Labels returns the recognized labels in extraction order.
func Labels() []string {
	out := make([]string, len(fieldLabels))
	for i, l := range fieldLabels {
		out[i] = l.label
	}
	return out
}

// ExtractFields scans text for the labeled metadata lines. It returns the
// first value of each label, trimmed, and the text with every labeled line
// blanked out and surrounding whitespace trimmed. Labels are case-sensitive.
func ExtractFields(text string) (Fields, string) {
	var fields Fields
	body := text

	for _, l := range fieldLabels {
		if m := l.pattern.FindStringSubmatch(text); m != nil {
			*l.field(&fields) = strings.TrimSpace(m[1])
		}
		body = l.pattern.ReplaceAllLiteralString(body, "")
	}

	return fields, strings.TrimSpace(body)
}
