// Package report selects what a fetched contract renders as. All logic
// here is pure: it reads the model and produces display structures,
// never mutating stored values.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
)

// Field is one display row inside a section.
type Field struct {
	Label string
	Value string
}

// Section is one renderable block of extracted data. A section appears
// only when its source is present; fields appear only when non-empty.
type Section struct {
	Title  string
	Fields []Field
}

// ScoreRow is one confidence score prepared for display. Value is
// rounded to the nearest integer for display only; the stored float is
// left untouched.
type ScoreRow struct {
	Label string
	Value int
}

// GapSection is one non-empty gap-analysis list.
type GapSection struct {
	Title string
	Items []string
}

// View is everything the presentation layer renders for one contract.
type View struct {
	Sections []Section
	Scores   []ScoreRow
	Overall  *ScoreRow
	Gaps     []GapSection
}

// DisplayScore rounds a confidence value to the nearest integer for
// display.
func DisplayScore(v float64) int {
	return int(math.Round(v))
}

// Build assembles the display view for a contract. The extracted
// sections render only when the contract is completed and a report is
// present; scores and gaps render whenever present. A nil return means
// there is nothing beyond the lifecycle line to show.
func Build(c *model.Contract) *View {
	if c == nil || c.Status != model.StatusCompleted {
		return nil
	}
	if c.ExtractedData == nil && c.ConfidenceScores == nil && c.GapAnalysis == nil {
		return nil
	}

	v := &View{}
	if c.ExtractedData != nil {
		v.Sections = Sections(c.ExtractedData)
	}
	if c.ConfidenceScores != nil {
		v.Scores = scoreRows(c.ConfidenceScores)
		v.Overall = &ScoreRow{Label: "Overall", Value: DisplayScore(c.ConfidenceScores.OverallScore)}
	}
	if c.GapAnalysis != nil {
		v.Gaps = gapSections(c.GapAnalysis)
	}
	return v
}

// Sections converts extracted data into display sections, omitting
// absent sections entirely. An empty list and an absent list both
// render as nothing.
func Sections(d *model.ExtractedData) []Section {
	var out []Section

	if p := d.PartyIdentification; p != nil {
		out = appendSection(out, "Party Identification", []Field{
			{"Name", p.Name},
			{"Legal entity", p.LegalEntity},
			{"Registration", p.RegistrationDetails},
			{"Signatories", joinList(p.Signatories)},
			{"Roles", joinList(p.Roles)},
		})
	}
	if a := d.AccountInformation; a != nil {
		out = appendSection(out, "Account Information", []Field{
			{"Billing details", a.BillingDetails},
			{"Account numbers", joinList(a.AccountNumbers)},
			{"Contact info", joinMap(a.ContactInfo)},
		})
	}
	if f := d.FinancialDetails; f != nil {
		out = appendSection(out, "Financial Details", []Field{
			{"Total value", formatTotal(f.TotalValue, f.Currency)},
			{"Currency", f.Currency},
			{"Line items", countLabel(len(f.LineItems), "line item")},
			{"Additional fees", countLabel(len(f.AdditionalFees), "fee")},
		})
	}
	if p := d.PaymentStructure; p != nil {
		out = appendSection(out, "Payment Structure", []Field{
			{"Payment terms", p.PaymentTerms},
			{"Due dates", joinList(p.DueDates)},
			{"Payment methods", joinList(p.PaymentMethods)},
			{"Banking details", joinMap(p.BankingDetails)},
		})
	}
	if r := d.RevenueClassification; r != nil {
		out = appendSection(out, "Revenue Classification", []Field{
			{"Payment type", r.PaymentType},
			{"Billing cycle", r.BillingCycle},
			{"Renewal terms", r.RenewalTerms},
			{"Auto renewal", formatBool(r.AutoRenewal)},
		})
	}
	if s := d.ServiceLevelAgreements; s != nil {
		out = appendSection(out, "Service Level Agreements", []Field{
			{"Performance metrics", joinList(s.PerformanceMetrics)},
			{"Penalty clauses", joinList(s.PenaltyClauses)},
			{"Support terms", s.SupportTerms},
			{"Maintenance terms", s.MaintenanceTerms},
		})
	}

	return out
}

// appendSection adds the section with its empty fields dropped. A
// present section whose fields are all empty still renders its title:
// presence is meaningful.
func appendSection(out []Section, title string, fields []Field) []Section {
	kept := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Value != "" {
			kept = append(kept, f)
		}
	}
	return append(out, Section{Title: title, Fields: kept})
}

func scoreRows(s *model.ConfidenceScores) []ScoreRow {
	return []ScoreRow{
		{"Financial completeness", DisplayScore(s.FinancialCompleteness)},
		{"Party identification", DisplayScore(s.PartyIdentification)},
		{"Payment terms clarity", DisplayScore(s.PaymentTermsClarity)},
		{"SLA definition", DisplayScore(s.SLADefinition)},
		{"Contact information", DisplayScore(s.ContactInformation)},
	}
}

// gapSections keeps only the non-empty lists, in server order.
func gapSections(g *model.GapAnalysis) []GapSection {
	var out []GapSection
	if len(g.MissingFields) > 0 {
		out = append(out, GapSection{Title: "Missing fields", Items: g.MissingFields})
	}
	if len(g.IncompleteSections) > 0 {
		out = append(out, GapSection{Title: "Incomplete sections", Items: g.IncompleteSections})
	}
	if len(g.Recommendations) > 0 {
		out = append(out, GapSection{Title: "Recommendations", Items: g.Recommendations})
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

// joinMap renders a channel→value mapping in stable key order.
func joinMap(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func formatTotal(v *float64, currency string) string {
	if v == nil {
		return ""
	}
	if currency != "" {
		return fmt.Sprintf("%.2f %s", *v, currency)
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "yes"
	}
	return "no"
}

func countLabel(n int, noun string) string {
	if n == 0 {
		return ""
	}
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
