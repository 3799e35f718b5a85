package report

import (
	"strings"
	"testing"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
)

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{82.4, 82},
		{82.5, 83},
		{82.6, 83},
		{0.0, 0},
		{100.0, 100},
		{99.49, 99},
	}

	for _, tt := range tests {
		if got := DisplayScore(tt.in); got != tt.want {
			t.Errorf("DisplayScore(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBuildRequiresCompletedWithReport(t *testing.T) {
	// Non-terminal contract renders nothing.
	if v := Build(&model.Contract{Status: model.StatusProcessing}); v != nil {
		t.Error("Expected nil view for processing contract")
	}

	// Completed without any report data: the accepted degraded state.
	if v := Build(&model.Contract{Status: model.StatusCompleted}); v != nil {
		t.Error("Expected nil view for completed contract without report")
	}

	// Failed contracts never render a report.
	if v := Build(&model.Contract{
		Status:        model.StatusFailed,
		ExtractedData: &model.ExtractedData{},
	}); v != nil {
		t.Error("Expected nil view for failed contract")
	}

	v := Build(&model.Contract{
		Status:        model.StatusCompleted,
		ExtractedData: &model.ExtractedData{PartyIdentification: &model.PartyInfo{Name: "Acme"}},
	})
	if v == nil {
		t.Fatal("Expected view for completed contract with report")
	}
}

func TestBuildDoesNotMutateScores(t *testing.T) {
	scores := &model.ConfidenceScores{OverallScore: 82.4, SLADefinition: 41.7}
	c := &model.Contract{Status: model.StatusCompleted, ConfidenceScores: scores}

	v := Build(c)
	if v.Overall.Value != 82 {
		t.Errorf("Expected displayed overall 82, got %d", v.Overall.Value)
	}
	// Rounding is display-only.
	if scores.OverallScore != 82.4 || scores.SLADefinition != 41.7 {
		t.Error("Expected stored scores to be unchanged")
	}
}

func TestSectionsOmitAbsent(t *testing.T) {
	d := &model.ExtractedData{
		PartyIdentification: &model.PartyInfo{
			Name:        "Acme",
			Signatories: []string{"A", "B"},
		},
		// All other sections absent.
	}

	sections := Sections(d)
	if len(sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "Party Identification" {
		t.Errorf("Unexpected section title %q", sections[0].Title)
	}

	var labels []string
	for _, f := range sections[0].Fields {
		labels = append(labels, f.Label)
	}
	got := strings.Join(labels, ",")
	if got != "Name,Signatories" {
		t.Errorf("Expected empty fields dropped, got %s", got)
	}
}

func TestSectionsPresentButEmpty(t *testing.T) {
	// A present section with no extractable fields still shows up: the
	// extractor found the section, just nothing in it.
	d := &model.ExtractedData{
		PaymentStructure: &model.PaymentStructure{},
	}

	sections := Sections(d)
	if len(sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(sections))
	}
	if len(sections[0].Fields) != 0 {
		t.Errorf("Expected no fields, got %d", len(sections[0].Fields))
	}
}

func TestGapSectionsOnlyNonEmpty(t *testing.T) {
	c := &model.Contract{
		Status: model.StatusCompleted,
		GapAnalysis: &model.GapAnalysis{
			MissingFields:   []string{"sla", "banking_details"},
			Recommendations: []string{},
		},
	}

	v := Build(c)
	if len(v.Gaps) != 1 {
		t.Fatalf("Expected 1 gap section, got %d", len(v.Gaps))
	}
	if v.Gaps[0].Title != "Missing fields" {
		t.Errorf("Unexpected gap title %q", v.Gaps[0].Title)
	}
	// Order is the server's.
	if v.Gaps[0].Items[0] != "sla" || v.Gaps[0].Items[1] != "banking_details" {
		t.Error("Expected server order preserved")
	}
}

func TestRenderFailedShowsMessageVerbatim(t *testing.T) {
	var b strings.Builder
	Render(&b, &model.Contract{
		ID:           "c1",
		Status:       model.StatusFailed,
		ErrorMessage: "corrupt file",
	})

	out := b.String()
	if !strings.Contains(out, "corrupt file") {
		t.Errorf("Expected verbatim failure message, got %q", out)
	}
}

func TestRenderProgressUnclamped(t *testing.T) {
	var b strings.Builder
	Render(&b, &model.Contract{
		ID:       "c2",
		Status:   model.StatusProcessing,
		Progress: 140,
	})

	if !strings.Contains(b.String(), "140%") {
		t.Errorf("Expected unclamped progress, got %q", b.String())
	}
}

func TestRenderCompletedReport(t *testing.T) {
	total := 48000.0
	var b strings.Builder
	Render(&b, &model.Contract{
		ID:       "c3",
		Filename: "deal.pdf",
		Status:   model.StatusCompleted,
		Progress: 100,
		ExtractedData: &model.ExtractedData{
			FinancialDetails: &model.FinancialDetails{
				TotalValue: &total,
				Currency:   "GBP",
			},
		},
		ConfidenceScores: &model.ConfidenceScores{OverallScore: 82.4},
	})

	out := b.String()
	if !strings.Contains(out, "Financial Details") {
		t.Error("Expected financial section")
	}
	if !strings.Contains(out, "48000.00 GBP") {
		t.Errorf("Expected formatted total, got %q", out)
	}
	if !strings.Contains(out, "Overall:") || !strings.Contains(out, "82%") {
		t.Errorf("Expected rounded overall score 82%%, got %q", out)
	}
	if strings.Contains(out, "Party Identification") {
		t.Error("Expected absent sections to be omitted")
	}
}
