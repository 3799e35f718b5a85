package model

import (
	"encoding/json"
	"testing"
)

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusPending.Valid() {
		t.Error("Expected pending to be valid")
	}
	if Status("done").Valid() {
		t.Error("Expected unknown status to be invalid")
	}
}

func TestContractDecodePresence(t *testing.T) {
	// Absent sections decode as nil; present-but-empty sections do not.
	payload := `{
		"contract_id": "abc",
		"filename": "deal.pdf",
		"file_size": 2048,
		"status": "completed",
		"progress_percentage": 100,
		"extracted_data": {
			"party_identification": {"name": "Acme"},
			"payment_structure": {}
		},
		"gap_analysis": {
			"missing_fields": [],
			"incomplete_sections": ["payment_structure"],
			"recommendations": []
		}
	}`

	var c Contract
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	d := c.ExtractedData
	if d == nil {
		t.Fatal("Expected extracted data")
	}
	if d.PartyIdentification == nil || d.PartyIdentification.Name != "Acme" {
		t.Error("Expected party section with name")
	}
	if d.PaymentStructure == nil {
		t.Error("Expected empty payment section to be present")
	}
	if d.FinancialDetails != nil {
		t.Error("Expected absent financial section to be nil")
	}

	g := c.GapAnalysis
	if g == nil {
		t.Fatal("Expected gap analysis")
	}
	if len(g.MissingFields) != 0 || len(g.IncompleteSections) != 1 {
		t.Errorf("Unexpected gap lists: %+v", g)
	}
}

func TestContractHasReport(t *testing.T) {
	c := &Contract{Status: StatusCompleted}
	if c.HasReport() {
		t.Error("Expected no report without extracted data")
	}
	c.ExtractedData = &ExtractedData{}
	if !c.HasReport() {
		t.Error("Expected report with extracted data present")
	}
}

func TestContractClone(t *testing.T) {
	orig := &Contract{
		ID:            "abc",
		Status:        StatusProcessing,
		Progress:      40,
		ExtractedData: &ExtractedData{},
	}

	cp := orig.Clone()
	cp.Progress = 80
	if orig.Progress != 40 {
		t.Error("Expected clone to be independent of the original")
	}
	if cp.ExtractedData != orig.ExtractedData {
		t.Error("Expected report sections to be shared, not copied")
	}

	var nilContract *Contract
	if nilContract.Clone() != nil {
		t.Error("Expected nil clone of nil contract")
	}
}
