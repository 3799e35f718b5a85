package model

import (
	"time"
)

// Status is the processing lifecycle state of a contract.
type Status string

// Contract lifecycle states. Completed and failed are terminal: the
// server never transitions a contract out of either.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further lifecycle transition is expected.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the four known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Contract is the client's view of one submitted contract document.
//
// Progress is meaningful only while the status is pending or processing;
// it is carried through as received, without clamping, so that server
// contract violations stay visible. ErrorMessage is set iff the status
// is failed. ExtractedData, ConfidenceScores and GapAnalysis are present
// only once a completed contract's full resource has been fetched.
type Contract struct {
	ID               string            `json:"contract_id"`
	Filename         string            `json:"filename"`
	FileSize         int64             `json:"file_size"`
	Status           Status            `json:"status"`
	Progress         int               `json:"progress_percentage"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	ExtractedData    *ExtractedData    `json:"extracted_data,omitempty"`
	ConfidenceScores *ConfidenceScores `json:"confidence_scores,omitempty"`
	GapAnalysis      *GapAnalysis      `json:"gap_analysis,omitempty"`
}

// HasReport reports whether the full extraction report has been obtained.
func (c *Contract) HasReport() bool {
	return c.ExtractedData != nil
}

// Clone returns a copy of the contract. The report sections are shared:
// they are immutable once attached, so a shallow copy of the pointers is
// safe for snapshot hand-off.
func (c *Contract) Clone() *Contract {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// ExtractedData is the structured extraction output. Every section is
// optional; a nil section means the extractor found nothing for it in
// the source document, which is distinct from a section that is present
// with empty fields.
type ExtractedData struct {
	PartyIdentification    *PartyInfo             `json:"party_identification,omitempty"`
	AccountInformation     *AccountInfo           `json:"account_information,omitempty"`
	FinancialDetails       *FinancialDetails      `json:"financial_details,omitempty"`
	PaymentStructure       *PaymentStructure      `json:"payment_structure,omitempty"`
	RevenueClassification  *RevenueClassification `json:"revenue_classification,omitempty"`
	ServiceLevelAgreements *ServiceLevelAgreement `json:"service_level_agreements,omitempty"`
}

// PartyInfo identifies the contracting parties.
type PartyInfo struct {
	Name                string   `json:"name,omitempty"`
	LegalEntity         string   `json:"legal_entity,omitempty"`
	RegistrationDetails string   `json:"registration_details,omitempty"`
	Signatories         []string `json:"signatories,omitempty"`
	Roles               []string `json:"roles,omitempty"`
}

// AccountInfo holds billing and contact details.
type AccountInfo struct {
	BillingDetails string            `json:"billing_details,omitempty"`
	AccountNumbers []string          `json:"account_numbers,omitempty"`
	ContactInfo    map[string]string `json:"contact_info,omitempty"`
}

// FinancialDetails holds monetary terms of the contract.
type FinancialDetails struct {
	LineItems      []map[string]any `json:"line_items,omitempty"`
	TotalValue     *float64         `json:"total_value,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	TaxInfo        map[string]any   `json:"tax_info,omitempty"`
	AdditionalFees []map[string]any `json:"additional_fees,omitempty"`
}

// PaymentStructure holds payment terms and banking details.
type PaymentStructure struct {
	PaymentTerms   string            `json:"payment_terms,omitempty"`
	DueDates       []string          `json:"due_dates,omitempty"`
	PaymentMethods []string          `json:"payment_methods,omitempty"`
	BankingDetails map[string]string `json:"banking_details,omitempty"`
}

// RevenueClassification describes how the contract generates revenue.
type RevenueClassification struct {
	PaymentType  string `json:"payment_type,omitempty"` // recurring, one-time, both
	BillingCycle string `json:"billing_cycle,omitempty"`
	RenewalTerms string `json:"renewal_terms,omitempty"`
	AutoRenewal  *bool  `json:"auto_renewal,omitempty"`
}

// ServiceLevelAgreement holds SLA terms.
type ServiceLevelAgreement struct {
	PerformanceMetrics []string `json:"performance_metrics,omitempty"`
	PenaltyClauses     []string `json:"penalty_clauses,omitempty"`
	SupportTerms       string   `json:"support_terms,omitempty"`
	MaintenanceTerms   string   `json:"maintenance_terms,omitempty"`
}

// ConfidenceScores are the server-computed extraction confidence values,
// each in [0,100]. OverallScore is supplied independently by the server;
// the client does not derive it from the category scores.
type ConfidenceScores struct {
	FinancialCompleteness float64 `json:"financial_completeness"`
	PartyIdentification   float64 `json:"party_identification"`
	PaymentTermsClarity   float64 `json:"payment_terms_clarity"`
	SLADefinition         float64 `json:"sla_definition"`
	ContactInformation    float64 `json:"contact_information"`
	OverallScore          float64 `json:"overall_score"`
}

// GapAnalysis lists what the extractor could not find. List order is the
// server's display order and carries no further ranking.
type GapAnalysis struct {
	MissingFields      []string `json:"missing_fields"`
	IncompleteSections []string `json:"incomplete_sections"`
	Recommendations    []string `json:"recommendations"`
}
