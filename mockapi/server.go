// Package mockapi is an in-process stand-in for the contract
// intelligence service. It implements the real wire contract — upload,
// status, full resource, list, download, detail error bodies — with a
// deterministic lifecycle: each status poll advances a contract's
// progress by a fixed step until it completes with a canned extraction
// report. Integration tests and local development run against it.
package mockapi

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/client"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/pkg/logger"
)

// failPrefix marks uploads that should end in a failed state, for
// exercising the failure path deterministically.
const failPrefix = "fail-"

// failMessage is the error attached to simulated extraction failures.
const failMessage = "unable to parse document"

// Server simulates the contract service.
type Server struct {
	store *Store
	step  int // progress advance per status poll
}

// Option configures the mock server.
type Option func(*Server)

// WithStep sets the progress advance applied on each status poll.
func WithStep(step int) Option {
	return func(s *Server) {
		if step > 0 {
			s.step = step
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		store: NewStore(),
		step:  40,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the backing store for test seeding.
func (s *Server) Store() *Store {
	return s.store
}

// Router builds the gin router implementing the service surface.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestID())
	r.Use(recovery())
	r.Use(requestLogger())

	r.POST("/contracts/upload", s.upload)
	r.GET("/contracts/:id/status", s.status)
	r.GET("/contracts/:id", s.get)
	r.GET("/contracts", s.list)
	r.GET("/contracts/:id/download", s.download)

	return r
}

func (s *Server) upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided"})
		return
	}
	defer file.Close()

	// Some multipart writers tag the part as octet-stream; the real
	// service trusts the extension check done upstream in that case.
	contentType := header.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/octet-stream" && contentType != client.AcceptedContentType {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Only PDF files are supported"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, client.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Failed to read file"})
		return
	}
	if int64(len(data)) > client.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "File size exceeds 50MB limit"})
		return
	}

	now := time.Now()
	contract := model.Contract{
		ID:        uuid.New().String(),
		Filename:  header.Filename,
		FileSize:  int64(len(data)),
		Status:    model.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.Save(contract, data)

	logger.Info(c.Request.Context(), "contract uploaded",
		"contract_id", contract.ID,
		"filename", contract.Filename,
		"size", contract.FileSize,
	)

	c.JSON(http.StatusOK, gin.H{
		"contract_id": contract.ID,
		"message":     "Contract uploaded successfully. Processing started.",
		"status":      model.StatusPending,
	})
}

func (s *Server) status(c *gin.Context) {
	id := c.Param("id")

	contract, ok := s.store.Update(id, s.advance)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contract not found"})
		return
	}

	resp := gin.H{
		"contract_id":         contract.ID,
		"status":              contract.Status,
		"progress_percentage": contract.Progress,
	}
	if contract.ErrorMessage != "" {
		resp["error_message"] = contract.ErrorMessage
	}
	c.JSON(http.StatusOK, resp)
}

// advance moves a contract one lifecycle step: pending contracts start
// processing, processing contracts gain progress, and at 100 the
// contract completes with a canned report (or fails, when the filename
// asks for it).
func (s *Server) advance(c *model.Contract) {
	switch c.Status {
	case model.StatusPending:
		c.Status = model.StatusProcessing
		c.Progress = s.step
	case model.StatusProcessing:
		c.Progress += s.step
		if c.Progress >= 100 {
			c.Progress = 100
			if strings.HasPrefix(c.Filename, failPrefix) {
				c.Status = model.StatusFailed
				c.ErrorMessage = failMessage
				return
			}
			c.Status = model.StatusCompleted
			attachSampleReport(c)
		}
	}
}

func (s *Server) get(c *gin.Context) {
	id := c.Param("id")

	contract, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contract not found"})
		return
	}

	if contract.Status != model.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Contract data not available. Status: %s", contract.Status),
		})
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (s *Server) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	status := model.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status filter"})
		return
	}

	contracts, total := s.store.List(page, pageSize, status)
	if contracts == nil {
		contracts = []model.Contract{}
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts":   contracts,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

func (s *Server) download(c *gin.Context) {
	id := c.Param("id")

	contract, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contract not found"})
		return
	}
	data, _ := s.store.File(id)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", contract.Filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// attachSampleReport fills in a representative extraction result.
func attachSampleReport(c *model.Contract) {
	total := 48000.0
	autoRenew := true

	c.ExtractedData = &model.ExtractedData{
		PartyIdentification: &model.PartyInfo{
			Name:        "Acme Logistics Ltd",
			LegalEntity: "Acme Logistics Ltd (UK)",
			Signatories: []string{"J. Whitfield", "M. Osei"},
			Roles:       []string{"Supplier", "Customer"},
		},
		AccountInformation: &model.AccountInfo{
			BillingDetails: "Quarterly invoicing, net 30",
			AccountNumbers: []string{"ACC-2291"},
			ContactInfo: map[string]string{
				"email": "billing@acme-logistics.example",
				"phone": "+44 20 7946 0812",
			},
		},
		FinancialDetails: &model.FinancialDetails{
			TotalValue: &total,
			Currency:   "GBP",
			LineItems: []map[string]any{
				{"description": "Freight services", "amount": 44000.0},
				{"description": "Fuel surcharge", "amount": 4000.0},
			},
		},
		PaymentStructure: &model.PaymentStructure{
			PaymentTerms:   "Net 30 from invoice date",
			PaymentMethods: []string{"bank transfer"},
		},
		RevenueClassification: &model.RevenueClassification{
			PaymentType:  "recurring",
			BillingCycle: "quarterly",
			AutoRenewal:  &autoRenew,
		},
	}
	c.ConfidenceScores = &model.ConfidenceScores{
		FinancialCompleteness: 91.0,
		PartyIdentification:   88.5,
		PaymentTermsClarity:   79.2,
		SLADefinition:         41.0,
		ContactInformation:    95.0,
		OverallScore:          82.4,
	}
	c.GapAnalysis = &model.GapAnalysis{
		MissingFields:      []string{"service_level_agreements"},
		IncompleteSections: []string{"payment_structure: banking details not found"},
		Recommendations:    []string{"Add SLA terms with measurable performance metrics"},
	}
}
