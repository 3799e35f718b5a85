package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/config"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
)

func newTestClient(serverURL string) *Client {
	return New(&config.APIConfig{BaseURL: serverURL, TimeoutSeconds: 5})
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/contracts/upload" {
			t.Errorf("Expected /contracts/upload, got %s", r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Expected multipart file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "deal.pdf" {
			t.Errorf("Expected filename deal.pdf, got %s", header.Filename)
		}
		body, _ := io.ReadAll(file)
		if string(body) != "%PDF-1.7 test" {
			t.Errorf("Unexpected file content: %q", string(body))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"contract_id": "abc",
			"message":     "Contract uploaded successfully. Processing started.",
			"status":      "pending",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	content := "%PDF-1.7 test"
	resp, err := c.Upload(context.Background(), "deal.pdf", AcceptedContentType, int64(len(content)), strings.NewReader(content))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.ContractID != "abc" {
		t.Errorf("Expected contract ID abc, got %s", resp.ContractID)
	}
	if resp.Status != model.StatusPending {
		t.Errorf("Expected pending status, got %s", resp.Status)
	}
}

func TestUploadRejectedCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Only PDF files are supported"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Upload(context.Background(), "deal.pdf", AcceptedContentType, 10, strings.NewReader("0123456789"))
	if !errors.Is(err, ErrUploadRejected) {
		t.Fatalf("Expected ErrUploadRejected, got %v", err)
	}
	if Detail(err) != "Only PDF files are supported" {
		t.Errorf("Expected server detail, got %q", Detail(err))
	}
}

func TestUploadGateShortCircuits(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	// 51 MiB PDF: rejected on size before any network call.
	_, err := c.Upload(context.Background(), "big.pdf", AcceptedContentType, 51*1024*1024, strings.NewReader(""))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Expected ErrFileTooLarge, got %v", err)
	}

	// Non-PDF of any size: rejected on type before any network call.
	_, err = c.Upload(context.Background(), "notes.txt", "text/plain", 10, strings.NewReader("0123456789"))
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("Expected ErrUnsupportedFileType, got %v", err)
	}

	if calls != 0 {
		t.Errorf("Expected no network calls for gated uploads, got %d", calls)
	}
}

func TestGetStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contracts/abc/status" {
			t.Errorf("Expected /contracts/abc/status, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"contract_id":         "abc",
			"status":              "processing",
			"progress_percentage": 40,
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	st, err := c.GetStatus(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if st.Status != model.StatusProcessing || st.Progress != 40 {
		t.Errorf("Expected processing/40, got %s/%d", st.Status, st.Progress)
	}
}

func TestGetStatusUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Contract not found"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.GetStatus(context.Background(), "missing")
	if !errors.Is(err, ErrStatusUnavailable) {
		t.Fatalf("Expected ErrStatusUnavailable, got %v", err)
	}
}

func TestGetMapsBadRequestToNotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Contract data not available. Status: processing"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Get(context.Background(), "abc")
	if !errors.Is(err, ErrResourceNotReady) {
		t.Fatalf("Expected ErrResourceNotReady, got %v", err)
	}
	if !strings.Contains(Detail(err), "processing") {
		t.Errorf("Expected status in detail, got %q", Detail(err))
	}
}

func TestGetMapsOtherFailuresToFetchFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Get(context.Background(), "abc")
	if !errors.Is(err, ErrResourceFetchFailed) {
		t.Fatalf("Expected ErrResourceFetchFailed, got %v", err)
	}
	// No detail body: the fixed generic message applies.
	if Detail(err) != genericDetail {
		t.Errorf("Expected generic detail fallback, got %q", Detail(err))
	}
}

func TestGetDecodesFullContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"contract_id":         "abc",
			"filename":            "deal.pdf",
			"file_size":           2048,
			"status":              "completed",
			"progress_percentage": 100,
			"extracted_data": map[string]any{
				"party_identification": map[string]any{
					"name":        "Acme",
					"signatories": []string{"J. Whitfield"},
				},
			},
			"confidence_scores": map[string]any{
				"overall_score": 82.4,
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	contract, err := c.Get(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if contract.Status != model.StatusCompleted {
		t.Errorf("Expected completed, got %s", contract.Status)
	}
	if contract.ExtractedData == nil || contract.ExtractedData.PartyIdentification == nil {
		t.Fatal("Expected party identification section")
	}
	if contract.ExtractedData.AccountInformation != nil {
		t.Error("Expected absent account section to decode as nil")
	}
	if contract.ConfidenceScores.OverallScore != 82.4 {
		t.Errorf("Expected overall score 82.4, got %v", contract.ConfidenceScores.OverallScore)
	}
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("page_size") != "5" || q.Get("status") != "completed" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"contracts":   []map[string]any{{"contract_id": "a"}, {"contract_id": "b"}},
			"total":       7,
			"page":        2,
			"page_size":   5,
			"total_pages": 2,
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	resp, err := c.List(context.Background(), ListOptions{Page: 2, PageSize: 5, Status: model.StatusCompleted})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(resp.Contracts) != 2 || resp.Total != 7 || resp.TotalPages != 2 {
		t.Errorf("Unexpected list envelope: %+v", resp)
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="deal.pdf"`)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7 content"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	body, filename, err := c.Download(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer body.Close()

	if filename != "deal.pdf" {
		t.Errorf("Expected filename deal.pdf, got %s", filename)
	}
	data, _ := io.ReadAll(body)
	if string(data) != "%PDF-1.7 content" {
		t.Errorf("Unexpected content: %q", string(data))
	}
}

func TestDownloadFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Contract not found"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, _, err := c.Download(context.Background(), "missing")
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("Expected ErrDownloadFailed, got %v", err)
	}
}

func TestDownloadFilenameFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	body, filename, err := c.Download(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	body.Close()
	if filename != "abc.pdf" {
		t.Errorf("Expected fallback filename abc.pdf, got %s", filename)
	}
}
