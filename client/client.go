package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/config"
	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
)

// Client is a typed HTTP client for the contract intelligence service.
// Each method maps one client-facing action to one remote call and
// normalizes failures into the sentinel kinds in errors.go.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// UploadResponse is the submit acknowledgement.
type UploadResponse struct {
	ContractID string       `json:"contract_id"`
	Message    string       `json:"message"`
	Status     model.Status `json:"status"`
}

// StatusResponse is the lightweight poll payload. It never carries the
// extraction report.
type StatusResponse struct {
	ContractID   string       `json:"contract_id"`
	Status       model.Status `json:"status"`
	Progress     int          `json:"progress_percentage"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// ListResponse is the paginated list envelope.
type ListResponse struct {
	Contracts  []*model.Contract `json:"contracts"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ListOptions narrows a list request. A zero Page or PageSize falls back
// to the server defaults; an empty Status applies no filter.
type ListOptions struct {
	Page     int
	PageSize int
	Status   model.Status
}

// New creates a client for the service at cfg.BaseURL.
func New(cfg *config.APIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Upload submits a contract file for processing. The upload gate runs
// first: an invalid content type or oversized file is rejected without
// any network traffic. A non-success response maps to ErrUploadRejected
// carrying the server's reason.
func (c *Client) Upload(ctx context.Context, filename string, contentType string, size int64, r io.Reader) (*UploadResponse, error) {
	if err := ValidateUpload(contentType, size); err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contracts/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(ErrUploadRejected, resp)
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %w", err)
	}
	return &result, nil
}

// GetStatus fetches the lightweight processing status of a contract.
func (c *Client) GetStatus(ctx context.Context, id string) (*StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/contracts/%s/status", c.baseURL, url.PathEscape(id)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatusUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(ErrStatusUnavailable, resp)
	}

	var result StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}
	return &result, nil
}

// Get fetches the full contract resource, including the extraction
// report when processing has completed. A 400 response means the
// contract exists but is not yet queryable and maps to
// ErrResourceNotReady; any other non-success maps to
// ErrResourceFetchFailed.
func (c *Client) Get(ctx context.Context, id string) (*model.Contract, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/contracts/%s", c.baseURL, url.PathEscape(id)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest:
		return nil, newAPIError(ErrResourceNotReady, resp)
	default:
		return nil, newAPIError(ErrResourceFetchFailed, resp)
	}

	var result model.Contract
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse contract: %w", err)
	}
	return &result, nil
}

// List fetches one page of contracts. It is a pass-through: no caching
// or client-side merging.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResponse, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}

	endpoint := c.baseURL + "/contracts"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(ErrResourceFetchFailed, resp)
	}

	var result ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse list response: %w", err)
	}
	return &result, nil
}

// Download streams the original contract file. The returned filename is
// taken from the Content-Disposition header when present, otherwise it
// falls back to "<id>.pdf". The caller owns the ReadCloser.
func (c *Client) Download(ctx context.Context, id string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/contracts/%s/download", c.baseURL, url.PathEscape(id)), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", newAPIError(ErrDownloadFailed, resp)
	}

	filename := id + ".pdf"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			filename = params["filename"]
		}
	}

	return resp.Body, filename, nil
}
