package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel error kinds for transport failures. Callers classify with
// errors.Is; the wrapped *APIError carries the server detail when one
// was supplied.
var (
	// ErrUploadRejected indicates the server refused a contract submission.
	ErrUploadRejected = errors.New("upload rejected")

	// ErrResourceNotReady indicates the contract exists but is not yet in
	// a queryable terminal state. This is an expected transient condition,
	// not a failure: the watcher falls back to status-only polling on it.
	ErrResourceNotReady = errors.New("contract data not ready")

	// ErrStatusUnavailable indicates a status poll could not be served.
	ErrStatusUnavailable = errors.New("status unavailable")

	// ErrResourceFetchFailed indicates a full-resource fetch failed for
	// any reason other than the resource not being ready.
	ErrResourceFetchFailed = errors.New("contract fetch failed")

	// ErrDownloadFailed indicates the original file could not be downloaded.
	ErrDownloadFailed = errors.New("download failed")
)

// genericDetail is the user-facing fallback when an error response does
// not carry a detail field.
const genericDetail = "the server could not process the request"

// APIError is a normalized error response from the contract service.
type APIError struct {
	Kind       error  // one of the sentinel kinds above
	StatusCode int    // HTTP status of the failing response
	Detail     string // server-supplied reason, or genericDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// errorBody is the error envelope the service uses on every failure path.
type errorBody struct {
	Detail string `json:"detail"`
}

// newAPIError drains the response body and builds an *APIError of the
// given kind, using the detail field when the body carries one.
func newAPIError(kind error, resp *http.Response) *APIError {
	detail := genericDetail

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(body) > 0 {
		var eb errorBody
		if jsonErr := json.Unmarshal(body, &eb); jsonErr == nil && eb.Detail != "" {
			detail = eb.Detail
		}
	}

	return &APIError{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Detail:     detail,
	}
}

// Detail returns the user-facing reason carried by err, or the generic
// fallback when err is not an *APIError.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return genericDetail
}
