package client

import (
	"errors"
	"fmt"
)

// AcceptedContentType is the only MIME type the service processes.
const AcceptedContentType = "application/pdf"

// MaxUploadBytes is the upload size ceiling: 50 MiB.
const MaxUploadBytes = 50 * 1024 * 1024

// Pre-flight validation errors. These are raised before any network
// call is made; a rejected file never reaches the transport.
var (
	ErrUnsupportedFileType = errors.New("only PDF files are supported")
	ErrFileTooLarge        = fmt.Errorf("file size exceeds the %d MB limit", MaxUploadBytes/(1024*1024))
)

// ValidateUpload is the upload gate: a pure, synchronous check of the
// two properties the service enforces at submit time. Content type must
// be exactly the accepted PDF type and size must not exceed
// MaxUploadBytes (the boundary itself is accepted).
func ValidateUpload(contentType string, size int64) error {
	if contentType != AcceptedContentType {
		return ErrUnsupportedFileType
	}
	if size > MaxUploadBytes {
		return ErrFileTooLarge
	}
	return nil
}
