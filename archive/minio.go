// Package archive mirrors downloaded contract originals into object
// storage, so a local download can double as a durable copy.
package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/config"
)

type Archiver struct {
	client *minio.Client
	bucket string
}

func New(cfg *config.ArchiveConfig) (*Archiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Store uploads one downloaded original under the object name derived
// from the contract ID and filename.
func (a *Archiver) Store(ctx context.Context, contractID, filename string, r io.Reader, size int64) error {
	objectName := ObjectName(contractID, filename)
	_, err := a.client.PutObject(ctx, a.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return fmt.Errorf("failed to archive file: %w", err)
	}

	return nil
}

// ObjectName builds the storage key for a contract original. Keys group
// by contract ID so re-downloads of the same contract overwrite rather
// than accumulate.
func ObjectName(contractID, filename string) string {
	return fmt.Sprintf("contracts/%s/%s", contractID, filename)
}
