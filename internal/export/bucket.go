package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
	"gocloud.dev/secrets"

	apperrors "github.com/allisson/pangen/internal/errors"

	// Register blob drivers
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Keeper encrypts and decrypts export objects. *secrets.Keeper implements it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// Exporter stores export objects under a key.
type Exporter interface {
	Export(ctx context.Context, key string, format Format, write func(io.Writer) error) error
	Read(ctx context.Context, key string) ([]byte, error)
	Close() error
}

// BucketExporter stores exports in a gocloud.dev blob bucket
// (file://, mem://, s3://, gs://, azblob://). When a keeper is configured,
// objects are encrypted before upload.
type BucketExporter struct {
	bucket *blob.Bucket
	keeper Keeper
}

// NewBucketExporter opens the bucket at bucketURL. keeperURL is optional and selects
// a gocloud.dev/secrets keeper (base64key://, awskms://, gcpkms://, azurekeyvault://,
// hashivault://).
func NewBucketExporter(ctx context.Context, bucketURL, keeperURL string) (*BucketExporter, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open export bucket: %w", err)
	}

	exporter := &BucketExporter{bucket: bucket}
	if keeperURL == "" {
		return exporter, nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keeperURL)
	if err != nil {
		_ = bucket.Close()
		return nil, fmt.Errorf("failed to open export keeper: %w", err)
	}
	exporter.keeper = keeper
	return exporter, nil
}

// Export runs write against the object stored at key. The object is not created
// when write fails.
func (e *BucketExporter) Export(ctx context.Context, key string, format Format, write func(io.Writer) error) error {
	opts := &blob.WriterOptions{ContentType: format.ContentType()}

	if e.keeper != nil {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return err
		}
		ciphertext, err := e.keeper.Encrypt(ctx, buf.Bytes())
		if err != nil {
			return fmt.Errorf("%w: encrypt %s: %v", ErrPersistenceFailure, key, err)
		}
		opts.ContentType = "application/octet-stream"
		if err := e.bucket.WriteAll(ctx, key, ciphertext, opts); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrPersistenceFailure, key, err)
		}
		return nil
	}

	// Cancelling the writer's context before Close discards the object.
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := e.bucket.NewWriter(writeCtx, key, opts)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrPersistenceFailure, key, err)
	}
	if err := write(w); err != nil {
		cancel()
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrPersistenceFailure, key, err)
	}
	return nil
}

// Read returns the decrypted contents of the object stored at key.
func (e *BucketExporter) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := e.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "export %s", key)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistenceFailure, key, err)
	}
	if e.keeper == nil {
		return data, nil
	}
	plaintext, err := e.keeper.Decrypt(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt %s: %v", ErrPersistenceFailure, key, err)
	}
	return plaintext, nil
}

// Close releases the bucket and the keeper.
func (e *BucketExporter) Close() error {
	var keeperErr error
	if e.keeper != nil {
		keeperErr = e.keeper.Close()
	}
	if err := e.bucket.Close(); err != nil {
		return err
	}
	return keeperErr
}
