package persist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"serverlister/core/reconcile"
	"serverlister/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectBackend stores the server list of one game in an object storage
// bucket. A PutObject replaces the previous document in one step.
type ObjectBackend struct {
	client storage.Client
	bucket string
	key    string
	game   string
	region string
	clock  func() time.Time
}

// NewObjectBackend creates a backend for <prefix><game>-servers.json in bucket.
func NewObjectBackend(client storage.Client, bucket, region, prefix, game string) *ObjectBackend {
	prefix = strings.TrimPrefix(prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &ObjectBackend{
		client: client,
		bucket: bucket,
		key:    prefix + FileName(game),
		game:   game,
		region: region,
		clock:  time.Now,
	}
}

// Key returns the object key of the document.
func (b *ObjectBackend) Key() string {
	return b.key
}

// Load reads the document. A missing bucket or key is reported as not found.
func (b *ObjectBackend) Load(ctx context.Context) ([]reconcile.ServerRecord, bool, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s/%s: %w", b.bucket, b.key, err)
	}
	defer obj.Close()

	// minio reports a missing key on the first read, not on GetObject.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s/%s: %w", b.bucket, b.key, err)
	}

	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, true, fmt.Errorf("%s/%s: %w", b.bucket, b.key, err)
	}
	return records, true, nil
}

// Save uploads the document, creating the bucket when it does not exist.
func (b *ObjectBackend) Save(ctx context.Context, records []reconcile.ServerRecord) error {
	var buf bytes.Buffer
	if err := Encode(&buf, b.game, records, b.clock()); err != nil {
		return err
	}

	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", b.bucket, err)
	}
	if !exists {
		if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", b.bucket, err)
		}
	}

	_, err = b.client.PutObject(ctx, b.bucket, b.key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", b.bucket, b.key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	default:
		return false
	}
}
