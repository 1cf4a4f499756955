// Package gcs reads source files for the CLI from Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

const uriScheme = "gs://"

var ErrInvalidURI = errors.New("invalid Cloud Storage URI")

type ObjectReader struct {
	client   *storage.Client
	maxBytes int64
}

type ObjectReaderOption func(*ObjectReader)

// WithMaxBytes rejects objects larger than n bytes.
func WithMaxBytes(n int64) ObjectReaderOption {
	return func(r *ObjectReader) {
		r.maxBytes = n
	}
}

// NewObjectReader creates a reader using application default credentials.
func NewObjectReader(ctx context.Context, opts ...ObjectReaderOption) (*ObjectReader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return NewObjectReaderWithClient(client, opts...), nil
}

func NewObjectReaderWithClient(client *storage.Client, opts ...ObjectReaderOption) *ObjectReader {
	r := &ObjectReader{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ObjectReader) Close() error {
	return r.client.Close()
}

// IsURI reports whether s names a Cloud Storage object.
func IsURI(s string) bool {
	return strings.HasPrefix(s, uriScheme)
}

// ParseURI splits gs://bucket/path/to/object into bucket and object name.
func ParseURI(uri string) (bucket, object string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("%w %q: missing %s prefix", ErrInvalidURI, uri, uriScheme)
	}
	bucket, object, ok := strings.Cut(strings.TrimPrefix(uri, uriScheme), "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return "", "", fmt.Errorf("%w %q: expected %sbucket/object", ErrInvalidURI, uri, uriScheme)
	}
	return bucket, object, nil
}

// ReadObject downloads the whole object.
func (r *ObjectReader) ReadObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	obj := r.client.Bucket(bucketName).Object(objectName)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create object reader for %s/%s: %w", bucketName, objectName, err)
	}
	defer reader.Close()

	if r.maxBytes > 0 && reader.Attrs.Size > r.maxBytes {
		return nil, fmt.Errorf("object %s/%s is %d bytes, limit is %d", bucketName, objectName, reader.Attrs.Size, r.maxBytes)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s/%s: %w", bucketName, objectName, err)
	}
	return data, nil
}

// ReadURI downloads the object named by a gs:// URI and returns it with the
// object's base name, which carries the extension used to pick a parser.
func (r *ObjectReader) ReadURI(ctx context.Context, uri string) (string, []byte, error) {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return "", nil, err
	}

	data, err := r.ReadObject(ctx, bucket, object)
	if err != nil {
		return "", nil, err
	}
	return path.Base(object), data, nil
}
