package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSUploader writes files into a Cloud Storage bucket.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
}

// NewGCSUploader opens a storage client. An empty credFile falls back to
// Application Default Credentials.
func NewGCSUploader(ctx context.Context, bucket, credFile string) (*GCSUploader, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("gcs uploader: bucket is empty")
	}

	var opts []option.ClientOption
	if credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs uploader: storage.NewClient failed: %w", err)
	}
	return &GCSUploader{Client: client, Bucket: bucket}, nil
}

func (u *GCSUploader) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	name = strings.TrimLeft(name, "/")
	obj := u.Client.Bucket(u.Bucket).Object(name).If(storage.Conditions{DoesNotExist: true})

	w := obj.NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			return "", ErrObjectExists
		}
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return PublicURL(u.Bucket, name), nil
}

func (u *GCSUploader) Close() error {
	return u.Client.Close()
}

// PublicURL is the storage.googleapis.com address of an object.
func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}
