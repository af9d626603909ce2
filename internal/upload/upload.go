// Package upload stores SKU images and returns their public URL.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrObjectExists = errors.New("an object with this name already exists")

// Uploader stores one file under name and returns the URL it is served from.
type Uploader interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}

// ObjectName builds a unique, URL-safe file name for an image of the given SKU.
func ObjectName(skuName, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.ReplaceAll(skuName, ",", " "))
	if base == "" {
		base = "sku"
	}
	return fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)
}

// LocalUploader writes files into Dir, which the router serves at /uploads.
type LocalUploader struct {
	Dir     string
	BaseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	if dir == "" {
		dir = "./uploads"
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &LocalUploader{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (u *LocalUploader) Save(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	// 1. Make sure the uploads directory exists
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// 2. Refuse to overwrite
	name = filepath.Base(name)
	path := filepath.Join(u.Dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrObjectExists
		}
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	// 3. Copy the content
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	// 4. Public URL
	return fmt.Sprintf("%s/uploads/%s", u.BaseURL, name), nil
}
