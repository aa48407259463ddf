// Package storage keeps uploaded material files outside the database.
// Rows store only the key from MaterialKey; URL turns it into a link.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/education-platform/backend/internal/config"
	"github.com/education-platform/backend/internal/logger"
	"github.com/google/uuid"
)

const materialPrefix = "materials"

var ErrInvalidKey = errors.New("invalid storage key")

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New picks the driver named in cfg.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (BlobStore, error) {
	switch cfg.Driver {
	case config.StorageLocal:
		return NewLocal(cfg.LocalDir, cfg.PublicBaseURL, log)
	case config.StorageGCS:
		return NewGCS(ctx, cfg.GCSBucket, cfg.GCSBaseURL, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// MaterialKey builds a unique key such as materials/<uuid>-notes.pdf.
func MaterialKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == "/" {
		base = "file"
	}
	return path.Join(materialPrefix, uuid.NewString()+"-"+base)
}

func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != key {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}
