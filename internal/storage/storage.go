// Package storage implements the disk-backed image store. Files live in a
// single flat directory under generated names; a configured placeholder is
// served when a requested name is absent.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var storeTracer = otel.Tracer("github.com/nhoyhub/orderhub/storage")

// ErrNotFound is returned when neither the named file nor the placeholder exists.
var ErrNotFound = errors.New("image not found")

const placeholderContent = "A placeholder image should be here."

// Store writes and resolves uploaded image files.
type Store struct {
	dir         string
	placeholder string
	logger      *zap.Logger
}

// New constructs a Store rooted at dir with the given placeholder filename.
func New(dir, placeholder string, logger *zap.Logger) *Store {
	return &Store{dir: dir, placeholder: placeholder, logger: logger}
}

// EnsureReady creates the image directory and, when missing, the placeholder
// file. A placeholder write failure is logged but not fatal; the fallback
// simply won't exist until one is provided.
func (s *Store) EnsureReady() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	path := filepath.Join(s.dir, s.placeholder)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(placeholderContent), 0o644); err != nil {
		if s.logger != nil {
			s.logger.Warn("could not create placeholder image", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// Save writes the upload verbatim under a name combining the owning order id,
// a short random disambiguator, and the original filename hint, and returns
// the server-relative retrieval path. No format or size checks are applied.
func (s *Store) Save(ctx context.Context, orderID int64, filenameHint string, r io.Reader) (string, error) {
	_, span := storeTracer.Start(ctx, "ImageStore.Save", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	u := uuid.New()
	name := fmt.Sprintf("order_%d_%x_%s", orderID, u[:4], filepath.Base(filenameHint))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		return "", fmt.Errorf("write image file: %w", err)
	}

	return "/images/" + name, nil
}

// Resolve returns the on-disk path for a stored image name, falling back to
// the placeholder when the name is absent. ErrNotFound when neither exists.
func (s *Store) Resolve(name string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	fallback := filepath.Join(s.dir, s.placeholder)
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}
	return "", ErrNotFound
}
