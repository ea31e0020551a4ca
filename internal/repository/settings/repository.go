package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var repoTracer = otel.Tracer("github.com/nhoyhub/orderhub/repository/settings")

// KeyPublicImage names the public display image slot.
const KeyPublicImage = "public_image_url"

// EsignSlots is the number of esign image slots.
const EsignSlots = 5

// DefaultPublicImageURL seeds the public image slot at process start.
const DefaultPublicImageURL = "https://via.placeholder.com/600x400/9C27B0/ffffff?text=Public+Image"

// ErrUnknownSlot is returned for an esign index outside [1, EsignSlots].
var ErrUnknownSlot = errors.New("unknown esign slot")

// EsignKey returns the config key for an esign slot index.
func EsignKey(index int) string {
	return fmt.Sprintf("esign_image_%d", index)
}

// Repository holds the fixed six-key configuration map. Keys are declared
// once at construction; only values change afterwards, last write wins.
type Repository struct {
	mu     sync.Mutex
	values map[string]string
}

// NewRepository constructs the store with all keys pre-declared.
func NewRepository() *Repository {
	values := map[string]string{
		KeyPublicImage: DefaultPublicImageURL,
	}
	for i := 1; i <= EsignSlots; i++ {
		values[EsignKey(i)] = ""
	}
	return &Repository{values: values}
}

// All returns a copy of every config entry.
func (r *Repository) All(ctx context.Context) (map[string]string, error) {
	_, span := repoTracer.Start(ctx, "SettingsRepository.All")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

// SetPublicImageURL overwrites the public image slot.
func (r *Repository) SetPublicImageURL(ctx context.Context, url string) error {
	_, span := repoTracer.Start(ctx, "SettingsRepository.SetPublicImageURL")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[KeyPublicImage] = url
	return nil
}

// SetEsignURL overwrites the esign slot at index (1-based).
func (r *Repository) SetEsignURL(ctx context.Context, index int, url string) error {
	_, span := repoTracer.Start(ctx, "SettingsRepository.SetEsignURL", trace.WithAttributes(attribute.Int("esign.index", index)))
	defer span.End()

	if index < 1 || index > EsignSlots {
		return ErrUnknownSlot
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[EsignKey(index)] = url
	return nil
}
