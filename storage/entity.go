// Package storage provides entity storage for faraid using NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/faraid/catalog"
	"github.com/c360studio/faraid/engine"
)

// EntityType represents the type of entity stored in KV.
type EntityType string

const (
	EntityTypeRuling EntityType = "ruling"
)

// Bucket names.
const (
	// BucketCatalog holds the active rule catalog document.
	BucketCatalog = "FARAID_CATALOG"
	// BucketRulings holds persisted computation reports.
	BucketRulings = "FARAID_RULINGS"
)

// activeCatalogKey is the single key the catalog document lives under;
// the catalog is replaced wholesale so one computation never sees a
// half-updated rule set.
const activeCatalogKey = "active"

// EntityID represents a typed entity identifier.
type EntityID struct {
	Type EntityType
	ID   string
}

// String returns the string representation of the entity ID.
func (e EntityID) String() string {
	return fmt.Sprintf("%s:%s", e.Type, e.ID)
}

// ParseEntityID parses an entity ID string into its components.
func ParseEntityID(s string) (EntityID, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return EntityID{}, fmt.Errorf("invalid entity ID format: %s", s)
	}
	entityType := EntityType(parts[0])
	switch entityType {
	case EntityTypeRuling:
		return EntityID{Type: entityType, ID: parts[1]}, nil
	default:
		return EntityID{}, fmt.Errorf("unknown entity type: %s", parts[0])
	}
}

// NewEntityID generates a new unique entity ID for the given type.
func NewEntityID(t EntityType) EntityID {
	return EntityID{
		Type: t,
		ID:   uuid.New().String(),
	}
}

// Ruling is one persisted estate computation: the request as received
// and the report the engine produced for it.
type Ruling struct {
	ID        string         `json:"id"`
	RequestID string         `json:"request_id,omitempty"`
	Input     engine.Input   `json:"input"`
	Report    *engine.Report `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store provides entity storage operations backed by NATS KV.
type Store struct {
	catalogs jetstream.KeyValue
	rulings  jetstream.KeyValue
}

// NewStore creates a new Store with the given JetStream context.
// It creates the necessary KV buckets if they don't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	catalogs, err := getOrCreateBucket(ctx, js, BucketCatalog)
	if err != nil {
		return nil, fmt.Errorf("create catalog bucket: %w", err)
	}

	rulings, err := getOrCreateBucket(ctx, js, BucketRulings)
	if err != nil {
		return nil, fmt.Errorf("create rulings bucket: %w", err)
	}

	return &Store{
		catalogs: catalogs,
		rulings:  rulings,
	}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Faraid %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// PutCatalog validates and stores the catalog document as the active
// rule set. An invalid document is rejected before anything is
// written.
func (s *Store) PutCatalog(ctx context.Context, file *catalog.File) error {
	if _, err := file.Resolve(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if _, err := s.catalogs.Put(ctx, activeCatalogKey, data); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	return nil
}

// GetCatalog retrieves the active catalog document.
func (s *Store) GetCatalog(ctx context.Context) (*catalog.File, error) {
	entry, err := s.catalogs.Get(ctx, activeCatalogKey)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	var file catalog.File
	if err := json.Unmarshal(entry.Value(), &file); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return &file, nil
}

// Snapshot resolves the active catalog into an engine snapshot,
// falling back to the built-in default when none has been stored.
func (s *Store) Snapshot(ctx context.Context) (*engine.Snapshot, error) {
	file, err := s.GetCatalog(ctx)
	if errors.Is(err, ErrNotFound) {
		return catalog.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return file.Resolve()
}

// CreateRuling persists a computation report and returns its ID.
func (s *Store) CreateRuling(ctx context.Context, r *Ruling) (EntityID, error) {
	id := NewEntityID(EntityTypeRuling)
	r.ID = id.String()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return EntityID{}, fmt.Errorf("marshal ruling: %w", err)
	}

	if _, err := s.rulings.Create(ctx, id.ID, data); err != nil {
		return EntityID{}, fmt.Errorf("store ruling: %w", err)
	}

	return id, nil
}

// GetRuling retrieves a ruling by ID.
func (s *Store) GetRuling(ctx context.Context, id EntityID) (*Ruling, error) {
	if id.Type != EntityTypeRuling {
		return nil, fmt.Errorf("invalid entity type: expected ruling, got %s", id.Type)
	}

	entry, err := s.rulings.Get(ctx, id.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ruling: %w", err)
	}

	var r Ruling
	if err := json.Unmarshal(entry.Value(), &r); err != nil {
		return nil, fmt.Errorf("unmarshal ruling: %w", err)
	}

	return &r, nil
}

// ListRulings returns all persisted rulings.
func (s *Store) ListRulings(ctx context.Context) ([]*Ruling, error) {
	keys, err := s.rulings.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list ruling keys: %w", err)
	}

	rulings := make([]*Ruling, 0, len(keys))
	for _, key := range keys {
		entry, err := s.rulings.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var r Ruling
		if err := json.Unmarshal(entry.Value(), &r); err != nil {
			continue
		}
		rulings = append(rulings, &r)
	}

	return rulings, nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
