package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sigap/sigap/internal/api"
)

// BaseRecord implements the Record interface over a decoded document.
type BaseRecord struct {
	ID        string
	Name      string
	CreatedAt *time.Time
	UpdatedAt *time.Time
	Fields    map[string]any
}

// GetID returns the record identifier.
func (b *BaseRecord) GetID() string {
	return b.ID
}

// GetName returns the record display name.
func (b *BaseRecord) GetName() string {
	return b.Name
}

// GetCreatedAt returns the creation timestamp.
func (b *BaseRecord) GetCreatedAt() *time.Time {
	return b.CreatedAt
}

// GetUpdatedAt returns the last-modified timestamp.
func (b *BaseRecord) GetUpdatedAt() *time.Time {
	return b.UpdatedAt
}

// GetFields returns the full decoded document.
func (b *BaseRecord) GetFields() map[string]any {
	return b.Fields
}

// Resource is the base struct all entity DAOs embed. It provides the shared
// fetch/create/patch/delete plumbing against the REST client, plus TTL
// caching of list results.
type Resource struct {
	Factory
	rid      *ResourceID
	cache    *ResourceCache
	nameKeys []string
	mx       sync.RWMutex
}

// Init initializes the Resource with factory and resource ID.
func (r *Resource) Init(f Factory, rid *ResourceID) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Factory = f
	r.rid = rid
}

// ResourceID returns the resource identifier.
func (r *Resource) ResourceID() *ResourceID {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.rid
}

// SetCache sets the list cache.
func (r *Resource) SetCache(cache *ResourceCache) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.cache = cache
}

// SetNameKeys declares which document keys hold the display name, in
// precedence order.
func (r *Resource) SetNameKeys(keys ...string) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.nameKeys = keys
}

// List fetches the full collection, via the cache when fresh.
func (r *Resource) List(ctx context.Context) ([]Record, error) {
	key := r.cacheKey()
	if c := r.getCache(); c != nil {
		if records := c.Get(key); records != nil {
			return records, nil
		}
	}

	path, ok := APIPath(r.ResourceID())
	if !ok {
		return nil, fmt.Errorf("no api path for resource: %s", r.ResourceID())
	}

	docs, err := r.Client().List(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, r.recordFrom(doc))
	}

	if c := r.getCache(); c != nil {
		c.Set(key, records)
	}
	return records, nil
}

// Get fetches a single record by id.
func (r *Resource) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return nil, fmt.Errorf("record id cannot be empty")
	}

	path, ok := APIPath(r.ResourceID())
	if !ok {
		return nil, fmt.Errorf("no api path for resource: %s", r.ResourceID())
	}

	doc, err := r.Client().Get(ctx, path, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", path, id, err)
	}
	return r.recordFrom(doc), nil
}

// Create posts a new record and invalidates the list cache.
func (r *Resource) Create(ctx context.Context, doc map[string]any, files []api.FilePart) (Record, error) {
	path, ok := APIPath(r.ResourceID())
	if !ok {
		return nil, fmt.Errorf("no api path for resource: %s", r.ResourceID())
	}

	out, err := r.Client().Create(ctx, path, doc, files)
	if err != nil {
		return nil, err
	}

	r.invalidate()
	return r.recordFrom(out), nil
}

// PatchOps applies an RFC 6902 patch and invalidates the list cache.
func (r *Resource) PatchOps(ctx context.Context, id string, ops []byte) error {
	path, ok := APIPath(r.ResourceID())
	if !ok {
		return fmt.Errorf("no api path for resource: %s", r.ResourceID())
	}

	if err := r.Client().Patch(ctx, path, id, ops); err != nil {
		return err
	}

	r.invalidate()
	return nil
}

// Delete removes a record and invalidates the list cache.
func (r *Resource) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("record id cannot be empty")
	}

	path, ok := APIPath(r.ResourceID())
	if !ok {
		return fmt.Errorf("no api path for resource: %s", r.ResourceID())
	}

	if err := r.Client().Delete(ctx, path, id); err != nil {
		return err
	}

	r.invalidate()
	return nil
}

// Describe returns a YAML rendering of the record document.
func (r *Resource) Describe(ctx context.Context, id string) (string, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(rec.GetFields())
	if err != nil {
		return "", fmt.Errorf("failed to marshal record to YAML: %w", err)
	}
	return string(data), nil
}

// ToJSON returns an indented JSON rendering of the record document.
func (r *Resource) ToJSON(ctx context.Context, id string) (string, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(rec.GetFields(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record to JSON: %w", err)
	}
	return string(data), nil
}

// listWhere fetches the collection and keeps records whose document field
// matches the given value.
func (r *Resource) listWhere(ctx context.Context, key, value string) ([]Record, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]Record, 0, len(records))
	for _, rec := range records {
		if stringField(rec.GetFields(), key) == value {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// recordFrom converts a decoded document into a Record.
func (r *Resource) recordFrom(doc map[string]any) Record {
	rec := &BaseRecord{Fields: doc}

	rec.ID = stringField(doc, "id")
	rec.CreatedAt = timeField(doc, "createdAt")
	rec.UpdatedAt = timeField(doc, "updatedAt")

	r.mx.RLock()
	keys := r.nameKeys
	r.mx.RUnlock()
	for _, k := range append(keys, "name") {
		if v := stringField(doc, k); v != "" {
			rec.Name = v
			break
		}
	}

	return rec
}

func (r *Resource) getCache() *ResourceCache {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.cache
}

func (r *Resource) invalidate() {
	if c := r.getCache(); c != nil {
		c.Invalidate(r.cacheKey())
	}
}

func (r *Resource) cacheKey() string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.rid == nil {
		return ""
	}
	return r.rid.String()
}

// stringField reads a top-level document value as a string.
func stringField(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// timeField reads a top-level document value as an RFC 3339 timestamp.
func timeField(doc map[string]any, key string) *time.Time {
	raw, ok := doc[key].(string)
	if !ok || raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
