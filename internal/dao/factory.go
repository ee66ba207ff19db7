package dao

import (
	"github.com/sigap/sigap/internal/api"
)

// APIFactory hands accessors their shared API connection and list cache.
type APIFactory struct {
	client api.Connection
	cache  *ResourceCache
}

// NewAPIFactory returns a new factory wrapping the given connection.
func NewAPIFactory(client api.Connection) *APIFactory {
	return &APIFactory{
		client: client,
		cache:  NewResourceCache(DefaultCacheTTL),
	}
}

// Cache returns the shared list cache. Mutations made through any accessor
// invalidate lists fetched through another.
func (f *APIFactory) Cache() *ResourceCache {
	return f.cache
}

// Client returns the api connection.
func (f *APIFactory) Client() api.Connection {
	return f.client
}

// Server returns the active server profile name.
func (f *APIFactory) Server() string {
	if f.client == nil {
		return ""
	}
	return f.client.ActiveServer()
}
