// Package cache stores built flow graphs and exports so repeated runs over
// unchanged input skip the pipeline.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: never stores anything (caching disabled)
//
// Keys are produced by a [Keyer] from content hashes, so a cache hit always
// corresponds to byte-identical input and options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored data and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default time-to-live values per entry type.
const (
	TTLGraph  = 24 * time.Hour
	TTLExport = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// GraphKey keys a built graph by the hash of its input table.
	GraphKey(inputHash string, opts GraphKeyOpts) string

	// ExportKey keys a rendered export by the hash of the graph document.
	ExportKey(graphHash string, opts ExportKeyOpts) string
}

// GraphKeyOpts holds every option that changes the built graph.
type GraphKeyOpts struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Value      string `json:"value"`
	ID         string `json:"id,omitempty"`
	IDPolicy   string `json:"id_policy,omitempty"`
	Throughput bool   `json:"throughput,omitempty"`
}

// ExportKeyOpts holds every option that changes an export artifact.
type ExportKeyOpts struct {
	Format      string `json:"format"`
	ShowValues  bool   `json:"show_values,omitempty"`
	NodeTooltip string `json:"node_tooltip,omitempty"`
	LinkTooltip string `json:"link_tooltip,omitempty"`
}

// DefaultKeyer produces "graph:<sha256>" and "export:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts)
}

// ExportKey implements Keyer.
func (DefaultKeyer) ExportKey(graphHash string, opts ExportKeyOpts) string {
	return hashKey("export", graphHash, opts)
}
