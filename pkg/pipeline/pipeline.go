// Package pipeline builds flow graphs from tables.
//
// This package composes the engine stages into one call that the CLI (and
// any other entry point) uses, so every surface gets identical behavior.
//
// # Architecture
//
// A build runs four stages in order:
//
//  1. Ingest: turn table rows into provisional edges ([flow.Ingest])
//  2. Aggregate: merge edges sharing a (source, target) pair ([transform.Aggregate])
//  3. Layer: assign a depth to every node ([transform.AssignDepths])
//  4. Validate: classify structural problems ([flow.Validate])
//
// Input shape problems (missing or uneven columns) and internal failures
// never abort the caller: the result carries an empty graph, a report, and
// the diagnostic in [Result.Err].
//
// # Usage
//
// Build directly:
//
//	res := pipeline.Build(table, pipeline.Options{
//	    Columns: flow.Selectors{Source: "from", Target: "to", Value: "amount"},
//	})
//
// Or through a [Runner], which caches builds by a content hash of the table
// and options and emits observability events:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Build(ctx, table, opts)
//	svg, err := runner.Export(ctx, res, pipeline.FormatSVG, opts.Export)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankeyflow/pkg/cache"
	"github.com/matzehuels/sankeyflow/pkg/flow"
	"github.com/matzehuels/sankeyflow/pkg/flow/transform"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultIDPolicy keeps the first non-empty identifier of merged edges.
	DefaultIDPolicy = "first"

	// DefaultCacheBackend stores builds under the user cache directory.
	DefaultCacheBackend = CacheFile

	// DefaultFormat is the default export format.
	DefaultFormat = FormatJSON
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one build. It is passed explicitly per call and can be
// loaded from TOML, YAML or JSON with [LoadOptions].
type Options struct {
	// Columns names the source, target, value and optional id columns.
	Columns flow.Selectors `json:"columns" toml:"columns" yaml:"columns"`

	// IDPolicy selects how identifiers of merged edges combine:
	// "first" (default), "last" or "drop".
	IDPolicy string `json:"id_policy,omitempty" toml:"id_policy" yaml:"id_policy,omitempty" validate:"omitempty,oneof=first last drop"`

	// Throughput fills each node's value with max(inflow, outflow).
	Throughput bool `json:"throughput,omitempty" toml:"throughput" yaml:"throughput,omitempty"`

	Cache  CacheOptions  `json:"cache" toml:"cache" yaml:"cache"`
	Export ExportOptions `json:"export" toml:"export" yaml:"export"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-" toml:"-" yaml:"-"` // bypass cached builds
	Logger  *log.Logger `json:"-" toml:"-" yaml:"-" validate:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// CacheOptions selects where builds are cached.
type CacheOptions struct {
	Backend       string `json:"backend,omitempty" toml:"backend" yaml:"backend,omitempty" validate:"omitempty,oneof=file redis none"`
	Dir           string `json:"dir,omitempty" toml:"dir" yaml:"dir,omitempty"`
	RedisAddr     string `json:"redis_addr,omitempty" toml:"redis_addr" yaml:"redis_addr,omitempty" validate:"required_if=Backend redis"`
	RedisPassword string `json:"-" toml:"redis_password" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty" toml:"redis_db" yaml:"redis_db,omitempty" validate:"gte=0,lte=15"`
	Prefix        string `json:"prefix,omitempty" toml:"prefix" yaml:"prefix,omitempty"`
}

// ExportOptions configures export artifacts.
type ExportOptions struct {
	Format      string `json:"format,omitempty" toml:"format" yaml:"format,omitempty" validate:"omitempty,oneof=json dot svg"`
	ShowValues  bool   `json:"show_values,omitempty" toml:"show_values" yaml:"show_values,omitempty"`
	NodeTooltip string `json:"node_tooltip,omitempty" toml:"node_tooltip" yaml:"node_tooltip,omitempty"`
	LinkTooltip string `json:"link_tooltip,omitempty" toml:"link_tooltip" yaml:"link_tooltip,omitempty"`
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a build.
type Result struct {
	// RunID identifies this build in logs and metrics.
	RunID string

	// Graph is the aggregated, layered graph. It is never nil; on input
	// shape errors and internal failures it is empty.
	Graph *flow.Graph

	// GraphHash is the content hash of the encoded graph.
	GraphHash string

	// Report is the validation report for Graph.
	Report flow.Report

	// Layers summarizes depth assignment.
	Layers transform.LayerResult

	// Ingest counts kept and dropped rows.
	Ingest flow.IngestStats

	// Err holds the input shape or internal diagnostic, if any. It is
	// informational: Graph and Report are always usable.
	Err error

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains build timing and size information.
type Stats struct {
	NodeCount     int
	LinkCount     int
	IngestTime    time.Duration
	AggregateTime time.Duration
	LayerTime     time.Duration
	ValidateTime  time.Duration
	TotalTime     time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	BuildHit  bool // Whether the build came from cache
	ExportHit bool // Whether the last export came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// normalize lower-cases and trims the enumerated fields so that every entry
// point accepts the same spellings as [transform.ParseIDPolicy].
func (o *Options) normalize() {
	o.IDPolicy = strings.ToLower(strings.TrimSpace(o.IDPolicy))
	o.Cache.Backend = strings.ToLower(strings.TrimSpace(o.Cache.Backend))
	o.Export.Format = strings.ToLower(strings.TrimSpace(o.Export.Format))
}

// SetDefaults normalizes enumerated fields and fills unset fields with
// their defaults.
func (o *Options) SetDefaults() {
	o.normalize()
	if o.IDPolicy == "" {
		o.IDPolicy = DefaultIDPolicy
	}
	if o.Cache.Backend == "" {
		o.Cache.Backend = DefaultCacheBackend
	}
	if o.Export.Format == "" {
		o.Export.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
//
// Column selectors are not checked here: a missing selector is an input
// shape problem reported by the build itself.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// GraphKeyOpts returns cache key options for builds.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Source:     o.Columns.Source,
		Target:     o.Columns.Target,
		Value:      o.Columns.Value,
		ID:         o.Columns.ID,
		IDPolicy:   o.IDPolicy,
		Throughput: o.Throughput,
	}
}

// ExportKeyOpts returns cache key options for an export artifact.
func (o ExportOptions) ExportKeyOpts(format string) cache.ExportKeyOpts {
	return cache.ExportKeyOpts{
		Format:      format,
		ShowValues:  o.ShowValues,
		NodeTooltip: o.NodeTooltip,
		LinkTooltip: o.LinkTooltip,
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return newFormatError(format)
	}
	return nil
}
