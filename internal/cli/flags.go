package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankeyflow/pkg/pipeline"
)

// buildFlags holds the flags shared by every command that builds a graph.
// Flags that were set explicitly override values from --config.
type buildFlags struct {
	config     string
	source     string
	target     string
	value      string
	id         string
	idPolicy   string
	throughput bool
	noCache    bool
	refresh    bool
	redisAddr  string
}

// register binds the flags to cmd.
func (f *buildFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "options file (.toml, .yaml or .json)")
	fs.StringVar(&f.source, "source", "source", "column holding the source label")
	fs.StringVar(&f.target, "target", "target", "column holding the target label")
	fs.StringVar(&f.value, "value", "value", "column holding the flow value")
	fs.StringVar(&f.id, "id", "", "column holding the link identifier (optional)")
	fs.StringVar(&f.idPolicy, "id-policy", pipeline.DefaultIDPolicy, "identifier merge policy: first, last, drop")
	fs.BoolVar(&f.throughput, "throughput", false, "set node values to max(inflow, outflow)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "rebuild even if a cached result exists")
	fs.StringVar(&f.redisAddr, "redis-addr", "", "cache builds in Redis at host:port")

	_ = cmd.RegisterFlagCompletionFunc("id-policy", cobra.FixedCompletions(
		[]string{"first", "last", "drop"}, cobra.ShellCompDirectiveNoFileComp))
}

// options loads --config (if any), applies explicit flags on top, and
// validates the result.
func (f *buildFlags) options(cmd *cobra.Command, logger *log.Logger) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		loaded, err := pipeline.LoadOptions(f.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	changed := cmd.Flags().Changed
	setString := func(name string, dst *string, v string) {
		if changed(name) || *dst == "" {
			*dst = v
		}
	}
	setString("source", &opts.Columns.Source, f.source)
	setString("target", &opts.Columns.Target, f.target)
	setString("value", &opts.Columns.Value, f.value)
	setString("id", &opts.Columns.ID, f.id)
	setString("id-policy", &opts.IDPolicy, f.idPolicy)
	if changed("throughput") {
		opts.Throughput = f.throughput
	}
	if changed("redis-addr") {
		opts.Cache.Backend = pipeline.CacheRedis
		opts.Cache.RedisAddr = f.redisAddr
	}
	opts.Refresh = f.refresh
	opts.Logger = logger

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
