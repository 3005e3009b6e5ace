package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// Validate checks field values without applying defaults.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts the first validator failure into a coded
// configuration error.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "invalid options")
	}

	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Options.")
	switch e.Tag() {
	case "required", "required_if":
		return serrors.New(serrors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "oneof":
		return serrors.New(serrors.ErrCodeInvalidConfig, "%s: %q is not one of: %s", field, e.Value(), e.Param())
	case "gte", "lte":
		return serrors.New(serrors.ErrCodeInvalidConfig, "%s: must be %s %s", field, e.Tag(), e.Param())
	default:
		return serrors.New(serrors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}

func newFormatError(format string) error {
	return serrors.New(serrors.ErrCodeUnsupported, "invalid format: %q (must be one of: json, dot, svg)", format)
}

// LoadOptions reads options from a TOML, YAML or JSON file. Unknown keys
// are rejected so that typos surface instead of being ignored. Defaults are
// not applied; flags may still override the returned values.
func LoadOptions(path string) (Options, error) {
	var opts Options

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return opts, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return opts, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "read config")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &opts)
		if err != nil {
			return opts, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return opts, serrors.New(serrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return opts, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return opts, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return opts, serrors.New(serrors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .json)", ext)
	}

	opts.normalize()
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
