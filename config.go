package rowhook

import (
	"fmt"
	"io"

	"github.com/rasky/toml"
)

// Config is the top-level TOML shape this hook accepts.
type Config struct {
	// Jpointers holds one entry per needle, in each of the three shapes
	// documented on normalizeEntry. Deferred as toml.Primitive because the
	// concrete Go type of an entry (string, []string, or a table) isn't
	// known until it's inspected.
	Jpointers []toml.Primitive `toml:"jpointers"`

	// WarnRowSize is the row-size threshold above which serializeRow logs
	// a diagnostic. Zero means "use the built-in default".
	WarnRowSize SizeBytes `toml:"warn_row_size"`

	// Metrics is the sink Init wires into the returned Context. Left nil,
	// Init installs NopMetrics. Not a TOML field: the caller sets this in
	// code, after decoding the rest of Config.
	Metrics MetricsClient `toml:"-"`

	meta       *toml.MetaData
	normalized []NormalizedEntry
	validated  bool
}

// LoadConfig decodes r as TOML into a Config, keeping the decode metadata
// needed later by Validate to resolve each jpointers entry's deferred
// primitive.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeReader(r, &cfg)
	if err != nil {
		return nil, &ConfigError{Entry: -1, Msg: err.Error()}
	}
	cfg.meta = &md
	return &cfg, nil
}

// rawGroup is the group/object shape of a jpointers entry: a TOML table
// with the same five names as NormalizedEntry's fields.
type rawGroup struct {
	Pointer string `toml:"jpointer"`
	Type    string `toml:"pqtype"`
	Action  string `toml:"action"`
	Filter  string `toml:"filter"`
	Data    string `toml:"data"`
}

// Validate normalizes cfg.Jpointers into cfg's internal normalized-entry
// list and checks every entry against the type/action/filter registries.
// It's pure with respect to the rest of cfg: Init is the only thing that
// consumes the result.
func Validate(cfg *Config) error {
	entries := make([]NormalizedEntry, 0, len(cfg.Jpointers))
	for i, p := range cfg.Jpointers {
		e, err := normalizeEntry(cfg.meta, p)
		if err != nil {
			return &ConfigError{Entry: i, Msg: err.Error()}
		}
		if err := validateEnums(e); err != nil {
			return &ConfigError{Entry: i, Msg: err.Error()}
		}
		entries = append(entries, e)
	}
	cfg.normalized = entries
	cfg.validated = true
	return nil
}

// normalizeEntry rewrites one jpointers entry to the canonical
// (jpointer, pqtype, action, filter, data) 5-tuple, with defaults
// pqtype="text", action="store", filter="noop", data="". It accepts,
// in order of attempt, a bare string, a positional array of 1-5 strings,
// or a table with named keys.
func normalizeEntry(md *toml.MetaData, p toml.Primitive) (NormalizedEntry, error) {
	def := NormalizedEntry{Type: "text", Action: "store", Filter: "noop"}

	var s string
	if err := md.PrimitiveDecode(p, &s); err == nil {
		e := def
		e.Pointer = s
		return e, nil
	}

	var arr []string
	if err := md.PrimitiveDecode(p, &arr); err == nil {
		if len(arr) < 1 || len(arr) > 5 {
			return NormalizedEntry{}, fmt.Errorf("positional jpointers entry needs 1-5 strings, got %d", len(arr))
		}
		e := def
		fields := []*string{&e.Pointer, &e.Type, &e.Action, &e.Filter, &e.Data}
		for i, v := range arr {
			*fields[i] = v
		}
		return e, nil
	}

	var g rawGroup
	if err := md.PrimitiveDecode(p, &g); err == nil {
		if g.Pointer == "" {
			return NormalizedEntry{}, fmt.Errorf("group jpointers entry missing required 'jpointer' key")
		}
		e := NormalizedEntry{
			Pointer: g.Pointer,
			Type:    g.Type,
			Action:  g.Action,
			Filter:  g.Filter,
			Data:    g.Data,
		}
		if e.Type == "" {
			e.Type = def.Type
		}
		if e.Action == "" {
			e.Action = def.Action
		}
		if e.Filter == "" {
			e.Filter = def.Filter
		}
		return e, nil
	}

	return NormalizedEntry{}, fmt.Errorf("jpointers entry is neither a string, an array of 1-5 strings, nor a table")
}

// validateEnums rejects unknown pqtype/action/filter values and enforces
// that match/substr filters carry a non-empty data argument, using the
// same registries Compile consults so the two never drift apart.
func validateEnums(e NormalizedEntry) error {
	if e.Pointer == "" {
		return fmt.Errorf("jpointer must not be empty")
	}
	if !containsString(KnownTypes(), e.Type) {
		return fmt.Errorf("unknown pqtype %q", e.Type)
	}
	if !containsString(KnownActions(), e.Action) {
		return fmt.Errorf("unknown action %q", e.Action)
	}
	if !containsString(KnownFilters(), e.Filter) {
		return fmt.Errorf("unknown filter %q", e.Filter)
	}
	if filterRequiresArg(e.Filter) && e.Data == "" {
		return fmt.Errorf("filter %q requires a non-empty data argument", e.Filter)
	}
	return nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Init validates cfg if it hasn't been already, compiles the resulting
// NeedleSet, and returns a ready-to-use Context. If cfg.Metrics is nil,
// NopMetrics is installed.
func Init(cfg *Config) (*Context, error) {
	if !cfg.validated {
		if err := Validate(cfg); err != nil {
			return nil, err
		}
	}

	ns, err := Compile(cfg.normalized)
	if err != nil {
		return nil, err
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NopMetrics{}
	}

	return &Context{
		needles:     ns,
		warnRowSize: int64(cfg.WarnRowSize),
		metrics:     metrics,
	}, nil
}
