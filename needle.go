package rowhook

import "fmt"

// NormalizedEntry is the uniform 5-tuple representation of one jpointers
// configuration entry, produced by Validate (see config.go) and consumed
// by Compile.
type NormalizedEntry struct {
	Pointer string
	Type    string
	Action  string
	Filter  string
	Data    string
}

// Needle is one compiled declarative extraction rule: a JSON Pointer paired
// with the type, action and filter policies applied to the value it
// resolves to. A Needle is immutable once compiled.
type Needle struct {
	Pointer string
	Type    string
	Action  string
	Filter  string
	FilterArg string

	codec  *typeCodec
	filter filterPredicate
	action actionFunc
	keep   func(filterResult bool) bool

	// stored reports whether this needle's action can contribute an
	// output field. It's a static property of Action, fixed at compile
	// time, and drives row layout regardless of what a given message
	// evaluation decides at runtime.
	stored bool
}

// Stored reports whether this needle contributes a field to the emitted
// row (true for store, store_true, store_meta; false for discard_*).
func (n *Needle) Stored() bool { return n.stored }

// NeedleSet is the ordered, immutable list of compiled needles that
// defines the column order of every row this hook emits.
type NeedleSet struct {
	Needles []*Needle

	// FieldsCount is the number of needles whose Stored() is true. It's
	// fixed at compile time and is the 16-bit count written into every
	// emitted row, regardless of how many needles locate a NULL at
	// evaluation time.
	FieldsCount int
}

// Compile compiles a list of normalized 5-tuples into a NeedleSet. Each
// entry becomes exactly one Needle, in order. Unknown enum values are
// rejected here as a *ConfigError; Validate is expected to have already
// caught most of these, but Compile is the last line of defense since it's
// also usable directly by callers that build NormalizedEntry values by
// hand (e.g. tests).
func Compile(entries []NormalizedEntry) (*NeedleSet, error) {
	ns := &NeedleSet{Needles: make([]*Needle, 0, len(entries))}

	for i, e := range entries {
		n, err := compileOne(e)
		if err != nil {
			return nil, &ConfigError{Entry: i, Msg: err.Error()}
		}
		ns.Needles = append(ns.Needles, n)
		if n.stored {
			ns.FieldsCount++
		}
	}
	return ns, nil
}

func compileOne(e NormalizedEntry) (*Needle, error) {
	if e.Pointer == "" {
		return nil, fmt.Errorf("pointer must not be empty")
	}

	codec, ok := typeRegistry[e.Type]
	if !ok {
		return nil, fmt.Errorf("unknown output_type %q", e.Type)
	}

	act, ok := actionRegistry[e.Action]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", e.Action)
	}

	filt, ok := filterRegistry[e.Filter]
	if !ok {
		return nil, fmt.Errorf("unknown filter %q", e.Filter)
	}

	if filterRequiresArg(e.Filter) && e.Data == "" {
		return nil, fmt.Errorf("filter %q requires a non-empty filter_arg", e.Filter)
	}

	n := &Needle{
		Pointer: e.Pointer,
		Type:    e.Type,
		Action:  e.Action,
		Filter:  e.Filter,
		codec:   codec,
		filter:  filt.fn,
		action:  act.fn,
		keep:    act.keep,
		stored:  act.stored,
	}
	if filterRequiresArg(e.Filter) {
		n.FilterArg = e.Data
	}
	return n, nil
}
