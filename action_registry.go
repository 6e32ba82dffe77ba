package rowhook

// actionFunc is an action's side effect, run after this needle's filter:
// it may mark the current evalSlot for metadata publication (store_meta).
// It returns nothing; whether the message continues or is dropped is
// decided by actionDesc.keep. It receives the slot so it can flag it; it
// must not format or otherwise populate it — that's the type codec's job.
type actionFunc func(filterResult bool, resolved bool, value interface{}, slot *evalSlot)

type actionDesc struct {
	fn actionFunc

	// stored is a static property: whether this action can contribute an
	// output field, independent of what keep()/drop() a given evaluation
	// decides at runtime.
	stored bool

	// keep reports whether the action allows the message to continue,
	// given the filter's boolean result. It's extracted as data instead
	// of being embedded only in fn so Compile/tests can reason about it
	// without a full evalSlot.
	keep func(filterResult bool) bool
}

// actionRegistry is the static table mapping a named action to its
// keep/store-field/metadata-publication behavior, exactly as specified:
//
//	store          always true    -
//	store_true     filterResult   -
//	discard_false  filterResult   -
//	discard_true   !filterResult  -
//	store_meta     always true    marks slot for metadata publication
var actionRegistry = map[string]actionDesc{
	"store": {
		stored: true,
		keep:   func(filterResult bool) bool { return true },
		fn:     func(filterResult, resolved bool, value interface{}, slot *evalSlot) {},
	},
	"store_true": {
		stored: true,
		keep:   func(filterResult bool) bool { return filterResult },
		fn:     func(filterResult, resolved bool, value interface{}, slot *evalSlot) {},
	},
	"discard_false": {
		stored: false,
		keep:   func(filterResult bool) bool { return filterResult },
		fn:     func(filterResult, resolved bool, value interface{}, slot *evalSlot) {},
	},
	"discard_true": {
		stored: false,
		keep:   func(filterResult bool) bool { return !filterResult },
		fn:     func(filterResult, resolved bool, value interface{}, slot *evalSlot) {},
	},
	"store_meta": {
		stored: true,
		keep:   func(filterResult bool) bool { return true },
		fn: func(filterResult, resolved bool, value interface{}, slot *evalSlot) {
			if resolved && value != nil {
				slot.publishMeta = true
			}
		},
	},
}

// KnownActions returns the names of every registered action, for use by the
// configuration validator.
func KnownActions() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
