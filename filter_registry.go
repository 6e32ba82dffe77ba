package rowhook

import "strings"

// filterPredicate decides whether a located (or unresolved) value passes a
// named filter. Filters never fail: a false result is a perfectly valid
// answer, consumed by the action registry, never an error condition.
type filterPredicate func(resolved bool, value interface{}, arg string) bool

type filterDesc struct {
	fn          filterPredicate
	requiresArg bool
}

// filterRegistry is the static table of named predicates. It is populated
// once in init and never mutated afterwards, so lookups are safe from any
// number of concurrent Handle calls.
var filterRegistry = map[string]filterDesc{
	"noop": {
		fn:          func(resolved bool, value interface{}, arg string) bool { return true },
		requiresArg: false,
	},
	"exists": {
		fn:          func(resolved bool, value interface{}, arg string) bool { return resolved },
		requiresArg: false,
	},
	"match": {
		fn: func(resolved bool, value interface{}, arg string) bool {
			if !resolved {
				return false
			}
			return renderText(value) == arg
		},
		requiresArg: true,
	},
	"substr": {
		fn: func(resolved bool, value interface{}, arg string) bool {
			if !resolved {
				return false
			}
			return strings.Contains(renderText(value), arg)
		},
		requiresArg: true,
	},
}

func filterRequiresArg(name string) bool {
	return filterRegistry[name].requiresArg
}

// KnownFilters returns the names of every registered filter, for use by the
// configuration validator so it never needs to duplicate this enum.
func KnownFilters() []string {
	names := make([]string, 0, len(filterRegistry))
	for name := range filterRegistry {
		names = append(names, name)
	}
	return names
}
