package rowhook

// typeCodec binds an output type tag to its formatter and disposer, as
// specified: {tag, formatter(value, slot) -> bool, disposer(slot) -> void}.
//
// Format writes the rendering of value into slot and reports whether it
// succeeded; it is only ever called when the needle's pointer resolved
// (see evaluate.go). Dispose releases whatever Format allocated; it must be
// idempotent-safe to call exactly once per slot that Format touched,
// including slots where Format returned false.
type typeCodec struct {
	Tag     string
	Format  func(value interface{}, slot *evalSlot) bool
	Dispose func(slot *evalSlot)
}

// typeRegistry is the static table mapping an output type tag to its codec.
// It's populated by each codec_*.go file's init(), and, like filterRegistry
// and actionRegistry, is read-only after program init.
var typeRegistry = map[string]*typeCodec{}

func registerType(c *typeCodec) {
	if _, dup := typeRegistry[c.Tag]; dup {
		panic("rowhook: duplicate type codec registered for tag " + c.Tag)
	}
	typeRegistry[c.Tag] = c
}

// KnownTypes returns the names of every registered output type, for use by
// the configuration validator so it never needs to duplicate this enum.
func KnownTypes() []string {
	names := make([]string, 0, len(typeRegistry))
	for name := range typeRegistry {
		names = append(names, name)
	}
	return names
}
