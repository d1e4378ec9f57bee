package apidoc

// Test-only exports for internal functions.
var (
	ValidateHandlers = validateHandlers
	DisplayName      = displayName
	TypeKey          = typeKey
)

// ShouldInspect runs the worklist predicate against a fresh worklist that
// has already seen the given types.
func ShouldInspect(t Type, seen ...Type) bool {
	w := newWorklist()
	for _, s := range seen {
		w.seen[s.Key()] = true
	}
	return w.shouldInspect(t)
}
