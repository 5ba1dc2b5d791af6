package symtab

// Closure is the deduplicated, ordered set of a root binary plus every
// binary it transitively depends on. Order is breadth-first from the root,
// so lookups that take the first definition are deterministic regardless of
// how libraries repeat across the dependency graph.
//
// A Closure is built once by the resolver and treated as read-only by the
// evaluator; none of the query methods mutate state.
type Closure struct {
	Binaries []*Binary
}

// Root returns the root binary, or nil for an empty closure.
func (c *Closure) Root() *Binary {
	if len(c.Binaries) == 0 {
		return nil
	}
	return c.Binaries[0]
}

// IsAvailable reports whether any closure member defines name.
func (c *Closure) IsAvailable(name string) bool {
	_, ok := c.FirstDefinition(name)
	return ok
}

// IsReferenced reports whether any closure member imports name, i.e. carries
// an undefined reference to it that another member must satisfy.
func (c *Closure) IsReferenced(name string) bool {
	for _, bin := range c.Binaries {
		if sym, ok := bin.Symbols[name]; ok && sym.ReferencedUndefined {
			return true
		}
	}
	return false
}

// FirstDefinition returns the defining binary for name, scanning members in
// closure order so the first-seen definition wins when a symbol is defined
// more than once. The second result is false when no member defines name.
func (c *Closure) FirstDefinition(name string) (*Binary, bool) {
	for _, bin := range c.Binaries {
		if sym, ok := bin.Symbols[name]; ok && sym.Defined {
			return bin, true
		}
	}
	return nil, false
}

// SizeOf returns the size of the first definition of name, or 0 when name is
// never defined. The boolean distinguishes a genuine zero-sized symbol from
// an absent one.
func (c *Closure) SizeOf(name string) (uint64, bool) {
	bin, ok := c.FirstDefinition(name)
	if !ok {
		return 0, false
	}
	return bin.Symbols[name].Size, true
}

// TypeOf returns the type of the first definition of name, or TypeNoType
// when name is never defined.
func (c *Closure) TypeOf(name string) (SymbolType, bool) {
	bin, ok := c.FirstDefinition(name)
	if !ok {
		return TypeNoType, false
	}
	return bin.Symbols[name].Type, true
}

// LargestSize returns the maximum size over all defined symbols in the
// closure, or 0 when nothing is defined.
func (c *Closure) LargestSize() uint64 {
	var largest uint64
	for _, bin := range c.Binaries {
		for _, sym := range bin.Symbols {
			if sym.Defined && sym.Size > largest {
				largest = sym.Size
			}
		}
	}
	return largest
}
