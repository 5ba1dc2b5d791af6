// Package symtab defines the symbol fact tables extracted from each binary
// and the aggregated dependency closure the rule evaluator queries. All types
// here are plain data; the closure is immutable once built.
package symtab

// SymbolType classifies a defined symbol, mirroring the ELF STT_* values the
// reader extracts. Unknown and purely-referenced symbols carry TypeNoType.
type SymbolType int

// Symbol type values.
const (
	TypeNoType SymbolType = iota
	TypeObject
	TypeFunc
	TypeSection
	TypeFile
	TypeCommon
	TypeTLS
)

// String returns the conventional STT-style name for the symbol type.
func (t SymbolType) String() string {
	switch t {
	case TypeObject:
		return "OBJECT"
	case TypeFunc:
		return "FUNC"
	case TypeSection:
		return "SECTION"
	case TypeFile:
		return "FILE"
	case TypeCommon:
		return "COMMON"
	case TypeTLS:
		return "TLS"
	default:
		return "NOTYPE"
	}
}

// Symbol holds the facts recorded for one symbol name within one binary.
//
// Invariant: a symbol with Defined == true carries a meaningful Size and
// Type; a symbol that is only ReferencedUndefined carries neither (Size is 0
// and Type is TypeNoType). Both flags may be true when a binary defines a
// symbol in one section and references it from another.
type Symbol struct {
	Name string

	// Defined indicates the binary provides a concrete definition.
	Defined bool

	// ReferencedUndefined indicates the binary imports the symbol
	// (SHN_UNDEF entry) and expects another closure member to satisfy it.
	ReferencedUndefined bool

	Size uint64
	Type SymbolType
}

// Binary is the symbol fact table for a single ELF file: every symbol-table
// fact the checker consumes, keyed by name (unique per binary), plus the
// declared DT_NEEDED dependency names in declaration order.
type Binary struct {
	Path       string
	Symbols    map[string]Symbol
	NeededLibs []string
}

// NewBinary creates an empty fact table for path.
func NewBinary(path string) *Binary {
	return &Binary{
		Path:    path,
		Symbols: make(map[string]Symbol),
	}
}

// AddDefined records a defined symbol with its size and type. If the name
// was previously recorded as referenced-undefined, both facts are kept.
func (b *Binary) AddDefined(name string, size uint64, typ SymbolType) {
	sym := b.Symbols[name]
	sym.Name = name
	sym.Defined = true
	sym.Size = size
	sym.Type = typ
	b.Symbols[name] = sym
}

// AddReferenced records an undefined (imported) symbol reference.
func (b *Binary) AddReferenced(name string) {
	sym := b.Symbols[name]
	sym.Name = name
	sym.ReferencedUndefined = true
	b.Symbols[name] = sym
}
