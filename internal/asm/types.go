package asm

import "fmt"

// Mode is an operand's addressing mode. Its integer value doubles as both the
// 2-bit ordinal used when packing an operand's mode into an instruction word
// and, via bit, the single-bit mask the instruction table uses to describe
// which modes an opcode permits in a given slot.
type Mode uint8

// Addressing modes, in the fixed order the specification assigns them: the
// ordinal (0..3) is this constant's value; the bitmask is 1 shifted by it.
const (
	ModeImmediate Mode = iota // #N
	ModeDirect                // LABEL
	ModeMatrix                // LABEL[rX][rY]
	ModeRegister              // rN
)

// bit returns the single-bit mask the instruction table uses to describe
// whether an opcode permits this mode in a given operand slot.
func (m Mode) bit() uint8 { return 1 << uint8(m) }

func (m Mode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeDirect:
		return "direct"
	case ModeMatrix:
		return "matrix"
	case ModeRegister:
		return "register"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Addressing-mode bitmasks, as named in the specification's opcode table.
const (
	MaskImmediate = uint8(1) << ModeImmediate
	MaskDirect    = uint8(1) << ModeDirect
	MaskMatrix    = uint8(1) << ModeMatrix
	MaskRegister  = uint8(1) << ModeRegister
)

// ARE is the three-valued relocation tag carried by every encoded word:
// Absolute (a known constant), Relocatable (a local symbol, shifted when
// linked) or External (resolved elsewhere).
type ARE uint8

const (
	AreAbsolute    ARE = 0b00
	AreExternal    ARE = 0b01
	AreRelocatable ARE = 0b10
)

func (a ARE) String() string {
	switch a {
	case AreAbsolute:
		return "A"
	case AreExternal:
		return "E"
	case AreRelocatable:
		return "R"
	default:
		return "?"
	}
}

// SymbolKind distinguishes what a symbol names.
type SymbolKind uint8

const (
	// KindEntryPlaceholder marks a symbol that a ".entry" directive named
	// before the symbol was defined anywhere. It is promoted to KindCode or
	// KindData once its definition is seen.
	KindEntryPlaceholder SymbolKind = iota
	KindCode
	KindData
	KindExternal
)

func (k SymbolKind) String() string {
	switch k {
	case KindEntryPlaceholder:
		return "entry-placeholder"
	case KindCode:
		return "code"
	case KindData:
		return "data"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Symbol is one entry in the symbol table: a label name mapped to its
// address, kind and definition state.
type Symbol struct {
	Name    string
	Address uint16
	Kind    SymbolKind
	Defined bool

	// IsEntry is set the moment any ".entry" directive names this symbol,
	// independent of Kind; it survives the entry-placeholder-to-Code/Data
	// promotion described in the specification.
	IsEntry bool
}

// SymbolTable maps a label to its definition. Iteration order (Entries,
// Rebase) matches insertion order so that the entries file's traversal order is
// deterministic, rather than relying on Go's randomized map order.
type SymbolTable struct {
	order  []string
	byName map[string]*Symbol
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Len returns the number of symbols in the table.
func (t *SymbolTable) Len() int { return len(t.order) }

// Lookup returns the symbol named name, if any.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

func (t *SymbolTable) insert(sym *Symbol) {
	t.byName[sym.Name] = sym
	t.order = append(t.order, sym.Name)
}

// Define records name as defined at addr with the given kind. It fails if
// name is already defined, or is already known as external. A prior
// entry-placeholder (from a ".entry" directive seen before the definition)
// is promoted in place, keeping IsEntry set.
func (t *SymbolTable) Define(name string, addr uint16, kind SymbolKind) error {
	existing, ok := t.byName[name]
	if !ok {
		t.insert(&Symbol{Name: name, Address: addr, Kind: kind, Defined: true})
		return nil
	}

	switch {
	case existing.Defined:
		return fmt.Errorf("%w: %s", ErrDuplicateSymbol, name)
	case existing.Kind == KindExternal:
		return &SemanticError{Reason: "cannot define external symbol locally", Symbol: name}
	default: // KindEntryPlaceholder: promote, keep IsEntry.
		existing.Kind = kind
		existing.Address = addr
		existing.Defined = true

		return nil
	}
}

// MarkExternal declares name as an external symbol. It is idempotent for a
// symbol already declared external, but fails if name is already defined
// locally or already named by an ".entry" directive.
func (t *SymbolTable) MarkExternal(name string) error {
	existing, ok := t.byName[name]
	if !ok {
		t.insert(&Symbol{Name: name, Kind: KindExternal})
		return nil
	}

	switch {
	case existing.IsEntry:
		return fmt.Errorf("%w: %s", ErrExternEntryConflict, name)
	case existing.Kind == KindExternal:
		return nil
	case existing.Defined:
		return &SemanticError{Reason: "cannot declare defined symbol external", Symbol: name}
	default:
		existing.Kind = KindExternal
		return nil
	}
}

// MarkEntry declares name as an entry point. If name is unknown, an
// undefined entry-placeholder symbol is created; if it is already defined
// (as Code or Data), its kind is left alone and only IsEntry is set; if it
// was already declared external, that is a conflict.
func (t *SymbolTable) MarkEntry(name string) error {
	existing, ok := t.byName[name]
	if !ok {
		t.insert(&Symbol{Name: name, Kind: KindEntryPlaceholder, IsEntry: true})
		return nil
	}

	if existing.Kind == KindExternal {
		return fmt.Errorf("%w: %s", ErrExternEntryConflict, name)
	}

	existing.IsEntry = true

	return nil
}

// Rebase shifts every Data symbol's address by delta. It is called once,
// after the first pass completes, to turn DC-relative data addresses into
// addresses absolute in the final memory image.
func (t *SymbolTable) Rebase(delta uint16) {
	for _, name := range t.order {
		sym := t.byName[name]
		if sym.Kind == KindData {
			sym.Address += delta
		}
	}
}

// Entries returns every symbol marked by a ".entry" directive, in the order
// they were first seen.
func (t *SymbolTable) Entries() []*Symbol {
	var out []*Symbol

	for _, name := range t.order {
		sym := t.byName[name]
		if sym.IsEntry {
			out = append(out, sym)
		}
	}

	return out
}

// ExternalRef records one use site of an external symbol: the symbol's name
// and the address of the operand word that referenced it.
type ExternalRef struct {
	Symbol  string
	Address uint16
}

// MemoryImage holds the assembled instruction and data words, each indexed
// from 0 (callers add the segment's base address when they need an absolute
// location).
type MemoryImage struct {
	Instructions []uint16
	Data         []uint16
}
