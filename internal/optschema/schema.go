// Package optschema declares the driver's closed, immutable option table:
// what is recognized, and with what syntactic shape. It holds no parsing
// logic — that lives in internal/optparse, kept separate per the "global
// parser state" design note: the schema is built once and shared as a
// read-only value.
package optschema

// Shape is the syntactic shape an option's value takes on the command
// line. It is a closed set, represented as a tagged variant rather than
// dynamic dispatch on option kind.
type Shape int

const (
	// Flag takes no value, e.g. -c.
	Flag Shape = iota
	// Joined binds the value to the suffix after the flag, e.g. -DFOO=1.
	Joined
	// Separate binds the value to the next token, e.g. -o out.
	Separate
	// JoinedOrSeparate accepts either form, e.g. -I. or -I .
	JoinedOrSeparate
	// JoinedAndSeparate requires a joined value plus a following
	// separate value, e.g. -Xarch_ppc -O2.
	JoinedAndSeparate
	// CommaJoined binds the value to a comma-split list after the flag,
	// e.g. -Wl,a,b.
	CommaJoined
	// MultipleValues consumes a declared count of following tokens.
	MultipleValues
	// Input marks a positional, non-option token.
	Input
	// Unknown marks a token that matched no schema entry.
	Unknown
)

func (s Shape) String() string {
	switch s {
	case Flag:
		return "Flag"
	case Joined:
		return "Joined"
	case Separate:
		return "Separate"
	case JoinedOrSeparate:
		return "JoinedOrSeparate"
	case JoinedAndSeparate:
		return "JoinedAndSeparate"
	case CommaJoined:
		return "CommaJoined"
	case MultipleValues:
		return "MultipleValues"
	case Input:
		return "Input"
	case Unknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Option is one entry in the option table: a stable name (the flag as the
// user types it), its syntactic Shape, and forwarding metadata.
type Option struct {
	// Name is the flag's stable identity, e.g. "-o", "-Wl,", "-x".
	Name string

	Shape Shape

	// NumValues is only consulted for MultipleValues: the count of
	// following tokens this option consumes.
	NumValues int

	// IsLinkerInput marks options whose Input-shaped value should be
	// treated as an object/linker input regardless of -x state, e.g.
	// -filelist, -l.
	IsLinkerInput bool

	// IsNoForward marks options that exist purely for the driver's own
	// use and are never forwarded to a tool's translated argument view.
	IsNoForward bool
}

// Table is the full, immutable set of recognized options, declaration
// order preserved (declaration order is the tie-breaker for otherwise
// equal-length prefix matches).
type Table struct {
	entries []Option
}

// NewTable builds a Table from entries in declaration order. The
// returned Table is never mutated afterwards; it is safe to share across
// goroutines and across all of a single process's argument lists.
func NewTable(entries ...Option) *Table {
	t := &Table{entries: make([]Option, len(entries))}
	copy(t.entries, entries)

	return t
}

// Entries returns the table's options in declaration order.
func (t *Table) Entries() []Option {
	return t.entries
}

// Lookup finds an entry by its exact stable name, e.g. for getLastArg-style
// access by callers that already know the schema entry they want.
func (t *Table) Lookup(name string) (Option, bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e, true
		}
	}

	return Option{}, false
}

// Standard option names referenced throughout the pipeline/binder stages.
const (
	NameOutput          = "-o"
	NameCompileOnly     = "-c"
	NameAssembleOnly    = "-S"
	NamePreprocessOnly  = "-E"
	NameSyntaxOnly      = "-fsyntax-only"
	NameLangSpecifier   = "-x"
	NameArch            = "-arch"
	NameXarchPrefix     = "-Xarch_"
	NameSaveTemps1      = "-save-temps"
	NameSaveTemps2      = "--save-temps"
	NamePipe            = "-pipe"
	NameNoIntegratedCPP = "-no-integrated-cpp"
	NameTraditionalCPP  = "-traditional-cpp"
	NameCombine         = "-combine"
	NameFilelist        = "-filelist"
	NameLinkLib         = "-l"
	NameCcHost          = "-ccc-host-"
	NamePrintOptions    = "-ccc-print-options"
	NamePrintPhases     = "-ccc-print-phases"
	NamePrintEnv        = "-ccc-print-env"
	NameDashDashDashHash = "-###"
	NameCccClang        = "-ccc-clang"
	NameCccCxx          = "-ccc-cxx"
	NameCccEcho         = "-ccc-echo"
	NameCccFallback     = "-ccc-fallback"
	NameCccNoDriverDriver = "-ccc-no-driver-driver"
)

// DefaultTable returns the driver's standard option table, per spec.md §6.
func DefaultTable() *Table {
	return NewTable(
		Option{Name: NameOutput, Shape: Separate, IsNoForward: true},
		Option{Name: NameCompileOnly, Shape: Flag, IsNoForward: true},
		Option{Name: NameAssembleOnly, Shape: Flag, IsNoForward: true},
		Option{Name: NamePreprocessOnly, Shape: Flag, IsNoForward: true},
		Option{Name: NameSyntaxOnly, Shape: Flag, IsNoForward: true},
		Option{Name: NameLangSpecifier, Shape: Separate, IsNoForward: true},
		Option{Name: NameArch, Shape: Separate, IsNoForward: true},
		Option{Name: NameXarchPrefix, Shape: JoinedAndSeparate},
		Option{Name: NameSaveTemps1, Shape: Flag},
		Option{Name: NameSaveTemps2, Shape: Flag},
		Option{Name: NamePipe, Shape: Flag},
		Option{Name: NameNoIntegratedCPP, Shape: Flag},
		Option{Name: NameTraditionalCPP, Shape: Flag},
		Option{Name: NameCombine, Shape: Flag},
		Option{Name: NameFilelist, Shape: Separate, IsLinkerInput: true},
		Option{Name: NameLinkLib, Shape: JoinedOrSeparate, IsLinkerInput: true},
		Option{Name: "-I", Shape: JoinedOrSeparate},
		Option{Name: "-D", Shape: JoinedOrSeparate},
		Option{Name: "-U", Shape: JoinedOrSeparate},
		Option{Name: "-Wl,", Shape: CommaJoined},
		Option{Name: "-M", Shape: Flag},
		Option{Name: "-MM", Shape: Flag},
		Option{Name: "-MD", Shape: Flag},
		Option{Name: "-MMD", Shape: Flag},
		Option{Name: NamePrintOptions, Shape: Flag, IsNoForward: true},
		Option{Name: NamePrintPhases, Shape: Flag, IsNoForward: true},
		Option{Name: NamePrintEnv, Shape: Flag, IsNoForward: true},
		Option{Name: NameDashDashDashHash, Shape: Flag, IsNoForward: true},
		Option{Name: NameCccClang, Shape: Flag, IsNoForward: true},
		Option{Name: NameCccCxx, Shape: Flag, IsNoForward: true},
		Option{Name: NameCccEcho, Shape: Flag, IsNoForward: true},
		Option{Name: NameCccFallback, Shape: Flag, IsNoForward: true},
		Option{Name: NameCccNoDriverDriver, Shape: Flag, IsNoForward: true},
		Option{Name: "-ccc-host-bits", Shape: Separate, IsNoForward: true},
		Option{Name: "-ccc-host-machine", Shape: Separate, IsNoForward: true},
		Option{Name: "-ccc-host-system", Shape: Separate, IsNoForward: true},
		Option{Name: "-ccc-host-release", Shape: Separate, IsNoForward: true},
	)
}
