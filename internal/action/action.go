// Package action defines the phase graph's nodes as a tagged variant,
// per spec.md §9's "replace runtime-type inspection with a tagged
// variant" design note. Node identity is pointer identity: Walk and the
// -ccc-print-phases printer memoize on *Action, never on structural
// equality, because a node can be legitimately shared by more than one
// parent (the graph is a DAG, not a tree). The binder does not memoize:
// it binds a node once per path that reaches it, so a subgraph shared by
// several BindArchAction wrappers is bound once per architecture.
package action

import "github.com/ccdrv/ccdrv/internal/phase"

// Kind tags which variant an Action is.
type Kind int

const (
	KindInput Kind = iota
	KindJob
	KindBindArch
)

// Action is one node in the phase graph. Exactly one of the
// kind-specific fields is meaningful, selected by Kind.
type Action struct {
	Kind Kind

	// KindInput fields.
	InputArg  string
	InputType string // cctype.Type.Name

	// KindJob fields.
	Phase       phase.Phase
	Inputs      []*Action
	ProducedType string // cctype.Type.Name

	// KindBindArch fields.
	Child *Action
	Arch  string
}

// NewInput builds an InputAction leaf.
func NewInput(arg string, typeName string) *Action {
	return &Action{Kind: KindInput, InputArg: arg, InputType: typeName}
}

// NewJob builds a JobAction over the given phase, inputs, and produced
// type.
func NewJob(p phase.Phase, inputs []*Action, producedType string) *Action {
	return &Action{Kind: KindJob, Phase: p, Inputs: inputs, ProducedType: producedType}
}

// NewBindArch wraps exactly one child action, pinning arch onto the
// subgraph below it. Children are never re-bound: wrapping an
// already-bound action is a caller error the driver-driver pass must
// avoid by construction (it binds at most once per top-level action per
// architecture).
func NewBindArch(child *Action, arch string) *Action {
	return &Action{Kind: KindBindArch, Child: child, Arch: arch}
}

// Walk calls visit once per reachable node, depth-first, pre-order,
// memoized on node identity so a node reachable through more than one
// path (the shared Link/Lipo node) is visited exactly once.
func Walk(roots []*Action, visit func(*Action)) {
	seen := make(map[*Action]bool)

	var rec func(a *Action)
	rec = func(a *Action) {
		if a == nil || seen[a] {
			return
		}

		seen[a] = true
		visit(a)

		switch a.Kind {
		case KindJob:
			for _, in := range a.Inputs {
				rec(in)
			}
		case KindBindArch:
			rec(a.Child)
		}
	}

	for _, r := range roots {
		rec(r)
	}
}
