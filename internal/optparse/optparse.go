// Package optparse turns a raw token vector into an ordered argument
// list, guided by the schema in internal/optschema. Parsing is greedy,
// left-to-right, and chooses the longest matching prefix from the
// schema; ties are broken by declaration order. An unrecognized token
// never errors — it survives as an Unknown argument so the binder can
// still forward it.
//
// Parse is a pure function over (schema, tokens): it holds no state of
// its own, which is what lets -Xarch_<A>'s embedded option text be
// re-parsed through the very same schema.
package optparse

import (
	"strings"

	"github.com/google/shlex"

	"github.com/ccdrv/ccdrv/internal/errors"
	"github.com/ccdrv/ccdrv/internal/optschema"
)

// Arg is an immutable record of one argument occurrence: which schema
// entry matched, the raw tokens it consumed (for exact round-trip
// rendering), and its derived value(s).
type Arg struct {
	Option   optschema.Option
	RawStart int
	Raw      []string
	Values   []string
}

// Value returns the occurrence's single derived value, or "" if none.
func (a *Arg) Value() string {
	if len(a.Values) == 0 {
		return ""
	}

	return a.Values[0]
}

// MatchesName reports whether this occurrence's schema entry has the
// given stable name. Input and Unknown arguments never match a name.
func (a *Arg) MatchesName(name string) bool {
	return a.Option.Shape != optschema.Input && a.Option.Shape != optschema.Unknown && a.Option.Name == name
}

// ArgList is the ordered, appendable list of argument occurrences
// produced by Parse.
type ArgList struct {
	Tokens []string
	Args   []*Arg
}

// GetLastArg returns the final occurrence of the named option, or nil.
// Last-wins semantics for scalar flags.
func (l *ArgList) GetLastArg(name string) *Arg {
	var last *Arg

	for _, a := range l.Args {
		if a.MatchesName(name) {
			last = a
		}
	}

	return last
}

// GetValues returns the derived values of every occurrence of name, in
// input order.
func (l *ArgList) GetValues(name string) []string {
	var out []string

	for _, a := range l.Args {
		if a.MatchesName(name) {
			out = append(out, a.Values...)
		}
	}

	return out
}

// HasFlag reports whether the named flag-shaped option occurs at all.
func (l *ArgList) HasFlag(name string) bool {
	return l.GetLastArg(name) != nil
}

// Inputs returns every Input-shaped occurrence (positional arguments),
// in input order.
func (l *ArgList) Inputs() []*Arg {
	var out []*Arg

	for _, a := range l.Args {
		if a.Option.Shape == optschema.Input {
			out = append(out, a)
		}
	}

	return out
}

// Unknowns returns every Unknown occurrence, in input order.
func (l *ArgList) Unknowns() []*Arg {
	var out []*Arg

	for _, a := range l.Args {
		if a.Option.Shape == optschema.Unknown {
			out = append(out, a)
		}
	}

	return out
}

// Render reproduces the exact tokens the whole list consumed. Since
// Parse consumes tokens strictly left-to-right without reordering, this
// is required to equal the tokens Parse was given, for every argument
// that was not derived (e.g. not injected by -Xarch_ rewriting).
func (l *ArgList) Render() []string {
	var out []string

	for _, a := range l.Args {
		out = append(out, a.Raw...)
	}

	return out
}

// Parse greedily matches tokens against table, longest-prefix-wins, ties
// broken by declaration order.
func Parse(table *optschema.Table, tokens []string) (*ArgList, error) {
	list := &ArgList{Tokens: tokens}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		if tok == "-" {
			list.Args = append(list.Args, &Arg{
				Option:   optschema.Option{Shape: optschema.Input},
				RawStart: i,
				Raw:      []string{tok},
				Values:   []string{tok},
			})
			i++

			continue
		}

		entry, matched := longestMatch(table, tok)
		if !matched {
			if strings.HasPrefix(tok, "-") && len(tok) > 1 {
				list.Args = append(list.Args, &Arg{
					Option:   optschema.Option{Shape: optschema.Unknown},
					RawStart: i,
					Raw:      []string{tok},
					Values:   []string{tok},
				})
			} else {
				list.Args = append(list.Args, &Arg{
					Option:   optschema.Option{Shape: optschema.Input},
					RawStart: i,
					Raw:      []string{tok},
					Values:   []string{tok},
				})
			}

			i++

			continue
		}

		arg, consumed, err := extract(entry, tokens, i)
		if err != nil {
			return nil, err
		}

		list.Args = append(list.Args, arg)
		i += consumed
	}

	return list, nil
}

// longestMatch finds the schema entry whose Name is the longest prefix
// of tok, restricted to entries whose shape is consistent with a prefix
// match (joined-family shapes allow a non-empty suffix; all other
// shapes require an exact match). Ties go to declaration order.
func longestMatch(table *optschema.Table, tok string) (optschema.Option, bool) {
	var (
		best    optschema.Option
		bestLen = -1
		found   bool
	)

	for _, e := range table.Entries() {
		if e.Shape == optschema.Input || e.Shape == optschema.Unknown {
			continue
		}

		if !strings.HasPrefix(tok, e.Name) {
			continue
		}

		switch e.Shape {
		case optschema.Joined, optschema.CommaJoined, optschema.JoinedAndSeparate, optschema.JoinedOrSeparate:
			// joined-family: any prefix match is acceptable, including
			// an empty suffix.
		default:
			if tok != e.Name {
				continue
			}
		}

		if len(e.Name) > bestLen {
			best = e
			bestLen = len(e.Name)
			found = true
		}
	}

	return best, found
}

// extract pulls the value(s) for entry starting at tokens[i], per its
// Shape, and returns how many tokens it consumed.
func extract(entry optschema.Option, tokens []string, i int) (*Arg, int, error) {
	tok := tokens[i]

	switch entry.Shape {
	case optschema.Flag:
		return &Arg{Option: entry, RawStart: i, Raw: []string{tok}}, 1, nil

	case optschema.Joined:
		value := strings.TrimPrefix(tok, entry.Name)
		return &Arg{Option: entry, RawStart: i, Raw: []string{tok}, Values: []string{value}}, 1, nil

	case optschema.Separate:
		if i+1 >= len(tokens) {
			return nil, 0, errors.New(errors.MissingValue{OptionName: entry.Name})
		}

		return &Arg{
			Option:   entry,
			RawStart: i,
			Raw:      []string{tok, tokens[i+1]},
			Values:   []string{tokens[i+1]},
		}, 2, nil

	case optschema.JoinedOrSeparate:
		if tok != entry.Name {
			value := strings.TrimPrefix(tok, entry.Name)
			return &Arg{Option: entry, RawStart: i, Raw: []string{tok}, Values: []string{value}}, 1, nil
		}

		if i+1 >= len(tokens) {
			return nil, 0, errors.New(errors.MissingValue{OptionName: entry.Name})
		}

		return &Arg{
			Option:   entry,
			RawStart: i,
			Raw:      []string{tok, tokens[i+1]},
			Values:   []string{tokens[i+1]},
		}, 2, nil

	case optschema.JoinedAndSeparate:
		joined := strings.TrimPrefix(tok, entry.Name)

		if i+1 >= len(tokens) {
			return nil, 0, errors.New(errors.MissingValue{OptionName: entry.Name})
		}

		return &Arg{
			Option:   entry,
			RawStart: i,
			Raw:      []string{tok, tokens[i+1]},
			Values:   []string{joined, tokens[i+1]},
		}, 2, nil

	case optschema.CommaJoined:
		suffix := strings.TrimPrefix(tok, entry.Name)
		values := strings.Split(suffix, ",")

		return &Arg{Option: entry, RawStart: i, Raw: []string{tok}, Values: values}, 1, nil

	case optschema.MultipleValues:
		n := entry.NumValues
		if i+n >= len(tokens) {
			return nil, 0, errors.New(errors.MissingValue{OptionName: entry.Name})
		}

		raw := append([]string{tok}, tokens[i+1:i+1+n]...)

		return &Arg{Option: entry, RawStart: i, Raw: raw, Values: tokens[i+1 : i+1+n]}, 1 + n, nil

	default:
		return &Arg{Option: entry, RawStart: i, Raw: []string{tok}}, 1, nil
	}
}

// XarchArch returns the architecture name embedded in a -Xarch_<A>
// occurrence's joined value.
func XarchArch(a *Arg) string {
	if len(a.Values) < 1 {
		return ""
	}

	return a.Values[0]
}

// RewriteXarch re-parses the embedded option text of a -Xarch_<A>
// occurrence through table, recovering it as a fresh ArgList. The
// embedded text is first re-lexed with shlex so a quoted multi-word
// option (e.g. -Xarch_i386 "-O2 -fPIC") splits back into its constituent
// tokens before re-entering the schema.
func RewriteXarch(table *optschema.Table, a *Arg) (*ArgList, error) {
	if len(a.Values) < 2 {
		return &ArgList{}, nil
	}

	embedded := a.Values[1]

	toks, err := shlex.Split(embedded)
	if err != nil {
		toks = []string{embedded}
	}

	return Parse(table, toks)
}
