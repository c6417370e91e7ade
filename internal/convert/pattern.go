package convert

import (
	"golang.org/x/text/unicode/norm"

	"github.com/latticelang/lattice/internal/ir"
)

// collectPatternNames returns pat's bound names in first-occurrence
// traversal order; its length is var_count(pattern) and its position
// for a given name is the dense index the converter assigns it (spec
// §3: "the converter maps surface names to indices by
// names.indexOf(name) over the pattern's name list").
func collectPatternNames(pat TypedPattern) []string {
	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var walk func(TypedPattern)
	walk = func(p TypedPattern) {
		switch pp := p.(type) {
		case TWildCardPat, TLitPat:
			// contribute nothing
		case TVarPat:
			add(pp.Name)
		case TNamedPat:
			add(pp.Name)
			walk(pp.Inner)
		case TListPat:
			for _, part := range pp.Parts {
				switch lp := part.(type) {
				case TItemPat:
					walk(lp.Pattern)
				case TSplicePat:
					if lp.Name != nil {
						add(*lp.Name)
					}
				}
			}
		case TPositionalStructPat:
			for _, sub := range pp.Params {
				walk(sub)
			}
		case TUnionPat:
			// All union arms bind the same names by construction; only
			// the head's names are consulted (spec §3).
			walk(pp.Head)
		case TStrPat:
			for _, part := range pp.Parts {
				if ns, ok := part.(TNamedStrPat); ok {
					add(ns.Name)
				}
			}
		}
	}
	walk(pat)
	return names
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// convertPattern translates a TypedPattern into an ir.Pattern,
// resolving each surface name to its dense slot index over names
// (collectPatternNames's output for the enclosing arm's full
// pattern).
func convertPattern(pat TypedPattern, names []string) (ir.Pattern, error) {
	switch p := pat.(type) {
	case TWildCardPat:
		return ir.WildCard{}, nil

	case TLitPat:
		return ir.PatLiteral{Value: normalizeLit(p.Value)}, nil

	case TVarPat:
		return ir.Var{Name: indexOf(names, p.Name)}, nil

	case TNamedPat:
		inner, err := convertPattern(p.Inner, names)
		if err != nil {
			return nil, err
		}
		return ir.Named{Name: indexOf(names, p.Name), Inner: inner}, nil

	case TListPat:
		parts := make([]ir.ListPart, len(p.Parts))
		for i, part := range p.Parts {
			switch lp := part.(type) {
			case TItemPat:
				sub, err := convertPattern(lp.Pattern, names)
				if err != nil {
					return nil, err
				}
				parts[i] = ir.Item{Pattern: sub}
			case TSplicePat:
				var slot *int
				if lp.Name != nil {
					idx := indexOf(names, *lp.Name)
					slot = &idx
				}
				parts[i] = ir.Splice{Name: slot}
			}
		}
		return ir.NewListPat(parts)

	case TPositionalStructPat:
		params := make([]ir.Pattern, len(p.Params))
		for i, sub := range p.Params {
			converted, err := convertPattern(sub, names)
			if err != nil {
				return nil, err
			}
			params[i] = converted
		}
		return ir.PositionalStruct{Tag: p.Tag, Params: params, Family: p.Family}, nil

	case TUnionPat:
		head, err := convertPattern(p.Head, names)
		if err != nil {
			return nil, err
		}
		rest := make([]ir.Pattern, len(p.Rest))
		for i, r := range p.Rest {
			converted, err := convertPattern(r, names)
			if err != nil {
				return nil, err
			}
			rest[i] = converted
		}
		return ir.NewUnion(head, rest)

	case TStrPat:
		parts := make([]ir.StrPart, len(p.Parts))
		for i, part := range p.Parts {
			switch sp := part.(type) {
			case TWildStrPat:
				parts[i] = ir.WildStr{}
			case TNamedStrPat:
				parts[i] = ir.NamedStr{Name: indexOf(names, sp.Name)}
			case TLitStrPat:
				parts[i] = ir.LitStr{Value: norm.NFC.String(sp.Value)}
			}
		}
		return ir.NewStrPat(parts)

	default:
		return nil, nil
	}
}
