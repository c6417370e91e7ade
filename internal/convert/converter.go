package convert

import (
	"fmt"

	"github.com/latticelang/lattice/internal/config"
	coreerrors "github.com/latticelang/lattice/internal/errors"
	"github.com/latticelang/lattice/internal/ir"
)

// memoKey identifies one top-level binding for the converter's
// per-package memoization map (spec §5): the map is strictly grown,
// never deleted from, and read-after-write within one PackageMap's
// processing.
type memoKey struct {
	pkg  string
	name string
}

// Converter walks a PackageMap's typed bindings into IR, memoizing
// each top-level binding by (package, name) the way the teacher's
// Elaborator walks ast.Program into core.Program, one declaration at
// a time (see elaborateNode/normalize in the teacher's elaborate
// package). lambdaStack resolves a TIdent to a de Bruijn index
// directly from its position rather than caching and re-shifting a
// name_map of tags on every new binder — documented in DESIGN.md as a
// deliberate simplification of spec §4.7's literal "shift by -1"
// bookkeeping, which this stack-position scheme renders unnecessary.
type Converter struct {
	packages PackageMap
	cfg      config.NormalizerConfig
	memo     map[memoKey]ExprTag
	inFlight map[memoKey]bool
}

// NewConverter builds a Converter over the given PackageMap, tuned by
// cfg (spec §4.3, §4.8): cfg.ReductionBudget bounds normalizeTag's
// rewrite budget, cfg.MaxSerializeDepth guards the cache key it
// derives, and cfg.EnableDecisionTree picks the Match-dispatch
// strategy normalizeTag's call into ir.NormalizeWithTree uses.
func NewConverter(packages PackageMap, cfg config.NormalizerConfig) *Converter {
	return &Converter{
		packages: packages,
		cfg:      cfg,
		memo:     make(map[memoKey]ExprTag),
		inFlight: make(map[memoKey]bool),
	}
}

// ConvertPackage converts every top-level binding in pkg, in
// declaration order, so a binding's references to an earlier binding
// in the same package see a populated memo entry (spec §5).
func (c *Converter) ConvertPackage(pkg string) (map[string]ExprTag, error) {
	out := make(map[string]ExprTag)
	for _, b := range c.packages.Bindings(pkg) {
		tag, err := c.convertBinding(pkg, b)
		if err != nil {
			return nil, err
		}
		out[b.Name] = tag
	}
	return out, nil
}

// convertBinding converts and normalizes one top-level binding,
// memoizing the result under (pkg, b.Name).
func (c *Converter) convertBinding(pkg string, b Binding) (ExprTag, error) {
	key := memoKey{pkg: pkg, name: b.Name}
	if tag, ok := c.memo[key]; ok {
		return tag, nil
	}

	stack := newLambdaStack()
	if b.Recursion == Recursive {
		stack = stack.push(b.Name)
	}

	tag, err := c.convertExpr(pkg, b.Expr, stack)
	if err != nil {
		return ExprTag{}, err
	}

	if b.Recursion == Recursive {
		wrapped := &ir.Recursion{Inner: &ir.Lambda{Body: tag.IR}}
		tag = childTag(wrapped, tag)
	}

	normalized, err := c.normalizeTag(tag)
	if err != nil {
		return ExprTag{}, err
	}

	c.memo[key] = normalized
	return normalized, nil
}

// resolveImport converts and memoizes name in pkg, exactly like any
// other top-level binding, following spec §4.7's "Import" rule:
// resolve in the origin package with an empty environment, then
// surface the resulting tag.
func (c *Converter) resolveImport(pkg, name string) (ExprTag, error) {
	key := memoKey{pkg: pkg, name: name}
	if tag, ok := c.memo[key]; ok {
		return tag, nil
	}
	if c.inFlight[key] {
		return ExprTag{}, coreerrors.New(
			coreerrors.IllFormedInput, "convert",
			fmt.Sprintf("cyclic reference while resolving import %s.%s", pkg, name),
			map[string]any{"package": pkg, "name": name},
		)
	}
	c.inFlight[key] = true
	defer delete(c.inFlight, key)

	for _, b := range c.packages.Bindings(pkg) {
		if b.Name == name {
			return c.convertBinding(pkg, b)
		}
	}
	return ExprTag{}, coreerrors.New(
		coreerrors.IllFormedInput, "convert",
		fmt.Sprintf("unknown binding %s.%s", pkg, name),
		map[string]any{"package": pkg, "name": name},
	)
}

// normalizeTag reduces tag.IR to normal form under the Converter's
// configured reduction budget and Match-dispatch strategy, then
// derives a depth-guarded cache key for the result.
func (c *Converter) normalizeTag(tag ExprTag) (ExprTag, error) {
	normalized, err := ir.NormalizeWithTree(tag.IR, c.cfg.ReductionBudget, c.cfg.EnableDecisionTree)
	if err != nil {
		return ExprTag{}, err
	}
	key, err := ir.FingerprintWithDepth(normalized, c.cfg.MaxSerializeDepth)
	if err != nil {
		return ExprTag{}, err
	}
	return ExprTag{IR: normalized, Children: tag.Children, Key: key}, nil
}

// lambdaStack is an immutable cons-list of locally bound names
// (lambda params, a recursive let's own name, match-pattern bound
// names), innermost-last. A TIdent resolves to a de Bruijn index by
// its position from the end, computed fresh at each reference instead
// of cached — see the Converter doc comment.
type lambdaStack struct {
	names []string
}

func newLambdaStack() lambdaStack { return lambdaStack{} }

func (s lambdaStack) push(name string) lambdaStack {
	names := make([]string, len(s.names)+1)
	copy(names, s.names)
	names[len(names)-1] = name
	return lambdaStack{names: names}
}

// index returns the de Bruijn index for name, resolving shadowing by
// preferring the most recently pushed (innermost) match, or false if
// name is not locally bound.
func (s lambdaStack) index(name string) (int, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		if s.names[i] == name {
			return len(s.names) - 1 - i, true
		}
	}
	return 0, false
}
