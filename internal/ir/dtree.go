package ir

// DecisionTree is an optional pre-compilation of a Match's branches,
// mirroring the teacher pack's dtree package but built over this
// package's Pattern type. It speeds up dispatch for branches that are
// decidable without consulting the scrutinee's runtime shape more
// than once; it never changes which branch wins, only how fast
// find_match locates it. Like the teacher's own decision-tree path,
// this is available but off by default: Normalize always uses the
// linear FindMatch scan, and only NormalizeWithTree with
// useDecisionTree set consults a tree (see findMatchBranch), falling
// back to FindMatch whenever the tree's answer is not confirmed.
type DecisionTree interface {
	isDecisionTree()
}

// Leaf is a match: the branch at Index, ready to run through
// SolveMatch once its sub-bindings have been collected.
type Leaf struct {
	Index int
}

func (*Leaf) isDecisionTree() {}

// Fail means no branch can match: a non-exhaustive match.
type Fail struct{}

func (*Fail) isDecisionTree() {}

// Switch dispatches on the constructor tag of the value at Path (a
// sequence of field indices from the scrutinee), with one subtree per
// tag seen across the matrix and a Default for wildcard/variable
// rows. Family is the DataFamily every testable row in this matrix
// shares, needed to call Hooks.AsStruct at evaluation time.
type Switch struct {
	Path    []int
	Family  DataFamily
	Cases   map[int]DecisionTree
	Default DecisionTree
}

func (*Switch) isDecisionTree() {}

// CanCompileToTree reports whether branches are worth compiling: it
// requires at least two branches with a testable (PositionalStruct)
// head pattern and no StrPat anywhere, since StrPat is always
// NotProvable in this matcher (spec §4.4) and a decision tree cannot
// shortcut past an undecidable branch without changing semantics.
func CanCompileToTree(branches []Branch) bool {
	testable := 0
	for _, br := range branches {
		if containsStrPat(br.Pattern) {
			return false
		}
		if _, ok := br.Pattern.(PositionalStruct); ok {
			testable++
		}
	}
	return testable >= 2
}

func containsStrPat(p Pattern) bool {
	switch pat := p.(type) {
	case StrPat:
		return true
	case Named:
		return containsStrPat(pat.Inner)
	case PositionalStruct:
		for _, sub := range pat.Params {
			if containsStrPat(sub) {
				return true
			}
		}
	case Union:
		if containsStrPat(pat.Head) {
			return true
		}
		for _, r := range pat.Rest {
			if containsStrPat(r) {
				return true
			}
		}
	case ListPat:
		for _, part := range pat.Parts {
			if item, ok := part.(Item); ok && containsStrPat(item.Pattern) {
				return true
			}
		}
	}
	return false
}

// matrixRow is one row of the compilation matrix: the pattern tested
// at the current path and the original branch index it came from.
type matrixRow struct {
	pattern Pattern
	branch  int
}

// Compile builds a DecisionTree for branches whose heads are
// PositionalStruct or wildcard/variable patterns (the cases where
// tag-based dispatch is sound). When the first row has any other
// pattern shape the tree is a Leaf for that row; a later row of any
// other shape is treated like a default row by buildSwitch.
func Compile(branches []Branch) DecisionTree {
	rows := make([]matrixRow, len(branches))
	for i, br := range branches {
		rows[i] = matrixRow{pattern: br.Pattern, branch: i}
	}
	return compileMatrix(rows, nil)
}

func compileMatrix(rows []matrixRow, path []int) DecisionTree {
	if len(rows) == 0 {
		return &Fail{}
	}
	if isDefaultRow(rows[0].pattern) {
		return &Leaf{Index: rows[0].branch}
	}
	if _, ok := rows[0].pattern.(PositionalStruct); !ok {
		// Not a shape this compiler dispatches on; be conservative
		// and let the first row win, same as the linear matcher
		// would once it proved every earlier row a NoMatch.
		return &Leaf{Index: rows[0].branch}
	}
	return buildSwitch(rows, path)
}

func isDefaultRow(p Pattern) bool {
	switch p.(type) {
	case WildCard, Var:
		return true
	default:
		return false
	}
}

// buildSwitch dispatches the matrix's head position by constructor
// tag. This compiler only looks one level deep (the head pattern),
// so a case's winner is simply the earliest-indexed row among those
// whose tag matches plus any default rows — there are no nested
// sub-patterns left to recurse into at this position.
func buildSwitch(rows []matrixRow, path []int) DecisionTree {
	cases := map[int][]matrixRow{}
	var defaults []matrixRow
	var family DataFamily

	for _, row := range rows {
		ps, ok := row.pattern.(PositionalStruct)
		if !ok || ps.Tag == nil {
			defaults = append(defaults, row)
			continue
		}
		family = ps.Family
		cases[*ps.Tag] = append(cases[*ps.Tag], row)
	}

	sw := &Switch{Path: append([]int{}, path...), Family: family, Cases: map[int]DecisionTree{}}
	for tag, caseRows := range cases {
		sw.Cases[tag] = earliestLeaf(caseRows, defaults)
	}
	if len(defaults) > 0 {
		sw.Default = earliestLeaf(defaults, nil)
	} else {
		sw.Default = &Fail{}
	}
	return sw
}

// evalDecisionTree walks tree against scrutinee under hooks, returning
// the winning branch index. It only resolves a Switch when the
// scrutinee's tag is known (hooks.AsStruct succeeds); an opaque
// scrutinee at a Switch is exactly the NotProvable case the linear
// matcher would also refuse to decide, so evalDecisionTree reports ok
// = false and lets the caller fall back to FindMatch.
func evalDecisionTree(hooks Hooks, tree DecisionTree, scrutinee any) (int, bool) {
	switch t := tree.(type) {
	case *Leaf:
		return t.Index, true
	case *Fail:
		return 0, false
	case *Switch:
		tag, _, ok := hooks.AsStruct(scrutinee, t.Family)
		if !ok {
			return 0, false
		}
		if sub, found := t.Cases[tag]; found {
			return evalDecisionTree(hooks, sub, scrutinee)
		}
		if t.Default != nil {
			return evalDecisionTree(hooks, t.Default, scrutinee)
		}
		return 0, false
	default:
		return 0, false
	}
}

// earliestLeaf returns the Leaf for whichever row (matching the case
// or a default) has the smallest original branch index, since that is
// the row the linear matcher would have reached first.
func earliestLeaf(matching, defaults []matrixRow) DecisionTree {
	best := matching[0]
	for _, row := range matching[1:] {
		if row.branch < best.branch {
			best = row
		}
	}
	for _, row := range defaults {
		if row.branch < best.branch {
			best = row
		}
	}
	return &Leaf{Index: best.branch}
}
