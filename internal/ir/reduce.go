package ir

// HeadReduce performs the left-outermost rewrite repeatedly until the
// head stops changing. Rule order is fixed: beta, then match, then
// fixpoint, then eta; whichever fires first produces a new term and
// the procedure re-runs from the top against that term. It always
// uses the linear FindMatch scan; see HeadReduceWithTree for the
// decision-tree-assisted variant.
func HeadReduce(hooks Hooks, expr Expr) Expr {
	return HeadReduceWithTree(hooks, expr, false)
}

// HeadReduceWithTree is HeadReduce with the Match rule optionally
// assisted by a compiled DecisionTree (config.NormalizerConfig's
// EnableDecisionTree). It never changes which branch wins, only how
// find_match locates it.
func HeadReduceWithTree(hooks Hooks, expr Expr, useDecisionTree bool) Expr {
	for {
		next, changed := headReduceOnce(hooks, expr, useDecisionTree)
		if !changed {
			return expr
		}
		expr = next
	}
}

func headReduceOnce(hooks Hooks, expr Expr, useDecisionTree bool) (Expr, bool) {
	if app, ok := expr.(*App); ok {
		if lam, ok := app.Fn.(*Lambda); ok {
			return Substitute(lam.Body, app.Arg, 0), true
		}
	}

	if m, ok := expr.(*Match); ok {
		i, r, ok := findMatchBranch(hooks, m.Scrutinee, m.Branches, useDecisionTree)
		if ok {
			return SolveMatch(m.Branches[i], r.Env), true
		}
		return expr, false
	}

	if rec, ok := expr.(*Recursion); ok {
		if lam, ok := rec.Inner.(*Lambda); ok {
			if IsClosed(lam.Body) {
				return Substitute(lam.Body, nil, 0), true
			}
		}
	}

	if lam, ok := expr.(*Lambda); ok {
		if app, ok := lam.Body.(*App); ok {
			if v, ok := app.Arg.(*LambdaVar); ok && v.Index == 0 {
				if IsClosed(app.Fn) {
					return Substitute(app.Fn, &LambdaVar{Index: 0}, 0), true
				}
			}
		}
	}

	return expr, false
}

// findMatchBranch is FindMatch, optionally accelerated by a compiled
// DecisionTree: when useDecisionTree is set and the branches are worth
// compiling (CanCompileToTree), it asks the tree which branch's tag
// matches the scrutinee and then runs the ordinary MatchOne against
// just that branch to confirm the full pattern (not only its head)
// actually matches. Any miss — an opaque scrutinee, a tag the tree
// didn't expect, or a full-pattern mismatch the tree's one-level tag
// dispatch couldn't see — falls back to the linear FindMatch scan, so
// this is purely a speed path and never a source of a different
// answer.
func findMatchBranch(hooks Hooks, scrutinee Expr, branches []Branch, useDecisionTree bool) (int, Result, bool) {
	if useDecisionTree && CanCompileToTree(branches) {
		tree := Compile(branches)
		if idx, ok := evalDecisionTree(hooks, tree, scrutinee); ok {
			r := MatchOne(hooks, branches[idx].Pattern, scrutinee, Env{})
			if r.Outcome == Matches {
				return idx, r, true
			}
		}
	}
	return FindMatch(hooks, scrutinee, branches)
}

// SolveMatch builds the nested-application chain that beta reduction
// then unwinds: App(App(...App(body, env[k-1])...), env[0]), applying
// in reverse-index order so the innermost Lambda binder in body
// receives slot 0.
func SolveMatch(branch Branch, env Env) Expr {
	k := VarCount(branch.Pattern)
	result := branch.Body
	for slot := k - 1; slot >= 0; slot-- {
		v, ok := env[slot]
		var arg Expr
		if ok {
			arg = v.(Expr)
		}
		result = &App{Fn: result, Arg: arg}
	}
	return result
}
