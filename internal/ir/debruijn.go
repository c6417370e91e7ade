package ir

// MaxLambdaVar and VarSet are free-standing aliases for Expr's own
// methods, offered as package-level functions; the rewriter's
// fixpoint/eta guards go through IsClosed below.
func MaxLambdaVar(e Expr) *int { return e.MaxLambdaVar() }

// VarSet returns e's free de Bruijn indices.
func VarSet(e Expr) map[int]struct{} { return e.VarSet() }

// IsClosed reports whether e has no free LambdaVar at all, i.e.
// MaxLambdaVar(e) is None or points at a negative index. This is the
// exact guard spec.md uses for safe caching and for the eta/fixpoint
// reductions in §4.2.
func IsClosed(e Expr) bool {
	m := e.MaxLambdaVar()
	return m == nil || *m < 0
}
