package ir

// SynthesizeConstructor builds the eta-expanded lambda term for the
// tag-th constructor of some data type with the given arity (spec
// §4.6): arity nested Lambdas wrapping a Struct whose args reference
// the binders in declaration order (the first parameter is the
// outermost binder, so it ends up at the highest de Bruijn index).
// A zero-arity constructor is just the bare Struct.
func SynthesizeConstructor(tag, arity int, family DataFamily) Expr {
	var args []Expr
	for i := 0; i < arity; i++ {
		args = append(args, &LambdaVar{Index: arity - 1 - i})
	}
	var body Expr = &Struct{Tag: tag, Args: args, Family: family}
	for i := 0; i < arity; i++ {
		body = &Lambda{Body: body}
	}
	return body
}
