package ir

// ExprHooks implements Hooks directly over IR terms, letting the
// normalizer reduce Match expressions without any runtime value
// representation. A separate Hooks implementation over an evaluator's
// own value type reuses the same MatchOne/FindMatch logic unchanged
// (spec §6).
type ExprHooks struct{}

var _ Hooks = ExprHooks{}

func (ExprHooks) AsLiteral(v any) (Lit, bool) {
	lit, ok := v.(*Literal)
	if !ok {
		return Lit{}, false
	}
	return lit.Value, true
}

// AsStruct reports v's tag and fields when v is a fully-reduced
// Struct. DataFamily is advisory (spec §3) and is not consulted here:
// in well-typed input a scrutinee's family always agrees with the
// pattern testing it.
func (ExprHooks) AsStruct(v any, _ DataFamily) (int, []any, bool) {
	s, ok := v.(*Struct)
	if !ok {
		return 0, nil, false
	}
	args := make([]any, len(s.Args))
	for i, a := range s.Args {
		args[i] = a
	}
	return s.Tag, args, true
}

// AsList walks a cons-list spine (tag 0 = nil, tag 1 = cons) and
// returns its elements only if the entire spine is a known Struct
// chain; it reports false as soon as it meets anything opaque.
func (ExprHooks) AsList(v any) ([]any, bool) {
	var items []any
	cur, ok := v.(Expr)
	if !ok {
		return nil, false
	}
	for {
		s, ok := cur.(*Struct)
		if !ok {
			return nil, false
		}
		switch s.Tag {
		case 0:
			return items, true
		case 1:
			if len(s.Args) != 2 {
				return nil, false
			}
			items = append(items, s.Args[0])
			cur = s.Args[1]
		default:
			return nil, false
		}
	}
}

// FromList builds a cons-list Struct chain out of IR terms.
func (ExprHooks) FromList(items []any) any {
	var list Expr = &Struct{Tag: 0, Args: nil, Family: Enum}
	for i := len(items) - 1; i >= 0; i-- {
		list = &Struct{Tag: 1, Args: []Expr{items[i].(Expr), list}, Family: Enum}
	}
	return list
}
