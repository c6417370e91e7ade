package ir

// Hooks decouples the matcher from any one value representation: the
// same MatchOne/FindMatch logic matches IR terms against patterns
// (via ExprHooks below) and, with a different Hooks implementation
// supplied by a runtime evaluator, matches live runtime values.
type Hooks interface {
	// AsLiteral returns the literal denoted by v, if v is one.
	AsLiteral(v any) (Lit, bool)
	// AsStruct returns v's constructor tag and fields if v is a
	// constructed value of the given family.
	AsStruct(v any, family DataFamily) (tag int, args []any, ok bool)
	// AsList returns v's elements if v is fully known to be a list.
	AsList(v any) ([]any, bool)
	// FromList constructs a cons-list value from items, used to bind
	// the prefix captured by a non-tail Splice.
	FromList(items []any) any
}

// Outcome is the three-valued result of matching one pattern.
type Outcome int

const (
	// Matches means the value definitely matches.
	Matches Outcome = iota
	// NoMatch means the value definitely does not match.
	NoMatch
	// NotProvable means the matcher cannot decide, typically because
	// the value is opaque (not a constructor) at its head.
	NotProvable
)

func (o Outcome) String() string {
	switch o {
	case Matches:
		return "Matches"
	case NoMatch:
		return "NoMatch"
	case NotProvable:
		return "NotProvable"
	default:
		return "Outcome(?)"
	}
}

// Env binds pattern slot indices (Var.Name/Named.Name/NamedStr.Name)
// to the substructure of the value that matched there.
type Env map[int]any

// Result is the full outcome of a match attempt: Outcome plus, when
// Outcome == Matches, the bindings accumulated along the way.
type Result struct {
	Outcome Outcome
	Env     Env
}

func matched(env Env) Result   { return Result{Outcome: Matches, Env: env} }
func noMatch() Result          { return Result{Outcome: NoMatch} }
func notProvable() Result      { return Result{Outcome: NotProvable} }

func cloneEnv(env Env) Env {
	out := make(Env, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

func mergeEnv(env Env, k int, v any) Env {
	out := cloneEnv(env)
	out[k] = v
	return out
}

// MatchOne matches pattern against value under the given Hooks,
// starting from env (normally empty). It is sound in both directions:
// Matches(env) means the value definitely matches and env carries
// every name the pattern binds; NoMatch means it definitely does not,
// regardless of how any NotProvable sub-position might resolve; and
// NotProvable means the matcher could not decide.
func MatchOne(hooks Hooks, pattern Pattern, value any, env Env) Result {
	switch p := pattern.(type) {
	case WildCard:
		return matched(env)

	case PatLiteral:
		lit, ok := hooks.AsLiteral(value)
		if !ok {
			return notProvable()
		}
		if lit.Equal(p.Value) {
			return matched(env)
		}
		return noMatch()

	case Var:
		return matched(mergeEnv(env, p.Name, value))

	case Named:
		r := MatchOne(hooks, p.Inner, value, env)
		if r.Outcome == Matches {
			return matched(mergeEnv(r.Env, p.Name, value))
		}
		return r

	case PositionalStruct:
		tag, args, ok := hooks.AsStruct(value, p.Family)
		if !ok {
			return notProvable()
		}
		if p.Tag != nil && tag != *p.Tag {
			return noMatch()
		}
		return matchPositional(hooks, p.Params, args, env)

	case ListPat:
		return matchListPat(hooks, p, value, env)

	case Union:
		arms := append([]Pattern{p.Head}, p.Rest...)
		for _, arm := range arms {
			r := MatchOne(hooks, arm, value, env)
			if r.Outcome != NoMatch {
				return r
			}
		}
		return noMatch()

	case StrPat:
		return notProvable()

	default:
		return notProvable()
	}
}

// matchPositional folds left over (pattern_i, value_i) pairs. A
// NoMatch at any position is final; a NotProvable downgrades the
// final answer but scanning continues so a later NoMatch can still
// prove rejection.
func matchPositional(hooks Hooks, patterns []Pattern, values []any, env Env) Result {
	if len(patterns) != len(values) {
		return noMatch()
	}
	cur := env
	sawNotProvable := false
	for i, p := range patterns {
		r := MatchOne(hooks, p, values[i], cur)
		switch r.Outcome {
		case NoMatch:
			return noMatch()
		case NotProvable:
			sawNotProvable = true
		case Matches:
			cur = r.Env
		}
	}
	if sawNotProvable {
		return notProvable()
	}
	return matched(cur)
}

// matchListPat walks ListPat.Parts structurally, one element at a
// time, so any number of Item parts may precede or follow the single
// permitted Splice.
func matchListPat(hooks Hooks, p ListPat, value any, env Env) Result {
	parts := p.Parts

	// ListPat([]): require nil (tag 0).
	if len(parts) == 0 {
		tag, _, ok := hooks.AsStruct(value, Enum)
		if !ok {
			return notProvable()
		}
		if tag == 0 {
			return matched(env)
		}
		return noMatch()
	}

	// ListPat([Splice(opt)]): tail splice, unconditional match.
	if len(parts) == 1 {
		if s, ok := parts[0].(Splice); ok {
			return bindSplice(s, value, env)
		}
	}

	if s, ok := parts[0].(Splice); ok {
		// Splice(opt) :: rest, rest nonempty (invariant: no further
		// splice in rest). Split the value into a prefix bound to
		// opt and an exact-length tail matched against rest.
		return matchSpliceThenRest(hooks, s, parts[1:], value, env)
	}

	// Item(ph) :: rest: require a cons cell, match head then recurse
	// on the tail with the remaining parts.
	item := parts[0].(Item)
	tag, args, ok := hooks.AsStruct(value, Enum)
	if !ok {
		return notProvable()
	}
	if tag != 1 || len(args) != 2 {
		return noMatch()
	}
	head := MatchOne(hooks, item.Pattern, args[0], env)
	if head.Outcome == NoMatch {
		return noMatch()
	}
	tail := matchListPat(hooks, ListPat{Parts: parts[1:]}, args[1], envOrEmpty(head))
	return composeTwo(head, tail)
}

func envOrEmpty(r Result) Env {
	if r.Outcome == Matches {
		return r.Env
	}
	return Env{}
}

func composeTwo(a, b Result) Result {
	if a.Outcome == NoMatch || b.Outcome == NoMatch {
		return noMatch()
	}
	if a.Outcome == NotProvable || b.Outcome == NotProvable {
		return notProvable()
	}
	return matched(b.Env)
}

func bindSplice(s Splice, value any, env Env) Result {
	if s.Name == nil {
		return matched(env)
	}
	return matched(mergeEnv(env, *s.Name, value))
}

// matchSpliceThenRest handles Splice(opt) :: rest where rest is
// nonempty and splice-free: require as_list(value) to succeed, split
// off the last len(rest) items as an exact tail matched positionally
// against rest, and bind the prefix to opt if named.
func matchSpliceThenRest(hooks Hooks, splice Splice, rest []ListPart, value any, env Env) Result {
	items, ok := hooks.AsList(value)
	if !ok {
		return notProvable()
	}
	if len(items) < len(rest) {
		return noMatch()
	}

	splitAt := len(items) - len(rest)
	prefix, tail := items[:splitAt], items[splitAt:]

	cur := env
	sawNotProvable := false
	for i, part := range rest {
		item := part.(Item)
		r := MatchOne(hooks, item.Pattern, tail[i], cur)
		switch r.Outcome {
		case NoMatch:
			return noMatch()
		case NotProvable:
			sawNotProvable = true
		case Matches:
			cur = r.Env
		}
	}

	if splice.Name != nil {
		cur = mergeEnv(cur, *splice.Name, hooks.FromList(prefix))
	}

	if sawNotProvable {
		return notProvable()
	}
	return matched(cur)
}

// FindMatch iterates branches in order: the first Matches stops the
// search; a NoMatch advances to the next branch; a NotProvable stops
// the search entirely with no decision, since deciding a later branch
// before an earlier undecided one would be unsound.
func FindMatch(hooks Hooks, scrutinee any, branches []Branch) (int, Result, bool) {
	for i, br := range branches {
		r := MatchOne(hooks, br.Pattern, scrutinee, Env{})
		switch r.Outcome {
		case Matches:
			return i, r, true
		case NoMatch:
			continue
		case NotProvable:
			return -1, Result{}, false
		}
	}
	return -1, Result{}, false
}
