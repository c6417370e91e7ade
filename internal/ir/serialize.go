package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/text/unicode/norm"

	coreerrors "github.com/latticelang/lattice/internal/errors"
)

// Serialize produces the deterministic S-expression-like textual
// encoding spec.md §4.8 describes, used as a stable cache key. Two
// structurally equal Exprs always serialize identically; two Exprs
// differing only in the advisory DataFamily marker do not, because
// DataFamily is part of Expr's data model (spec §3) and Parse must be
// able to reconstruct it for the round-trip property P7 — the
// illustrative grammar in §4.8 omits it, but since this format has no
// external consumer we include it rather than lose information on
// round-trip.
func Serialize(e Expr) string {
	var b strings.Builder
	serializeExpr(&b, e)
	return b.String()
}

// SerializePattern serializes a Pattern using the same grammar.
func SerializePattern(p Pattern) string {
	var b strings.Builder
	serializePattern(&b, p)
	return b.String()
}

// Fingerprint returns a short content hash of e's serialized form, a
// ready-made cache key for downstream systems that would otherwise
// re-derive their own hash over the same text (spec §3, §9).
func Fingerprint(e Expr) string {
	sum := sha256.Sum256([]byte(Serialize(e)))
	return hex.EncodeToString(sum[:])[:16]
}

// SerializeWithDepth is Serialize guarded by maxDepth: it refuses to
// walk a term whose nesting exceeds maxDepth, the construction-time
// counterpart to the reduction budget's fail-closed posture. maxDepth
// <= 0 means unlimited, matching config.NormalizerConfig's zero value.
func SerializeWithDepth(e Expr, maxDepth int) (string, error) {
	if maxDepth > 0 {
		if d := exprDepth(e); d > maxDepth {
			return "", coreerrors.New(
				coreerrors.SerializeDepthExceeded, "serialize",
				fmt.Sprintf("expression nesting depth %d exceeds max_serialize_depth %d", d, maxDepth),
				map[string]any{"depth": d, "max_depth": maxDepth},
			)
		}
	}
	return Serialize(e), nil
}

// FingerprintWithDepth is Fingerprint guarded the same way
// SerializeWithDepth guards Serialize.
func FingerprintWithDepth(e Expr, maxDepth int) (string, error) {
	s, err := SerializeWithDepth(e, maxDepth)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16], nil
}

// exprDepth returns e's structural nesting depth: a leaf (LambdaVar,
// ExternalVar, Literal) is depth 1, and every other case is one more
// than its deepest child.
func exprDepth(e Expr) int {
	switch ex := e.(type) {
	case *LambdaVar, *ExternalVar, *Literal:
		return 1
	case *Lambda:
		return 1 + exprDepth(ex.Body)
	case *App:
		return 1 + max(exprDepth(ex.Fn), exprDepth(ex.Arg))
	case *Struct:
		d := 0
		for _, a := range ex.Args {
			d = max(d, exprDepth(a))
		}
		return 1 + d
	case *Match:
		d := exprDepth(ex.Scrutinee)
		for _, br := range ex.Branches {
			d = max(d, max(patternDepth(br.Pattern), exprDepth(br.Body)))
		}
		return 1 + d
	case *Recursion:
		return 1 + exprDepth(ex.Inner)
	default:
		return 1
	}
}

// patternDepth mirrors exprDepth for Pattern, so a Match branch's
// pattern nesting counts toward the guard alongside its body.
func patternDepth(p Pattern) int {
	switch pat := p.(type) {
	case WildCard, PatLiteral, Var:
		return 1
	case Named:
		return 1 + patternDepth(pat.Inner)
	case ListPat:
		d := 0
		for _, part := range pat.Parts {
			if item, ok := part.(Item); ok {
				d = max(d, patternDepth(item.Pattern))
			}
		}
		return 1 + d
	case PositionalStruct:
		d := 0
		for _, sub := range pat.Params {
			d = max(d, patternDepth(sub))
		}
		return 1 + d
	case Union:
		d := patternDepth(pat.Head)
		for _, r := range pat.Rest {
			d = max(d, patternDepth(r))
		}
		return 1 + d
	case StrPat:
		return 1
	default:
		return 1
	}
}

func serializeExpr(b *strings.Builder, e Expr) {
	switch ex := e.(type) {
	case *LambdaVar:
		fmt.Fprintf(b, "LambdaVar(%d)", ex.Index)

	case *Lambda:
		b.WriteString("Lambda(")
		serializeExpr(b, ex.Body)
		b.WriteByte(')')

	case *App:
		b.WriteString("App(")
		serializeExpr(b, ex.Fn)
		b.WriteByte(',')
		serializeExpr(b, ex.Arg)
		b.WriteByte(')')

	case *ExternalVar:
		fmt.Fprintf(b, "ExternalVar(%s,%s,%s)", quote(ex.Pack), quote(ex.Name), quote(ex.Type))

	case *Struct:
		fmt.Fprintf(b, "Struct(%d,%d", ex.Tag, int(ex.Family))
		for _, a := range ex.Args {
			b.WriteByte(',')
			serializeExpr(b, a)
		}
		b.WriteByte(')')

	case *Literal:
		b.WriteString("Literal(")
		serializeLit(b, ex.Value)
		b.WriteByte(')')

	case *Match:
		b.WriteString("Match(")
		serializeExpr(b, ex.Scrutinee)
		for _, br := range ex.Branches {
			b.WriteByte(',')
			serializePattern(b, br.Pattern)
			b.WriteByte(',')
			serializeExpr(b, br.Body)
		}
		b.WriteByte(')')

	case *Recursion:
		b.WriteString("Recursion(")
		serializeExpr(b, ex.Inner)
		b.WriteByte(')')

	default:
		panic(fmt.Sprintf("ir: Serialize: unhandled expr type %T", e))
	}
}

func serializeLit(b *strings.Builder, l Lit) {
	switch l.Kind {
	case IntegerLit:
		b.WriteString(l.Int.String())
	case StringLit:
		b.WriteString(quote(norm.NFC.String(l.String)))
	default:
		panic("ir: serializeLit: invalid Lit")
	}
}

func serializePattern(b *strings.Builder, p Pattern) {
	switch pat := p.(type) {
	case WildCard:
		b.WriteString("WildCard")

	case PatLiteral:
		b.WriteString("Literal(")
		serializeLit(b, pat.Value)
		b.WriteByte(')')

	case Var:
		fmt.Fprintf(b, "Var(%d)", pat.Name)

	case Named:
		fmt.Fprintf(b, "Named(%d,", pat.Name)
		serializePattern(b, pat.Inner)
		b.WriteByte(')')

	case ListPat:
		b.WriteString("ListPat(")
		for i, part := range pat.Parts {
			if i > 0 {
				b.WriteByte(',')
			}
			switch pp := part.(type) {
			case Splice:
				b.WriteString("Left(")
				b.WriteString(serializeOptInt(pp.Name))
				b.WriteByte(')')
			case Item:
				b.WriteString("Right(")
				serializePattern(b, pp.Pattern)
				b.WriteByte(')')
			}
		}
		b.WriteByte(')')

	case PositionalStruct:
		fmt.Fprintf(b, "PositionalStruct(%s,%d", serializeOptInt(pat.Tag), int(pat.Family))
		for _, sub := range pat.Params {
			b.WriteByte(',')
			serializePattern(b, sub)
		}
		b.WriteByte(')')

	case Union:
		b.WriteString("Union(")
		serializePattern(b, pat.Head)
		for _, r := range pat.Rest {
			b.WriteByte(',')
			serializePattern(b, r)
		}
		b.WriteByte(')')

	case StrPat:
		b.WriteString("StrPat(")
		for i, part := range pat.Parts {
			if i > 0 {
				b.WriteByte(',')
			}
			switch sp := part.(type) {
			case WildStr:
				b.WriteString("WildStr")
			case NamedStr:
				fmt.Fprintf(b, "NamedStr(%d)", sp.Name)
			case LitStr:
				b.WriteString("LitStr(")
				b.WriteString(quote(norm.NFC.String(sp.Value)))
				b.WriteByte(')')
			}
		}
		b.WriteByte(')')

	default:
		panic(fmt.Sprintf("ir: SerializePattern: unhandled pattern type %T", p))
	}
}

func serializeOptInt(opt *int) string {
	if opt == nil {
		return "None"
	}
	return fmt.Sprintf("Some(%d)", *opt)
}

// quote applies the §4.8 string escaping: single-quote delimited,
// backslash-escaping ' and \.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", fmt.Errorf("ir: unquote: not a quoted string: %q", s)
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			b.WriteByte(inner[i])
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func intFromString(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("ir: not an integer: %q", s)
	}
	return n, nil
}
