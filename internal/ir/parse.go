package ir

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Parse inverts Serialize (property P7): for every well-formed Expr e,
// Parse(Serialize(e)) == e.
func Parse(s string) (Expr, error) {
	name, args := parseCall(strings.TrimSpace(s))
	switch name {
	case "LambdaVar":
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		return &LambdaVar{Index: idx}, nil

	case "Lambda":
		body, err := Parse(args[0])
		if err != nil {
			return nil, err
		}
		return &Lambda{Body: body}, nil

	case "App":
		fn, err := Parse(args[0])
		if err != nil {
			return nil, err
		}
		arg, err := Parse(args[1])
		if err != nil {
			return nil, err
		}
		return &App{Fn: fn, Arg: arg}, nil

	case "ExternalVar":
		pack, err := unquote(args[0])
		if err != nil {
			return nil, err
		}
		nm, err := unquote(args[1])
		if err != nil {
			return nil, err
		}
		typ, err := unquote(args[2])
		if err != nil {
			return nil, err
		}
		return &ExternalVar{Pack: pack, Name: nm, Type: typ}, nil

	case "Struct":
		tag, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		fam, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, err
		}
		var subArgs []Expr
		for _, a := range args[2:] {
			sub, err := Parse(a)
			if err != nil {
				return nil, err
			}
			subArgs = append(subArgs, sub)
		}
		return &Struct{Tag: tag, Args: subArgs, Family: DataFamily(fam)}, nil

	case "Literal":
		lit, err := parseLit(args[0])
		if err != nil {
			return nil, err
		}
		return &Literal{Value: lit}, nil

	case "Match":
		scrutinee, err := Parse(args[0])
		if err != nil {
			return nil, err
		}
		rest := args[1:]
		if len(rest)%2 != 0 {
			return nil, fmt.Errorf("ir: Parse: Match has an unpaired branch")
		}
		branches := make([]Branch, 0, len(rest)/2)
		for i := 0; i < len(rest); i += 2 {
			pat, err := ParsePattern(rest[i])
			if err != nil {
				return nil, err
			}
			body, err := Parse(rest[i+1])
			if err != nil {
				return nil, err
			}
			branches = append(branches, Branch{Pattern: pat, Body: body})
		}
		return &Match{Scrutinee: scrutinee, Branches: branches}, nil

	case "Recursion":
		inner, err := Parse(args[0])
		if err != nil {
			return nil, err
		}
		return &Recursion{Inner: inner}, nil

	default:
		return nil, fmt.Errorf("ir: Parse: unknown expr tag %q", name)
	}
}

// ParsePattern inverts SerializePattern.
func ParsePattern(s string) (Pattern, error) {
	name, args := parseCall(strings.TrimSpace(s))
	switch name {
	case "WildCard":
		return WildCard{}, nil

	case "Literal":
		lit, err := parseLit(args[0])
		if err != nil {
			return nil, err
		}
		return PatLiteral{Value: lit}, nil

	case "Var":
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		return Var{Name: idx}, nil

	case "Named":
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		inner, err := ParsePattern(args[1])
		if err != nil {
			return nil, err
		}
		return Named{Name: idx, Inner: inner}, nil

	case "ListPat":
		parts := make([]ListPart, 0, len(args))
		for _, a := range args {
			partName, partArgs := parseCall(a)
			switch partName {
			case "Left":
				opt, err := parseOptInt(partArgs[0])
				if err != nil {
					return nil, err
				}
				parts = append(parts, Splice{Name: opt})
			case "Right":
				pat, err := ParsePattern(partArgs[0])
				if err != nil {
					return nil, err
				}
				parts = append(parts, Item{Pattern: pat})
			default:
				return nil, fmt.Errorf("ir: Parse: unknown list part tag %q", partName)
			}
		}
		return NewListPat(parts)

	case "PositionalStruct":
		tag, err := parseOptInt(args[0])
		if err != nil {
			return nil, err
		}
		fam, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, err
		}
		var params []Pattern
		for _, a := range args[2:] {
			sub, err := ParsePattern(a)
			if err != nil {
				return nil, err
			}
			params = append(params, sub)
		}
		return PositionalStruct{Tag: tag, Params: params, Family: DataFamily(fam)}, nil

	case "Union":
		head, err := ParsePattern(args[0])
		if err != nil {
			return nil, err
		}
		rest := make([]Pattern, 0, len(args)-1)
		for _, a := range args[1:] {
			r, err := ParsePattern(a)
			if err != nil {
				return nil, err
			}
			rest = append(rest, r)
		}
		return NewUnion(head, rest)

	case "StrPat":
		parts := make([]StrPart, 0, len(args))
		for _, a := range args {
			partName, partArgs := parseCall(a)
			switch partName {
			case "WildStr":
				parts = append(parts, WildStr{})
			case "NamedStr":
				idx, err := strconv.Atoi(partArgs[0])
				if err != nil {
					return nil, err
				}
				parts = append(parts, NamedStr{Name: idx})
			case "LitStr":
				v, err := unquote(partArgs[0])
				if err != nil {
					return nil, err
				}
				parts = append(parts, LitStr{Value: norm.NFC.String(v)})
			default:
				return nil, fmt.Errorf("ir: Parse: unknown string part tag %q", partName)
			}
		}
		return NewStrPat(parts)

	default:
		return nil, fmt.Errorf("ir: Parse: unknown pattern tag %q", name)
	}
}

func parseLit(s string) (Lit, error) {
	if strings.HasPrefix(s, "'") {
		v, err := unquote(s)
		if err != nil {
			return Lit{}, err
		}
		return StringLiteral(norm.NFC.String(v)), nil
	}
	n, err := intFromString(s)
	if err != nil {
		return Lit{}, err
	}
	return IntegerLiteral(n), nil
}

func parseOptInt(s string) (*int, error) {
	name, args := parseCall(s)
	if name == "None" {
		return nil, nil
	}
	if name != "Some" {
		return nil, fmt.Errorf("ir: Parse: expected None/Some, got %q", s)
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

// parseCall splits "Name(a,b,c)" into ("Name", ["a","b","c"]); a bare
// "Name" with no parens returns ("Name", nil).
func parseCall(s string) (name string, args []string) {
	idx := strings.IndexByte(s, '(')
	if idx == -1 {
		return s, nil
	}
	name = s[:idx]
	inner := s[idx+1 : len(s)-1]
	if inner == "" {
		return name, nil
	}
	return name, splitTopLevel(inner)
}

// splitTopLevel splits s on commas that are not nested inside
// parentheses or a quoted string.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '\\' {
				i++
				continue
			}
			if c == '\'' {
				inQuote = false
			}
			continue
		}
		switch c {
		case '\'':
			inQuote = true
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
