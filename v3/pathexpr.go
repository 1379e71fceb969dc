package v3

import (
	"fmt"
	"strconv"

	"github.com/pact-foundation/pact-go/internal/plog"
)

// pathTokenKind is the closed set of path expression tokens. Go has no
// native sum type, so the token sequence uses one tag field plus the
// payload the tag needs, instead of one struct per kind.
type pathTokenKind int

const (
	tokenRoot pathTokenKind = iota
	tokenField
	tokenIndex
	tokenStar
	tokenStarIndex
)

type pathToken struct {
	kind  pathTokenKind
	name  string // tokenField
	index int    // tokenIndex
}

func rootToken() pathToken          { return pathToken{kind: tokenRoot} }
func fieldToken(name string) pathToken { return pathToken{kind: tokenField, name: name} }
func indexToken(i int) pathToken    { return pathToken{kind: tokenIndex, index: i} }
func starToken() pathToken          { return pathToken{kind: tokenStar} }
func starIndexToken() pathToken     { return pathToken{kind: tokenStarIndex} }

func isIdentRune(r rune, first bool) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' {
		return true
	}
	if !first && r >= '0' && r <= '9' {
		return true
	}
	return false
}

// parsePathExpression parses a "$"-rooted path expression into its token
// sequence. An empty string parses to an empty (no-root) sequence rather
// than an error - mirrors the Rust parser tolerating an absent expression.
// CalcPathWeight scores that empty sequence as 1 (a product over zero
// tokens) against any path, so it applies everywhere.
func parsePathExpression(expr string) ([]pathToken, error) {
	if expr == "" {
		return nil, nil
	}
	r := []rune(expr)
	n := len(r)
	if r[0] != '$' {
		return nil, fmt.Errorf("pact: path expression must start with '$': %q", expr)
	}
	tokens := []pathToken{rootToken()}
	i := 1
	for i < n {
		switch {
		case r[i] == '.':
			i++
			if i < n && r[i] == '*' {
				tokens = append(tokens, starToken())
				i++
				continue
			}
			start := i
			for i < n && isIdentRune(r[i], i == start) {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("pact: expected field name at offset %d in %q", start, expr)
			}
			tokens = append(tokens, fieldToken(string(r[start:i])))
		case r[i] == '[':
			i++
			if i < n && r[i] == '*' {
				i++
				if i >= n || r[i] != ']' {
					return nil, fmt.Errorf("pact: unterminated [* in %q", expr)
				}
				i++
				tokens = append(tokens, starIndexToken())
				continue
			}
			if i < n && r[i] == '\'' {
				i++
				start := i
				for i < n && r[i] != '\'' {
					i++
				}
				if i >= n {
					return nil, fmt.Errorf("pact: unterminated quoted field in %q", expr)
				}
				name := string(r[start:i])
				i++ // consume closing quote
				if i >= n || r[i] != ']' {
					return nil, fmt.Errorf("pact: unterminated ['...'] in %q", expr)
				}
				i++
				tokens = append(tokens, fieldToken(name))
				continue
			}
			start := i
			for i < n && r[i] >= '0' && r[i] <= '9' {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("pact: expected index at offset %d in %q", start, expr)
			}
			idx, err := strconv.Atoi(string(r[start:i]))
			if err != nil {
				return nil, fmt.Errorf("pact: invalid index in %q: %w", expr, err)
			}
			if i >= n || r[i] != ']' {
				return nil, fmt.Errorf("pact: unterminated [%d in %q", idx, expr)
			}
			i++
			tokens = append(tokens, indexToken(idx))
		default:
			return nil, fmt.Errorf("pact: unexpected character %q at offset %d in %q", r[i], i, expr)
		}
	}
	return tokens, nil
}

// matchToken scores how well a single concrete path fragment matches a
// single path token: 2 for an exact match, 1 for a wildcard match, 0 for
// no match at all.
func matchToken(fragment string, tok pathToken) int {
	switch tok.kind {
	case tokenRoot:
		if fragment == "$" {
			return 2
		}
		return 0
	case tokenField:
		if fragment == tok.name {
			return 2
		}
		return 0
	case tokenIndex:
		if i, err := strconv.Atoi(fragment); err == nil && i == tok.index {
			return 2
		}
		return 0
	case tokenStarIndex:
		if _, err := strconv.ParseUint(fragment, 10, 64); err == nil {
			return 1
		}
		return 0
	case tokenStar:
		return 1
	default:
		return 0
	}
}

// CalcPathWeight computes the specificity weight of a path expression
// against a concrete path (its segments, "$" first). The product of each
// token's match score: 0 if the expression doesn't apply to this path at
// all, otherwise a value a comparator can use to prefer the more specific
// of two applicable expressions. A path expression shorter than the
// concrete path still applies (it addresses a prefix); one longer than the
// concrete path never does.
func CalcPathWeight(expr string, path []string) int {
	tokens, err := parsePathExpression(expr)
	if err != nil {
		plog.Warnf("could not parse path expression %q: %v", expr, err)
		return 0
	}
	if len(path) < len(tokens) {
		return 0
	}
	weight := 1
	for i, tok := range tokens {
		weight *= matchToken(path[i], tok)
		if weight == 0 {
			return 0
		}
	}
	return weight
}

// PathLength returns the number of tokens in a path expression, used to
// require an exact-length match when resolving wildcard matchers.
func PathLength(expr string) int {
	tokens, err := parsePathExpression(expr)
	if err != nil {
		plog.Warnf("could not parse path expression %q: %v", expr, err)
		return 0
	}
	return len(tokens)
}
