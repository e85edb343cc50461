package memory

import (
	"fmt"
	"strings"

	"github.com/Jumpaku/go-drivestore"
)

type matcher func(drivestore.Resource) bool

// compileQuery supports the subset of the Drive query language used with a store:
// clauses joined by "and", each of the form
//
//	name = 'x' | name != 'x' | name contains 'x' | mimeType = 'x' | mimeType != 'x' | trashed = false
func compileQuery(q string) (matcher, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return func(drivestore.Resource) bool { return true }, nil
	}
	var clauses []matcher
	for _, clause := range strings.Split(q, " and ") {
		m, err := compileClause(strings.TrimSpace(clause))
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, m)
	}
	return func(r drivestore.Resource) bool {
		for _, m := range clauses {
			if !m(r) {
				return false
			}
		}
		return true
	}, nil
}

func compileClause(clause string) (matcher, error) {
	field, rest, ok := strings.Cut(clause, " ")
	if !ok {
		return nil, fmt.Errorf("invalid query clause %q", clause)
	}
	rest = strings.TrimSpace(rest)
	var op string
	for _, candidate := range []string{"contains", "!=", "="} {
		if strings.HasPrefix(rest, candidate) {
			op = candidate
			rest = strings.TrimSpace(strings.TrimPrefix(rest, candidate))
			break
		}
	}
	if op == "" {
		return nil, fmt.Errorf("unsupported operator in query clause %q", clause)
	}

	if field == "trashed" {
		if op != "=" || rest != "false" {
			return nil, fmt.Errorf("unsupported query clause %q", clause)
		}
		return func(drivestore.Resource) bool { return true }, nil
	}

	value, err := unquote(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid value in query clause %q: %w", clause, err)
	}
	var get func(drivestore.Resource) string
	switch field {
	case "name":
		get = func(r drivestore.Resource) string { return r.Name }
	case "mimeType":
		if op == "contains" {
			return nil, fmt.Errorf("unsupported query clause %q", clause)
		}
		get = func(r drivestore.Resource) string { return r.MediaType }
	default:
		return nil, fmt.Errorf("unsupported field in query clause %q", clause)
	}
	switch op {
	case "contains":
		return func(r drivestore.Resource) bool { return strings.Contains(get(r), value) }, nil
	case "!=":
		return func(r drivestore.Resource) bool { return get(r) != value }, nil
	default:
		return func(r drivestore.Resource) bool { return get(r) == value }, nil
	}
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", fmt.Errorf("expected a single-quoted string, got %s", s)
	}
	s = s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String(), nil
}
