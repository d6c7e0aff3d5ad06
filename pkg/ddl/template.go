package ddl

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// vars are the values substituted into a template.
type vars map[string]string

// render replaces every {{name}} in tmpl in a single pass, so values that
// happen to contain template tokens are never expanded. A token without a
// value fails the whole render.
func render(tmpl string, v vars) (string, error) {
	var missing []string
	out := tokenPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		name := tok[2 : len(tok)-2]
		val, ok := v[name]
		if !ok {
			if !slices.Contains(missing, name) {
				missing = append(missing, name)
			}
			return tok
		}
		return val
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("template %q: no value for %s", tmpl, strings.Join(missing, ", "))
	}
	return out, nil
}

// script collects statements and renders them semicolon-terminated, one per line.
type script struct {
	stmts []string
}

func (s *script) add(stmt string) {
	s.stmts = append(s.stmts, statement(stmt))
}

func (s *script) String() string {
	var b strings.Builder
	for i, stmt := range s.stmts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(stmt)
		b.WriteByte(';')
	}
	return b.String()
}

// statement strips surrounding whitespace and any trailing terminator.
func statement(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	}
	return s
}
