package types

import (
	"strconv"
	"strings"
)

// Native is a native type spelling split into its parts.
//
//	"int(10) unsigned zerofill" -> Base "int", Args [10], Modifiers ["unsigned", "zerofill"]
//	"timestamp(6) with time zone" -> Base "timestamp", Args [6], Modifiers ["with", "time", "zone"]
//	"Nullable(Decimal(9, 2))" -> Base "nullable", Inner "Decimal(9, 2)"
type Native struct {
	Base      string   // lower-cased name before any parenthesis
	Args      []int    // integer arguments, in order
	Inner     string   // raw text inside the parentheses when it is not a list of integers
	Modifiers []string // lower-cased words after the closing parenthesis
}

// ParseNative splits a native spelling. It never fails; malformed input yields
// a Base equal to the trimmed, lower-cased input.
func ParseNative(s string) Native {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		fields := strings.Fields(strings.ToLower(s))
		return splitWords(fields)
	}

	depth := 0
	closeAt := -1
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeAt = i
			}
		}
		if closeAt >= 0 {
			break
		}
	}
	if closeAt < 0 {
		return Native{Base: strings.ToLower(s)}
	}

	n := Native{Base: strings.ToLower(strings.TrimSpace(s[:open]))}
	inner := strings.TrimSpace(s[open+1 : closeAt])
	if args, ok := parseIntArgs(inner); ok {
		n.Args = args
	} else {
		n.Inner = inner
	}
	if mods := strings.Fields(strings.ToLower(s[closeAt+1:])); len(mods) > 0 {
		n.Modifiers = mods
	}
	return n
}

// splitWords handles spellings without parentheses. Multi-word names such as
// "double precision" or "character varying" stay whole; well-known modifier
// words are split off.
func splitWords(fields []string) Native {
	for i, f := range fields {
		switch f {
		case "unsigned", "signed", "zerofill", "with", "without":
			return Native{Base: strings.Join(fields[:i], " "), Modifiers: fields[i:]}
		}
	}
	return Native{Base: strings.Join(fields, " ")}
}

func parseIntArgs(inner string) ([]int, bool) {
	if inner == "" {
		return nil, true
	}
	parts := strings.Split(inner, ",")
	args := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if strings.EqualFold(p, "max") {
			args = append(args, -1)
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		args = append(args, v)
	}
	return args, true
}

// HasModifier reports whether the modifier word is present.
func (n Native) HasModifier(word string) bool {
	for _, m := range n.Modifiers {
		if m == word {
			return true
		}
	}
	return false
}

// Arg returns the i-th argument or 0.
func (n Native) Arg(i int) int {
	if i < len(n.Args) {
		return n.Args[i]
	}
	return 0
}
