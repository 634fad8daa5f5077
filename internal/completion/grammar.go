package completion

import (
	"sort"
	"strings"
)

// Argument rule names that are not fed from replies.
const (
	RuleValue   = "value"
	RulePattern = "pattern"
	RuleNumber  = "number"
)

// Syntax describes the arguments of one command. When Variadic is set the last rule
// repeats for every further argument.
type Syntax struct {
	Args     []string
	Variadic bool
}

// RuleAt returns the rule for the zero-based argument position, or "" past the end.
func (s Syntax) RuleAt(pos int) string {
	if len(s.Args) == 0 {
		return ""
	}
	if pos < len(s.Args) {
		return s.Args[pos]
	}
	if s.Variadic {
		return s.Args[len(s.Args)-1]
	}
	return ""
}

// Grammar maps upper-case command names to their syntax.
type Grammar map[string]Syntax

// DefaultGrammar covers the key-space commands whose arguments benefit from
// key-name completion.
func DefaultGrammar() Grammar {
	return Grammar{
		"APPEND":   {Args: []string{RuleKey, RuleValue}},
		"DECR":     {Args: []string{RuleKey}},
		"DEL":      {Args: []string{RuleKeys}, Variadic: true},
		"DUMP":     {Args: []string{RuleKey}},
		"EXISTS":   {Args: []string{RuleKeys}, Variadic: true},
		"EXPIRE":   {Args: []string{RuleKey, RuleNumber}},
		"GET":      {Args: []string{RuleKey}},
		"HGETALL":  {Args: []string{RuleKey}},
		"INCR":     {Args: []string{RuleKey}},
		"KEYS":     {Args: []string{RulePattern}},
		"LRANGE":   {Args: []string{RuleKey, RuleNumber, RuleNumber}},
		"MGET":     {Args: []string{RuleKeys}, Variadic: true},
		"PERSIST":  {Args: []string{RuleKey}},
		"PING":     {},
		"PTTL":     {Args: []string{RuleKey}},
		"RENAME":   {Args: []string{RuleKey, RuleKey}},
		"SCAN":     {Args: []string{RuleNumber}},
		"SET":      {Args: []string{RuleKey, RuleValue}},
		"SMEMBERS": {Args: []string{RuleKey}},
		"STRLEN":   {Args: []string{RuleKey}},
		"TOUCH":    {Args: []string{RuleKeys}, Variadic: true},
		"TTL":      {Args: []string{RuleKey}},
		"TYPE":     {Args: []string{RuleKey}},
		"UNLINK":   {Args: []string{RuleKeys}, Variadic: true},
	}
}

// Commands returns the command names, sorted.
func (g Grammar) Commands() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds the syntax of a command case-insensitively.
func (g Grammar) Lookup(command string) (Syntax, bool) {
	s, ok := g[strings.ToUpper(command)]
	return s, ok
}
