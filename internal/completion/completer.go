package completion

import "strings"

// Completer offers command names for the first word and rule candidates from a Store
// for the arguments. It implements readline.AutoCompleter.
//
// Candidates are stored in their normalized form. They are inserted as shell words:
// the normalized `\\` and `\"` escapes already read back as `\` and `"`, and spaces and
// single quotes get a backslash. Control-byte escapes such as `\n` or `\xff` cannot be
// typed back into a command line, so those keys still need to be entered by hand.
type Completer struct {
	grammar Grammar
	store   *Store
}

// NewCompleter creates a Completer reading candidates from store.
func NewCompleter(grammar Grammar, store *Store) *Completer {
	return &Completer{grammar: grammar, store: store}
}

// Do implements readline.AutoCompleter. It returns the suffixes that complete the word
// under the cursor and the length of that word.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos > len(line) {
		pos = len(line)
	}

	words, current := splitWords(line[:pos])

	var candidates []string
	if len(words) == 0 {
		candidates = c.commandCandidates(string(current))
	} else {
		candidates = c.argumentCandidates(words[0], len(words)-1)
	}

	prefix := string(current)
	for _, candidate := range candidates {
		word := shellWord(candidate)
		if strings.HasPrefix(word, prefix) && word != prefix {
			newLine = append(newLine, []rune(strings.TrimPrefix(word, prefix)+" "))
		}
	}
	return newLine, len(current)
}

// isSeparator matches the characters go-shellquote splits words on.
func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// splitWords splits head on unescaped separators. current is the word under the cursor,
// empty when the cursor follows whitespace.
func splitWords(head []rune) (words []string, current []rune) {
	var word []rune
	escaped := false
	for _, r := range head {
		switch {
		case escaped:
			escaped = false
			word = append(word, r)
		case r == '\\':
			escaped = true
			word = append(word, r)
		case isSeparator(r):
			if len(word) > 0 {
				words = append(words, string(word))
				word = nil
			}
		default:
			word = append(word, r)
		}
	}
	return words, word
}

// shellWord escapes the characters go-shellquote splits on that normalization leaves bare.
func shellWord(candidate string) string {
	var b strings.Builder
	b.Grow(len(candidate))
	for _, r := range candidate {
		if r == '\'' || isSeparator(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// commandCandidates follows the case of what the user has typed so far.
func (c *Completer) commandCandidates(prefix string) []string {
	names := c.grammar.Commands()
	if prefix != "" && strings.ToLower(prefix) == prefix {
		for i, name := range names {
			names[i] = strings.ToLower(name)
		}
	}
	return names
}

func (c *Completer) argumentCandidates(command string, argPos int) []string {
	syntax, ok := c.grammar.Lookup(command)
	if !ok {
		return nil
	}
	rule := syntax.RuleAt(argPos)
	if rule == "" || c.store == nil {
		return nil
	}
	candidates, _ := c.store.Candidates(rule)
	return candidates
}
