// Package completion holds the candidate sets offered by the interactive completer
// and the adapter that feeds observed key names back into them.
package completion

import (
	"sort"
	"sync"
)

// Grammar rule names fed from key listings.
const (
	RuleKey  = "key"
	RuleKeys = "keys"
)

// CandidateStore receives replacement candidate sets for grammar rules.
// Implementations must treat candidates as the complete new set for the rule.
type CandidateStore interface {
	Replace(rule string, candidates []string)
}

// Nop discards every update. It is used in non-interactive mode.
type Nop struct{}

// Replace implements CandidateStore.
func (Nop) Replace(string, []string) {}

// Store is an in-memory CandidateStore read by Completer.
type Store struct {
	mu    sync.RWMutex
	rules map[string][]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{rules: make(map[string][]string)}
}

// Replace swaps the candidate set for rule. Duplicates are dropped and the set is kept
// sorted. An empty slice is a valid set meaning "no known candidates".
func (s *Store) Replace(rule string, candidates []string) {
	set := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		set = append(set, c)
	}
	sort.Strings(set)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule] = set
}

// Candidates returns a copy of the candidate set for rule and whether the rule has
// ever been populated.
func (s *Store) Candidates(rule string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.rules[rule]
	if !ok {
		return nil, false
	}
	out := make([]string, len(set))
	copy(out, set)
	return out, true
}
