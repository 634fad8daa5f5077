package completion

import (
	"kvshell/internal/logger"
	"kvshell/internal/normalize"
)

// UpdateKeys normalizes the raw key names and, when store is non-nil, replaces the
// "key" and "keys" candidate sets with the same list. Single- and multi-key commands
// share one vocabulary. The normalized names are returned for display.
func UpdateKeys(store CandidateStore, raw [][]byte) []string {
	keys := normalize.Strings(raw)

	if store == nil {
		logger.Debug("Completer is unavailable, key candidates not updated")
		return keys
	}

	store.Replace(RuleKey, keys)
	store.Replace(RuleKeys, keys)
	logger.Debug("Key completer updated", "candidates", len(keys))
	return keys
}
