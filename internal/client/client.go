// Package client defines what the shell needs from a protocol client and provides a
// replay client that answers from recorded replies.
package client

import (
	"errors"
	"strings"

	"kvshell/pkg/kvtypes"
)

// ErrNoReply is returned when a replay has no recorded reply for a command.
var ErrNoReply = errors.New("no reply recorded")

// Client sends one command and returns the server's reply.
type Client interface {
	Do(args []string) (kvtypes.Reply, error)
}

// CommandLine is the canonical form of a command used to look up recorded replies:
// the command name upper-cased and arguments separated by single spaces.
func CommandLine(args []string) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	parts[0] = strings.ToUpper(args[0])
	copy(parts[1:], args[1:])
	return strings.Join(parts, " ")
}
