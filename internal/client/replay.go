package client

import (
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"kvshell/pkg/kvtypes"
)

// replayFile is the YAML layout of a recording.
//
//	replies:
//	  - command: KEYS *
//	    reply:
//	      list:
//	        - bulk: k1
//	        - bulk: k2
type replayFile struct {
	Replies []replayEntry `yaml:"replies"`
}

type replayEntry struct {
	Command string    `yaml:"command"`
	Reply   replyNode `yaml:"reply"`
}

// replyNode must set exactly one field.
type replyNode struct {
	Status  *string      `yaml:"status,omitempty"`
	Integer *int64       `yaml:"integer,omitempty"`
	Bulk    *string      `yaml:"bulk,omitempty"`
	Nil     bool         `yaml:"nil,omitempty"`
	Error   *string      `yaml:"error,omitempty"`
	List    *[]replyNode `yaml:"list,omitempty"`
}

// Entry is one recorded command and its reply.
type Entry struct {
	Args  []string
	Reply kvtypes.Reply
}

// Command returns the command name of the entry.
func (e Entry) Command() string {
	if len(e.Args) == 0 {
		return ""
	}
	return e.Args[0]
}

// Replay answers commands from a recording. Later entries for the same command line
// win.
type Replay struct {
	entries []Entry
	replies map[string]kvtypes.Reply
}

// LoadReplay reads a recording from path.
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay file %s: %w", path, err)
	}
	replay, err := ParseReplay(data)
	if err != nil {
		return nil, fmt.Errorf("invalid replay file %s: %w", path, err)
	}
	return replay, nil
}

// ParseReplay decodes a recording.
func ParseReplay(data []byte) (*Replay, error) {
	var file replayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse replay: %w", err)
	}

	r := &Replay{
		entries: make([]Entry, 0, len(file.Replies)),
		replies: make(map[string]kvtypes.Reply, len(file.Replies)),
	}

	for i, raw := range file.Replies {
		args, err := shellquote.Split(raw.Command)
		if err != nil {
			return nil, fmt.Errorf("entry %d: invalid command %q: %w", i+1, raw.Command, err)
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("entry %d: empty command", i+1)
		}

		reply, err := raw.Reply.toReply()
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, raw.Command, err)
		}

		r.entries = append(r.entries, Entry{Args: args, Reply: reply})
		r.replies[CommandLine(args)] = reply
	}

	return r, nil
}

// Do implements Client.
func (r *Replay) Do(args []string) (kvtypes.Reply, error) {
	line := CommandLine(args)
	reply, ok := r.replies[line]
	if !ok {
		return kvtypes.Reply{}, fmt.Errorf("%w for %q", ErrNoReply, line)
	}
	return reply, nil
}

// Entries returns the recorded entries in file order.
func (r *Replay) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (n replyNode) toReply() (kvtypes.Reply, error) {
	set := 0
	for _, present := range []bool{n.Status != nil, n.Integer != nil, n.Bulk != nil, n.Nil, n.Error != nil, n.List != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return kvtypes.Reply{}, fmt.Errorf("reply must set exactly one of status, integer, bulk, nil, error, list (got %d)", set)
	}

	switch {
	case n.Status != nil:
		return kvtypes.Status(*n.Status), nil
	case n.Integer != nil:
		return kvtypes.Integer(*n.Integer), nil
	case n.Bulk != nil:
		return kvtypes.BulkString(*n.Bulk), nil
	case n.Nil:
		return kvtypes.Nil(), nil
	case n.Error != nil:
		return kvtypes.Error(*n.Error), nil
	default:
		items := make([]kvtypes.Reply, len(*n.List))
		for i, child := range *n.List {
			item, err := child.toReply()
			if err != nil {
				return kvtypes.Reply{}, fmt.Errorf("list item %d: %w", i+1, err)
			}
			items[i] = item
		}
		return kvtypes.List(items...), nil
	}
}
