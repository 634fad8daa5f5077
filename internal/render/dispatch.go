package render

import (
	"errors"
	"fmt"
	"strings"

	"kvshell/internal/completion"
	"kvshell/internal/logger"
	"kvshell/internal/style"
	"kvshell/pkg/kvtypes"
)

// ErrUnhandledKind is returned when a dispatch table has no renderer for a reply kind.
var ErrUnhandledKind = errors.New("no renderer registered for reply kind")

// Func renders one reply. store may be nil.
type Func func(r *Renderer, reply kvtypes.Reply, store completion.CandidateStore, opts Options) Result

// Route overrides the kind table for a command when its reply has the given kind.
type Route struct {
	Kind   kvtypes.Kind
	Render Func
}

// KindTable returns the renderer for every reply kind.
func KindTable() map[kvtypes.Kind]Func {
	return map[kvtypes.Kind]Func{
		kvtypes.KindStatus: func(r *Renderer, reply kvtypes.Reply, _ completion.CandidateStore, _ Options) Result {
			return TextResult(r.Status(reply.Bytes))
		},
		kvtypes.KindInteger: func(r *Renderer, reply kvtypes.Reply, _ completion.CandidateStore, _ Options) Result {
			return r.Integer(reply.Int)
		},
		kvtypes.KindBulkString: func(r *Renderer, reply kvtypes.Reply, _ completion.CandidateStore, opts Options) Result {
			return r.BulkString(reply, opts)
		},
		kvtypes.KindList: func(r *Renderer, reply kvtypes.Reply, _ completion.CandidateStore, opts Options) Result {
			return r.List(reply.Items, style.Token{}, opts)
		},
		kvtypes.KindError: func(r *Renderer, reply kvtypes.Reply, _ completion.CandidateStore, _ Options) Result {
			return TextResult(r.Error(reply.Bytes))
		},
	}
}

// CommandTable returns the command-specific routes, keyed by upper-case command name.
func CommandTable() map[string]Route {
	return map[string]Route{
		"KEYS": {
			Kind: kvtypes.KindList,
			Render: func(r *Renderer, reply kvtypes.Reply, store completion.CandidateStore, opts Options) Result {
				return r.CommandKeys(reply.Items, store, opts)
			},
		},
	}
}

// Dispatcher selects the renderer for a reply.
type Dispatcher struct {
	renderer *Renderer
	kinds    map[kvtypes.Kind]Func
	commands map[string]Route
	opts     Options
}

// NewDispatcher builds a Dispatcher with the default tables.
func NewDispatcher(resolver *style.Resolver, opts Options) (*Dispatcher, error) {
	renderer, err := NewRenderer(resolver)
	if err != nil {
		return nil, err
	}
	return NewDispatcherWithTables(renderer, KindTable(), CommandTable(), opts)
}

// NewDispatcherWithTables builds a Dispatcher from explicit tables. Every reply kind
// must have a renderer, otherwise ErrUnhandledKind is returned.
func NewDispatcherWithTables(renderer *Renderer, kinds map[kvtypes.Kind]Func, commands map[string]Route, opts Options) (*Dispatcher, error) {
	for _, kind := range kvtypes.Kinds() {
		if kinds[kind] == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnhandledKind, kind)
		}
	}

	normalized := make(map[string]Route, len(commands))
	for name, route := range commands {
		if route.Render == nil {
			return nil, fmt.Errorf("command route %s has no renderer", name)
		}
		normalized[strings.ToUpper(name)] = route
	}

	return &Dispatcher{
		renderer: renderer,
		kinds:    kinds,
		commands: normalized,
		opts:     opts,
	}, nil
}

// Options returns the options every render call uses.
func (d *Dispatcher) Options() Options {
	return d.opts
}

// Render renders reply, the answer to command. A command route applies only when the
// reply has the route's kind, so error replies to KEYS still render as errors.
func (d *Dispatcher) Render(command string, reply kvtypes.Reply, store completion.CandidateStore) Result {
	if route, ok := d.commands[strings.ToUpper(command)]; ok && route.Kind == reply.Kind {
		logger.Debug("Rendering with command route", "command", command, "kind", reply.Kind)
		return route.Render(d.renderer, reply, store, d.opts)
	}
	return d.kinds[reply.Kind](d.renderer, reply, store, d.opts)
}
