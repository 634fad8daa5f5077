// Package shell connects the interactive line editor to the protocol client and the
// reply renderers. Each command is sent, rendered and written before the next prompt.
package shell

import (
	"fmt"

	"github.com/abiosoft/ishell/v2"
	"github.com/abiosoft/readline"
	"github.com/charmbracelet/log"
	"github.com/kballard/go-shellquote"

	"kvshell/internal/client"
	"kvshell/internal/completion"
	"kvshell/internal/logger"
	"kvshell/internal/output"
	"kvshell/internal/render"
)

// Prompt is the interactive prompt.
const Prompt = "kvshell> "

// Session executes commands one at a time.
type Session struct {
	client     client.Client
	dispatcher *render.Dispatcher
	store      completion.CandidateStore
	printer    *output.Printer
	log        *log.Logger
}

// NewSession creates a Session. store may be nil when no completer is attached.
func NewSession(c client.Client, dispatcher *render.Dispatcher, store completion.CandidateStore, printer *output.Printer) *Session {
	return &Session{
		client:     c,
		dispatcher: dispatcher,
		store:      store,
		printer:    printer,
		log:        logger.NewComponentLogger("Shell"),
	}
}

// Execute parses a command line and executes it. Blank lines are ignored.
func (s *Session) Execute(line string) error {
	args, err := shellquote.Split(line)
	if err != nil {
		return s.printer.WriteError(fmt.Errorf("invalid command line: %w", err))
	}
	return s.ExecuteArgs(args)
}

// ExecuteArgs sends args to the client and writes the rendered reply. Client failures
// are reported to the user; only output failures are returned.
func (s *Session) ExecuteArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}

	s.log.Debug("Executing command", "command", args[0], "args", len(args)-1)
	reply, err := s.client.Do(args)
	if err != nil {
		s.log.Debug("Command failed", "command", args[0], "error", err)
		return s.printer.WriteError(err)
	}

	return s.write(s.dispatcher.Render(args[0], reply, s.store))
}

// Replay renders every recorded entry in order, as if each command had been typed.
func (s *Session) Replay(entries []client.Entry) error {
	for _, entry := range entries {
		if err := s.write(s.dispatcher.Render(entry.Command(), entry.Reply, s.store)); err != nil {
			return err
		}
	}
	return nil
}

// Handle is the ishell NotFound handler: every line that is not a shell builtin is a
// server command.
func (s *Session) Handle(c *ishell.Context) {
	if err := s.ExecuteArgs(c.RawArgs); err != nil {
		s.log.Error("Failed to write reply", "error", err)
	}
}

// write separates a raw result from whatever follows it; the printer itself never
// adds a newline to raw bytes.
func (s *Session) write(result render.Result) error {
	if err := s.printer.Write(result); err != nil {
		return err
	}
	if result.Kind == render.ResultRaw && len(result.Raw) > 0 && result.Raw[len(result.Raw)-1] != '\n' {
		return s.printer.Newline()
	}
	return nil
}

// Run starts the interactive loop and blocks until the user exits.
func Run(session *Session, completer readline.AutoCompleter, banner string) {
	sh := ishell.NewWithConfig(&readline.Config{Prompt: Prompt})
	sh.CustomCompleter(completer)

	// HELP is a server command.
	sh.DeleteCmd("help")

	if banner != "" {
		sh.Println(banner)
	}
	sh.NotFound(session.Handle)
	sh.Run()
}
