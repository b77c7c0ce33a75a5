package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/TinyWins_Go/internal/bootstrap"
	"github.com/osse101/TinyWins_Go/internal/config"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

const appName = "tinywins"

// Command is one CLI subcommand
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, env *Env, args []string) error
}

// Env is what a command runs against
type Env struct {
	Config        *config.Config
	Services      *bootstrap.Services
	SchemaVersion int64
	Out           io.Writer
	Now           func() time.Time

	printer *message.Printer
}

// NewEnv builds an Env writing to w
func NewEnv(cfg *config.Config, svcs *bootstrap.Services, version int64, w io.Writer) *Env {
	return &Env{
		Config:        cfg,
		Services:      svcs,
		SchemaVersion: version,
		Out:           w,
		Now:           time.Now,
		printer:       message.NewPrinter(language.English),
	}
}

// Printf writes to Out with grouped thousands, e.g. 12,500 gems
func (e *Env) Printf(format string, a ...any) {
	e.printer.Fprintf(e.Out, format, a...)
}

// Today is the current ISO day
func (e *Env) Today() string {
	return domain.DayBucket(e.Now())
}

// ProfileID is the profile every command acts on
func (e *Env) ProfileID() int64 {
	return e.Config.ProfileID
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [args...]\n", appName)
	fmt.Fprintln(w, "\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Fprintf(w, "  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
}

// newFlagSet returns a flag set for cmd that reports errors instead of exiting
func newFlagSet(cmd Command, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(appName+" "+cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}
