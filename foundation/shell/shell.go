// File: shell.go
// Title: Shell Runtime
// Description: Ties the shell pieces together: one Runtime holds the
//              app registry, the transactional executor and the
//              session manager, and evaluates raw command lines. The
//              terminal UI, the plain REPL and one-shot execution all
//              drive the same Eval path.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial runtime

package shell

import (
	"context"
	"errors"

	gdshlog "github.com/msto63/gdsh/foundation/core/log"
	"github.com/msto63/gdsh/foundation/shell/app"
	"github.com/msto63/gdsh/foundation/shell/apps"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/registry"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// ErrExit is returned by Eval when the user asked to leave the shell
var ErrExit = errors.New("exit requested")

// Runtime evaluates command lines against a graph store
type Runtime struct {
	store    graph.TraversalStore
	registry *registry.Registry
	executor *app.Executor
	sessions *session.Manager
	logger   *gdshlog.Logger
}

// Options configures a Runtime
type Options struct {
	// AliasFile is an optional YAML file with command aliases
	AliasFile string
}

// New creates a runtime over a store with the built-in apps installed.
// The install hook is called with the registry so callers can add
// their own apps; pass nil to stick with the built-ins.
func New(store graph.TraversalStore, logger *gdshlog.Logger, opts Options, install func(*registry.Registry) error) (*Runtime, error) {
	if logger == nil {
		logger = gdshlog.GetDefault()
	}
	reg := registry.New(logger)

	if install == nil {
		install = defaultInstall(store)
	}
	if err := install(reg); err != nil {
		return nil, err
	}
	if opts.AliasFile != "" {
		if err := reg.LoadAliasFile(opts.AliasFile); err != nil {
			return nil, err
		}
	}

	return &Runtime{
		store:    store,
		registry: reg,
		executor: app.NewExecutor(store, logger),
		sessions: session.NewManager(),
		logger:   logger.WithName("shell"),
	}, nil
}

// Registry exposes the app registry
func (r *Runtime) Registry() *registry.Registry {
	return r.registry
}

// Sessions exposes the session manager
func (r *Runtime) Sessions() *session.Manager {
	return r.sessions
}

// NewSession creates a fresh session
func (r *Runtime) NewSession() *session.Session {
	return r.sessions.Create()
}

// Eval evaluates one raw command line in a session. An empty line is a
// no-op; exit and quit yield ErrExit.
func (r *Runtime) Eval(ctx context.Context, sess *session.Session, line string, out app.Output) (string, error) {
	name, rest := parser.SplitAppName(line)
	if name == "" {
		return "", nil
	}
	if name == "exit" || name == "quit" {
		return "", ErrExit
	}

	a, err := r.registry.Find(name)
	if err != nil {
		return "", err
	}
	inv, err := parser.Parse(a.Name(), rest, a.Options())
	if err != nil {
		return "", err
	}

	return r.executor.Run(ctx, a, inv, sess, out)
}

// Prompt renders the shell prompt for a session, showing where the
// session currently stands. Resolution errors fall back to a bare
// prompt so a broken store never takes the input line down.
func (r *Runtime) Prompt(base string, sess *session.Session) string {
	tx, err := r.store.BeginTx()
	if err != nil {
		return base + "$ "
	}
	defer func() {
		tx.MarkSuccessful()
		tx.Finish()
	}()

	node, err := app.CurrentNode(sess, r.store)
	if err != nil {
		return base + "$ "
	}
	return base + " " + app.DisplayName(node) + "$ "
}

// Close releases the underlying store
func (r *Runtime) Close() error {
	return r.store.Close()
}

func defaultInstall(store graph.TraversalStore) func(*registry.Registry) error {
	return func(reg *registry.Registry) error {
		return apps.InstallBuiltins(reg, store)
	}
}
