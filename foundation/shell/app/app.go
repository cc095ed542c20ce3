// File: app.go
// Title: Transactional Command Executor
// Description: Defines the App capability interface that all concrete
//              shell commands implement and the Executor that wraps
//              every invocation in a store transaction. The executor
//              guarantees that the transaction is finalized exactly
//              once on every exit path and that transport faults are
//              translated into the shell's own error kind.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial executor with transaction wrapping

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	gdshlog "github.com/msto63/gdsh/foundation/core/log"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// Output is the sink for incremental textual feedback during a command
// body. Implementations backed by a remote connection may fail, in
// which case they return a *graph.TransportError.
type Output interface {
	// Print writes text without a trailing newline
	Print(s string) error

	// Println writes a line of text
	Println(s string) error
}

// WriterOutput adapts an io.Writer into an Output
type WriterOutput struct {
	W io.Writer
}

// Print implements Output
func (o *WriterOutput) Print(s string) error {
	_, err := io.WriteString(o.W, s)
	return err
}

// Println implements Output
func (o *WriterOutput) Println(s string) error {
	_, err := fmt.Fprintln(o.W, s)
	return err
}

// App is a single named shell command. Concrete apps implement only
// the business-logic hook; the transaction wrapper is supplied by the
// Executor and is not overridable.
type App interface {
	// Name returns the app's invocation name, lower-case
	Name() string

	// Description returns a one-line description for help output
	Description() string

	// Options declares the single-letter options the app accepts
	Options() map[string]parser.OptionSpec

	// Exec runs the command body inside the transaction opened by the
	// Executor. The returned string is the command's result payload.
	Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out Output) (string, error)
}

// Executor runs apps against a graph store, one transaction per
// invocation. The transaction never escapes the executor and is
// finalized exactly once whether the body returns, fails or hits a
// transport fault.
type Executor struct {
	store  graph.Store
	logger *gdshlog.Logger
}

// NewExecutor creates an executor bound to a store
func NewExecutor(store graph.Store, logger *gdshlog.Logger) *Executor {
	if logger == nil {
		logger = gdshlog.GetDefault()
	}
	return &Executor{
		store:  store,
		logger: logger.WithName("executor"),
	}
}

// Store returns the store the executor runs against
func (e *Executor) Store() graph.Store {
	return e.store
}

// Run executes one app invocation inside a transaction. On normal
// return the transaction is marked successful and committed by the
// deferred finalization; on any failure it is rolled back by the same
// finalization. All failures propagate to the caller after the
// transaction is finalized; transport faults are re-wrapped into the
// shell's own error kind first.
func (e *Executor) Run(ctx context.Context, a App, inv *parser.Invocation, sess *session.Session, out Output) (result string, err error) {
	requestID := uuid.NewString()
	logger := e.logger.WithRequestID(requestID).WithSessionID(sess.ID())

	started := time.Now()
	logger.Debug("executing app", gdshlog.Fields{
		"app":  a.Name(),
		"line": inv.Line,
	})

	tx, err := e.store.BeginTx()
	if err != nil {
		return "", e.translate(err, requestID)
	}

	// Finalization is unconditional: it runs whether the body
	// returned, failed or panicked, and exactly once per invocation
	defer func() {
		if ferr := tx.Finish(); ferr != nil && err == nil {
			err = e.translate(ferr, requestID)
		}
	}()

	sess.Touch()

	result, err = a.Exec(ctx, inv, sess, out)
	if err != nil {
		logger.Audit("app execution failed", gdshlog.Fields{
			"app":      a.Name(),
			"duration": time.Since(started),
			"error":    err.Error(),
		})
		return "", e.translate(err, requestID)
	}

	tx.MarkSuccessful()

	logger.Audit("app executed", gdshlog.Fields{
		"app":      a.Name(),
		"duration": time.Since(started),
	})

	return result, nil
}

// translate re-wraps transport faults into the shell's error kind and
// stamps the request ID onto shell errors; everything else propagates
// verbatim.
func (e *Executor) translate(err error, requestID string) error {
	var fault *graph.TransportError
	if errors.As(err, &fault) {
		return gdsherror.Wrap(err, "remote communication failed").
			WithCode(gdsherror.CodeTransport).
			WithRequestID(requestID)
	}

	if gdshErr, ok := err.(*gdsherror.Error); ok {
		return gdshErr.WithRequestID(requestID)
	}
	return err
}
