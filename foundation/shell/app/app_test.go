// File: app_test.go
// Title: Executor Tests
// Description: Tests the transaction lifecycle contract of the command
//              executor: exactly one finalization per invocation on
//              every exit path, commit only on success, and transport
//              fault translation.
// Version: v0.1.0
// Created: 2025-02-10

package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	gdshlog "github.com/msto63/gdsh/foundation/core/log"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// mockTx records the transaction lifecycle calls made by the executor
type mockTx struct {
	marked      bool
	finishCount int
	finishErr   error
}

func (t *mockTx) MarkSuccessful() { t.marked = true }

func (t *mockTx) Finish() error {
	t.finishCount++
	return t.finishErr
}

// mockStore counts begins and hands out recording transactions
type mockStore struct {
	beginCount int
	beginErr   error
	txs        []*mockTx
	refNode    *graph.Node
	nodes      map[int64]*graph.Node
}

func newMockStore() *mockStore {
	ref := &graph.Node{ID: 0, Properties: map[string]interface{}{}}
	return &mockStore{
		refNode: ref,
		nodes:   map[int64]*graph.Node{0: ref},
	}
}

func (s *mockStore) BeginTx() (graph.Transaction, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.beginCount++
	tx := &mockTx{}
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *mockStore) NodeByID(id int64) (*graph.Node, error) {
	node, ok := s.nodes[id]
	if !ok {
		return nil, gdsherror.Newf("node %d not found", id).
			WithCode(gdsherror.CodeNotFound)
	}
	return node, nil
}

func (s *mockStore) ReferenceNode() (*graph.Node, error) {
	return s.refNode, nil
}

func (s *mockStore) Close() error { return nil }

// funcApp adapts a function into an App for tests
type funcApp struct {
	name string
	fn   func(ctx context.Context, inv *parser.Invocation, sess *session.Session, out Output) (string, error)
}

func (a *funcApp) Name() string                          { return a.name }
func (a *funcApp) Description() string                   { return "test app" }
func (a *funcApp) Options() map[string]parser.OptionSpec { return nil }

func (a *funcApp) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out Output) (string, error) {
	return a.fn(ctx, inv, sess, out)
}

func quietLogger() *gdshlog.Logger {
	return gdshlog.NewWithConfig(gdshlog.Config{
		Level:  gdshlog.LevelError,
		Output: io.Discard,
	})
}

func testInvocation(t *testing.T, name, rest string) *parser.Invocation {
	t.Helper()
	inv, err := parser.Parse(name, rest, map[string]parser.OptionSpec{})
	if err != nil {
		t.Fatalf("parse invocation: %v", err)
	}
	return inv
}

func runApp(t *testing.T, store *mockStore, fn func(ctx context.Context, inv *parser.Invocation, sess *session.Session, out Output) (string, error)) (string, error) {
	t.Helper()
	exec := NewExecutor(store, quietLogger())
	sess := session.NewManager().Create()
	out := &WriterOutput{W: &bytes.Buffer{}}
	return exec.Run(context.Background(), &funcApp{name: "test", fn: fn},
		testInvocation(t, "test", ""), sess, out)
}

func TestRunCommitsOnSuccess(t *testing.T) {
	store := newMockStore()

	result, err := runApp(t, store, func(_ context.Context, _ *parser.Invocation, _ *session.Session, _ Output) (string, error) {
		return "done", nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result != "done" {
		t.Errorf("result = %q, want done", result)
	}

	if store.beginCount != 1 {
		t.Fatalf("beginCount = %d, want 1", store.beginCount)
	}
	tx := store.txs[0]
	if !tx.marked {
		t.Error("transaction not marked successful on normal return")
	}
	if tx.finishCount != 1 {
		t.Errorf("finishCount = %d, want exactly 1", tx.finishCount)
	}
}

func TestRunFinalizesOnBodyFailure(t *testing.T) {
	store := newMockStore()
	bodyErr := gdsherror.New("bad token").WithCode(gdsherror.CodeInvalidArgument)

	_, err := runApp(t, store, func(_ context.Context, _ *parser.Invocation, _ *session.Session, _ Output) (string, error) {
		return "", bodyErr
	})
	if err == nil {
		t.Fatal("Run() should propagate the body failure")
	}
	if !gdsherror.HasCode(err, gdsherror.CodeInvalidArgument) {
		t.Errorf("error code = %v, want %v", gdsherror.GetCode(err), gdsherror.CodeInvalidArgument)
	}

	tx := store.txs[0]
	if tx.marked {
		t.Error("failed invocation must not mark the transaction successful")
	}
	if tx.finishCount != 1 {
		t.Errorf("finishCount = %d, want exactly 1", tx.finishCount)
	}
}

func TestRunWrapsTransportFault(t *testing.T) {
	store := newMockStore()
	fault := &graph.TransportError{Op: "output-write", Err: errors.New("broken pipe")}

	_, err := runApp(t, store, func(_ context.Context, _ *parser.Invocation, _ *session.Session, _ Output) (string, error) {
		return "", fault
	})
	if err == nil {
		t.Fatal("Run() should propagate the transport fault")
	}

	// The fault is re-wrapped into the shell's own error kind
	if !gdsherror.HasCode(err, gdsherror.CodeTransport) {
		t.Errorf("error code = %v, want %v", gdsherror.GetCode(err), gdsherror.CodeTransport)
	}

	// ... but the original cause is still reachable
	var te *graph.TransportError
	if !errors.As(err, &te) {
		t.Error("original transport error lost during wrapping")
	}

	// Finalization happened before propagation
	if store.txs[0].finishCount != 1 {
		t.Errorf("finishCount = %d, want exactly 1", store.txs[0].finishCount)
	}
}

func TestRunFinalizesOnPanic(t *testing.T) {
	store := newMockStore()

	func() {
		defer func() { recover() }()
		runApp(t, store, func(_ context.Context, _ *parser.Invocation, _ *session.Session, _ Output) (string, error) {
			panic("app bug")
		})
	}()

	if len(store.txs) != 1 || store.txs[0].finishCount != 1 {
		t.Error("panic in the body must still finalize the transaction exactly once")
	}
}

func TestRunBeginFailure(t *testing.T) {
	store := newMockStore()
	store.beginErr = &graph.TransportError{Op: "begin-tx", Err: errors.New("dial refused")}

	bodyRan := false
	_, err := runApp(t, store, func(_ context.Context, _ *parser.Invocation, _ *session.Session, _ Output) (string, error) {
		bodyRan = true
		return "", nil
	})
	if err == nil {
		t.Fatal("Run() should fail when the transaction cannot be opened")
	}
	if bodyRan {
		t.Error("body must not run without an open transaction")
	}
	if !gdsherror.HasCode(err, gdsherror.CodeTransport) {
		t.Errorf("error code = %v, want %v", gdsherror.GetCode(err), gdsherror.CodeTransport)
	}
}

// finishFailStore decorates mockStore so every transaction fails its
// finalization
type finishFailStore struct {
	*mockStore
}

func (s *finishFailStore) BeginTx() (graph.Transaction, error) {
	tx, err := s.mockStore.BeginTx()
	if err != nil {
		return nil, err
	}
	tx.(*mockTx).finishErr = errors.New("commit failed")
	return tx, nil
}

func TestRunFinishErrorSurfaces(t *testing.T) {
	store := &finishFailStore{mockStore: newMockStore()}
	exec := NewExecutor(store, quietLogger())
	sess := session.NewManager().Create()
	out := &WriterOutput{W: &bytes.Buffer{}}

	app := &funcApp{name: "test", fn: func(_ context.Context, _ *parser.Invocation, _ *session.Session, _ Output) (string, error) {
		return "ok", nil
	}}

	_, err := exec.Run(context.Background(), app, testInvocation(t, "test", ""), sess, out)
	if err == nil {
		t.Fatal("commit failure must surface to the caller")
	}
	if store.txs[0].finishCount != 1 {
		t.Errorf("finishCount = %d, want exactly 1", store.txs[0].finishCount)
	}
}

func TestRunNoRetry(t *testing.T) {
	store := newMockStore()
	calls := 0

	runApp(t, store, func(_ context.Context, _ *parser.Invocation, _ *session.Session, _ Output) (string, error) {
		calls++
		return "", gdsherror.New("always fails")
	})

	if calls != 1 {
		t.Errorf("body ran %d times, want exactly 1 (no retry)", calls)
	}
	if store.beginCount != 1 {
		t.Errorf("beginCount = %d, want 1 (no retry)", store.beginCount)
	}
}

func TestWriterOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	out := &WriterOutput{W: buf}

	if err := out.Print("a"); err != nil {
		t.Fatalf("Print error: %v", err)
	}
	if err := out.Println("b"); err != nil {
		t.Fatalf("Println error: %v", err)
	}

	if buf.String() != "ab\n" {
		t.Errorf("output = %q, want %q", buf.String(), "ab\n")
	}
}
