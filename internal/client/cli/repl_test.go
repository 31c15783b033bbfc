package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                   { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout") }
func (s *stubExec) Add(ctx context.Context) error      { return s.record("add") }
func (s *stubExec) AddWish(ctx context.Context) error  { return s.record("wish") }
func (s *stubExec) Sync(ctx context.Context) error     { return s.record("sync") }

func (s *stubExec) List(ctx context.Context, args []string) error {
	return s.record("list " + strings.Join(args, " "))
}
func (s *stubExec) Show(ctx context.Context, args []string) error   { return s.record("show") }
func (s *stubExec) Delete(ctx context.Context, args []string) error { return s.record("delete") }

func runScript(t *testing.T, a execIface, script string) {
	t.Helper()

	orig := printlnFn
	printlnFn = func(args ...any) (int, error) { return 0, nil }
	defer func() { printlnFn = orig }()

	runREPL(context.Background(), a, func() string { return "" }, bufio.NewScanner(strings.NewReader(script)))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	a := &stubExec{loggedIn: true}
	runScript(t, a, "add\nwish\nlist users\nshow x\ndelete x\nsync\nlogout\nexit\n")

	assert.Equal(t, []string{"add", "wish", "list users", "show", "delete", "sync", "logout"}, a.calls)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "login\n")
	assert.Equal(t, []string{"login"}, a.calls)
}

func TestRunREPL_IgnoresBlankAndUnknown(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "\n\nbogus\nregister\nquit\n")
	assert.Equal(t, []string{"register"}, a.calls)
}
