package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Blogs(_ context.Context, a []string) error {
	return f.record("blogs", a)
}
func (f *fakeExec) Blog(_ context.Context, a []string) error { return f.record("blog", a) }
func (f *fakeExec) MyBlogs(_ context.Context, a []string) error {
	return f.record("myblogs", a)
}
func (f *fakeExec) Comments(_ context.Context, a []string) error {
	return f.record("comments", a)
}
func (f *fakeExec) Comment(_ context.Context, a []string) error {
	return f.record("comment", a)
}
func (f *fakeExec) Uncomment(_ context.Context, a []string) error {
	return f.record("uncomment", a)
}
func (f *fakeExec) Delete(_ context.Context, a []string) error { return f.record("delete", a) }
func (f *fakeExec) Edit(_ context.Context, a []string) error   { return f.record("edit", a) }
func (f *fakeExec) Profile(_ context.Context, a []string) error {
	return f.record("profile", a)
}
func (f *fakeExec) New(context.Context) error { return f.record("new", nil) }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	in := readerFromLines(
		"help",
		"login",
		"help",
		"blogs 2 5 go tips",
		"blog b1",
		"new",
		"myblogs",
		"delete b1",
		"foobar",
		"logout",
		"exit",
		"whoami",
	)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, in)

	assert.Equal(t, []string{"login", "blogs", "blog", "new", "myblogs", "delete", "logout"}, exec.calls)
	assert.Equal(t, []string{"2", "5", "go", "tips"}, exec.args[1])
	assert.Equal(t, []string{"b1"}, exec.args[2])
}

func TestRunREPL_EmptyInput(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr(""))

	assert.Empty(t, exec.calls)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("comments b1"))

	assert.Equal(t, []string{"comments"}, exec.calls)
}

func TestRunREPL_Help(t *testing.T) {
	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		if s, ok := a[0].(string); ok {
			printed = append(printed, s)
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	runREPL(context.Background(), &fakeExec{}, func() string { return "s" }, readerFromLines("help", "quit"))
	assert.Contains(t, printed, helpGuest)

	printed = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "s" }, readerFromLines("help", "quit"))
	assert.Contains(t, printed, helpUser)
	assert.Contains(t, printed, "Bye!")
}
