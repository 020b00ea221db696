package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func newTestApp(s sessionService, b blogService, in *bufio.Reader) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:  cfg,
		session: s,
		blogs:   b,
		logger:  logging.NewDiscardLogger(),
		reader:  in,
		out:     out,
	}, out
}

// ------------ fake session ------------

type fakeSession struct {
	state models.Session

	regErr   error
	loginErr error
	// loginUser is stored on successful login
	loginUser *models.User
	lastEmail string
	expiry    time.Time

	lastReg   models.Registration
	lastCreds models.Credentials
	logouts   int
	subs      []func(models.Session)
}

func (f *fakeSession) Init(context.Context) error { return nil }

func (f *fakeSession) Register(_ context.Context, r models.Registration) error {
	f.lastReg = r
	if f.regErr != nil {
		f.state.Error = f.regErr.Error()
	}
	return f.regErr
}

func (f *fakeSession) Login(_ context.Context, c models.Credentials) error {
	f.lastCreds = c
	if f.loginErr != nil {
		f.state.Error = f.loginErr.Error()
		return f.loginErr
	}
	f.state = models.Session{Token: "tok", User: f.loginUser}
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	f.state = models.Session{}
	f.notify()
	return nil
}

func (f *fakeSession) LastEmail(context.Context) (string, error) { return f.lastEmail, nil }
func (f *fakeSession) State() models.Session                    { return f.state }
func (f *fakeSession) Token() string                            { return f.state.Token }

func (f *fakeSession) TokenExpiry() (time.Time, bool) {
	return f.expiry, !f.expiry.IsZero()
}

func (f *fakeSession) Subscribe(fn func(models.Session)) func() {
	f.subs = append(f.subs, fn)
	return func() { f.subs = nil }
}

func (f *fakeSession) notify() {
	for _, fn := range f.subs {
		fn(f.state)
	}
}

func loggedIn(name string) *fakeSession {
	return &fakeSession{state: models.Session{Token: "tok", User: &models.User{ID: "u1", Username: name, Email: name + "@example.org"}}}
}

// ------------ fake blogs ------------

type fakeBlogs struct {
	listOpts     models.ListOptions
	listRet      string
	userListOpts models.ListOptions
	userListRet  string
	getID        string
	getRet       string
	commentsRet  string
	profileRet   string
	profileIDs   []string
	err          error

	created   []models.BlogSubmission
	updatedID string
	updated   models.BlogSubmission
	deleted   []string
	comments  []models.CommentInput
	uncomment []string
}

func (f *fakeBlogs) raw(s string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s == "" {
		return json.RawMessage(`{}`), nil
	}
	return json.RawMessage(s), nil
}

func (f *fakeBlogs) ListBlogs(_ context.Context, o models.ListOptions) (json.RawMessage, error) {
	f.listOpts = o
	return f.raw(f.listRet)
}

func (f *fakeBlogs) GetBlog(_ context.Context, id string) (json.RawMessage, error) {
	f.getID = id
	return f.raw(f.getRet)
}

func (f *fakeBlogs) CreateBlog(_ context.Context, s models.BlogSubmission) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, s)
	return json.RawMessage(`{"_id":"new"}`), nil
}

func (f *fakeBlogs) UpdateBlog(_ context.Context, id string, s models.BlogSubmission) (json.RawMessage, error) {
	f.updatedID, f.updated = id, s
	return f.raw("")
}

func (f *fakeBlogs) DeleteBlog(_ context.Context, id string) (json.RawMessage, error) {
	f.deleted = append(f.deleted, id)
	return f.raw("")
}

func (f *fakeBlogs) ListUserBlogs(_ context.Context, o models.ListOptions) (json.RawMessage, error) {
	f.userListOpts = o
	return f.raw(f.userListRet)
}

func (f *fakeBlogs) ListComments(context.Context, string) (json.RawMessage, error) {
	return f.raw(f.commentsRet)
}

func (f *fakeBlogs) AddComment(_ context.Context, c models.CommentInput) (json.RawMessage, error) {
	f.comments = append(f.comments, c)
	return f.raw("")
}

func (f *fakeBlogs) DeleteComment(_ context.Context, id string) (json.RawMessage, error) {
	f.uncomment = append(f.uncomment, id)
	return f.raw("")
}

func (f *fakeBlogs) GetUserProfile(_ context.Context, id string) (json.RawMessage, error) {
	f.profileIDs = append(f.profileIDs, id)
	return f.raw(f.profileRet)
}
