package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/api"
	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/client/services"
	"github.com/dmitrijs2005/gophblog/internal/client/storage"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// sessionService is what the CLI needs from services.SessionManager.
type sessionService interface {
	Init(ctx context.Context) error
	Register(ctx context.Context, r models.Registration) error
	Login(ctx context.Context, c models.Credentials) error
	Logout(ctx context.Context) error
	LastEmail(ctx context.Context) (string, error)
	State() models.Session
	Token() string
	TokenExpiry() (time.Time, bool)
	Subscribe(fn func(models.Session)) func()
}

// blogService is the blog, comment and profile part of api.Client.
type blogService interface {
	ListBlogs(ctx context.Context, opts models.ListOptions) (json.RawMessage, error)
	GetBlog(ctx context.Context, id string) (json.RawMessage, error)
	CreateBlog(ctx context.Context, s models.BlogSubmission) (json.RawMessage, error)
	UpdateBlog(ctx context.Context, id string, s models.BlogSubmission) (json.RawMessage, error)
	DeleteBlog(ctx context.Context, id string) (json.RawMessage, error)
	ListUserBlogs(ctx context.Context, opts models.ListOptions) (json.RawMessage, error)
	ListComments(ctx context.Context, blogID string) (json.RawMessage, error)
	AddComment(ctx context.Context, c models.CommentInput) (json.RawMessage, error)
	DeleteComment(ctx context.Context, id string) (json.RawMessage, error)
	GetUserProfile(ctx context.Context, id string) (json.RawMessage, error)
}

type App struct {
	config  *config.Config
	db      *sql.DB
	session sessionService
	blogs   blogService
	store   metadata.Repository
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	// route is set by the compose view's navigator.
	route string
}

// NewApp opens the local store, builds the API client and the session
// manager from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.APIURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  c,
		db:      db,
		session: services.NewSessionManager(apiClient, db, logger),
		blogs:   apiClient,
		store:   metadata.NewSQLiteRepository(db),
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	unsubscribe := a.watchSession()
	defer unsubscribe()

	if err := a.session.Init(ctx); err != nil {
		a.logger.Error(ctx, "restoring session failed", "error", err)
	}

	a.Root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State().LoggedIn()
}

// requireLogin prints a hint and reports false when nobody is logged in.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	a.println(renderError("Please login first"))
	return false
}

func (a *App) navigate(route string) {
	a.route = route
}

// watchSession prints an alert when the session is torn down by a 401.
func (a *App) watchSession() func() {
	wasLoggedIn := a.session.State().LoggedIn()
	return a.session.Subscribe(func(s models.Session) {
		if wasLoggedIn && !s.LoggedIn() && s.Error == services.MsgSessionExpired {
			a.println(renderError(s.Error))
		}
		wasLoggedIn = s.LoggedIn()
	})
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// showAPIError prints the display message of err.
func (a *App) showAPIError(err error, fallback string) {
	a.println(renderError(api.Message(err, fallback)))
}
