package compose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophblog/internal/client/api"
	"github.com/dmitrijs2005/gophblog/internal/client/draft"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/render"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// Form fields accepted by Change.
const (
	FieldTitle     = "title"
	FieldSummary   = "summary"
	FieldTags      = "tags"
	FieldPublished = "published"
)

// MaxSummaryLength is the longest summary, in characters.
const MaxSummaryLength = 200

const (
	MsgCreateFailed = "Failed to create blog"
	MsgNotLoggedIn  = "You must be logged in to create a blog"
	ClearPrompt     = "Clear draft?"
)

var (
	ErrSubmitting   = errors.New("submit already in progress")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrValidation   = errors.New("invalid form")
	ErrUnknownField = errors.New("unknown field")
)

// BlogCreator is the API call the form submits to.
type BlogCreator interface {
	CreateBlog(ctx context.Context, s models.BlogSubmission) (json.RawMessage, error)
}

// TokenSource reports the current bearer token, "" when logged out.
type TokenSource interface {
	Token() string
}

// Navigator moves the front end to route.
type Navigator func(route string)

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) bool

// FormState is a snapshot of the form for rendering.
type FormState struct {
	Draft        models.Draft
	ImageName    string
	ImageType    string
	ImageSize    int
	ImagePreview string
	Loading      bool
	Error        string
	DraftSaved   bool
}

// View is one instance of the blog creation form.
type View struct {
	creator   BlogCreator
	autosaver *draft.Autosaver
	tokens    TokenSource
	navigate  Navigator
	logger    logging.Logger

	mu           sync.Mutex
	draft        models.Draft
	image        *models.Image
	preview      string
	loading      bool
	errMsg       string
	draftSaved   bool
	unmounted    bool
	cancelSubmit context.CancelFunc
}

// NewView builds a view and subscribes it to the autosaver's saved events.
func NewView(creator BlogCreator, autosaver *draft.Autosaver, tokens TokenSource, nav Navigator, logger logging.Logger) *View {
	v := &View{
		creator:   creator,
		autosaver: autosaver,
		tokens:    tokens,
		navigate:  nav,
		logger:    logger,
		draft:     models.NewDraft(),
	}
	autosaver.OnSaved(func(models.Draft) {
		v.mu.Lock()
		v.draftSaved = true
		v.mu.Unlock()
	})
	return v
}

// Mount loads a persisted draft into the form. An unreadable draft leaves
// the form empty; only storage failures are returned.
func (v *View) Mount(ctx context.Context) error {
	d, ok, err := v.autosaver.Load(ctx)
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = d
	v.draftSaved = ok
	return nil
}

// Change sets one of the plain form fields. published accepts anything
// strconv.ParseBool does.
func (v *View) Change(field, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch field {
	case FieldTitle:
		v.draft.Title = value
	case FieldSummary:
		if utf8.RuneCountInString(value) > MaxSummaryLength {
			return fmt.Errorf("%w: summary is longer than %d characters", ErrValidation, MaxSummaryLength)
		}
		v.draft.Summary = value
	case FieldTags:
		v.draft.Tags = value
	case FieldPublished:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: published must be true or false", ErrValidation)
		}
		v.draft.Published = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	v.autosaver.Touch(v.draft)
	return nil
}

// SetContent replaces the rich-text body.
func (v *View) SetContent(html string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft.Content = html
	v.autosaver.Touch(v.draft)
}

// AttachImage sets the image and its preview. Non-images are rejected and
// leave the current image in place.
func (v *View) AttachImage(filename string, data []byte) error {
	img, err := NewImage(filename, data)
	if err != nil {
		return err
	}

	preview := DataURL(img)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.image = img
	v.preview = preview
	return nil
}

func (v *View) RemoveImage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.image = nil
	v.preview = ""
}

// Submit validates the form and creates the blog. While a submit is in
// flight further calls fail with ErrSubmitting. On success the draft is
// removed and the view navigates to the dashboard; on failure the form is
// kept and State().Error explains why.
func (v *View) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return ErrSubmitting
	}
	if msg := validate(v.draft); msg != "" {
		v.errMsg = msg
		v.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}
	if v.tokens.Token() == "" {
		v.errMsg = MsgNotLoggedIn
		v.mu.Unlock()
		return ErrNotLoggedIn
	}

	submission := models.BlogSubmission{Draft: v.draft, Image: v.image}
	submitCtx, cancel := context.WithCancel(ctx)
	v.cancelSubmit = cancel
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	_, err := v.creator.CreateBlog(submitCtx, submission)
	cancel()

	v.mu.Lock()
	v.loading = false
	v.cancelSubmit = nil
	unmounted := v.unmounted
	if err != nil {
		v.errMsg = api.Message(err, MsgCreateFailed)
	}
	v.mu.Unlock()

	if err != nil {
		v.logger.Warn(ctx, "create blog failed", "title", submission.Title, "error", err)
		return err
	}

	v.logger.Info(ctx, "blog created", "title", submission.Title, "published", submission.Published)

	if err := v.autosaver.Clear(ctx); err != nil {
		v.logger.Error(ctx, "removing draft failed", "error", err)
	}

	if !unmounted {
		v.navigate(common.DashboardRoute)
	}
	return nil
}

// ClearDraft asks for confirmation and, if given, removes the persisted
// draft and resets the whole form.
func (v *View) ClearDraft(ctx context.Context, confirm Confirmer) (bool, error) {
	if !confirm(ClearPrompt) {
		return false, nil
	}

	if err := v.autosaver.Clear(ctx); err != nil {
		return false, fmt.Errorf("clear draft: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = models.NewDraft()
	v.image = nil
	v.preview = ""
	v.draftSaved = false
	v.errMsg = ""
	return true, nil
}

// Cancel leaves the form without submitting. The draft stays saved.
func (v *View) Cancel() {
	v.navigate(common.DashboardRoute)
}

// Unmount aborts an in-flight submit and stops autosaving.
func (v *View) Unmount() {
	v.mu.Lock()
	v.unmounted = true
	cancel := v.cancelSubmit
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	v.autosaver.Stop()
}

func (v *View) State() FormState {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := FormState{
		Draft:        v.draft,
		ImagePreview: v.preview,
		Loading:      v.loading,
		Error:        v.errMsg,
		DraftSaved:   v.draftSaved,
	}
	if v.image != nil {
		s.ImageName = v.image.Filename
		s.ImageType = v.image.ContentType
		s.ImageSize = len(v.image.Data)
	}
	return s
}

// validate returns the first user-facing problem with d, or "".
func validate(d models.Draft) string {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return "Title is required"
	case strings.TrimSpace(d.Summary) == "":
		return "Summary is required"
	case utf8.RuneCountInString(d.Summary) > MaxSummaryLength:
		return fmt.Sprintf("Summary must be at most %d characters", MaxSummaryLength)
	case render.IsBlankHTML(d.Content):
		return "Content is required"
	default:
		return ""
	}
}
