package models

// Draft is the in-progress content of the blog creation form. It is what the
// autosaver persists under the "blogDraft" key.
type Draft struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	Tags      string `json:"tags"`
	Published bool   `json:"published"`
}

// NewDraft returns an empty form state. New posts are published by default.
func NewDraft() Draft {
	return Draft{Published: true}
}

// HasText reports whether any of the tracked text fields holds something
// worth saving. Tags alone do not make a draft.
func (d Draft) HasText() bool {
	return d.Title != "" || d.Summary != "" || d.Content != ""
}

// Image is a binary attachment chosen for a blog post.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BlogSubmission is the transient payload of one create/update call: the
// form fields plus an optional image.
type BlogSubmission struct {
	Draft
	Image *Image
}

// CommentInput is the payload of POST /api/comments.
type CommentInput struct {
	BlogID  string `json:"blogId"`
	Content string `json:"content"`
}

// ListOptions carries pagination and free-text search for list calls.
// Zero Page and Limit fall back to 1 and 10.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Normalized fills in defaults for zero or negative values.
func (o ListOptions) Normalized() ListOptions {
	if o.Page <= 0 {
		o.Page = DefaultPage
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}
