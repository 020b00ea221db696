package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/common"
)

// The backend's response shapes are not validated by the API client; the
// CLI decodes only what it displays and tolerates missing fields.

type blogView struct {
	ID        string          `json:"id"`
	MongoID   string          `json:"_id"`
	Title     string          `json:"title"`
	Summary   string          `json:"summary"`
	Content   string          `json:"content"`
	Tags      json.RawMessage `json:"tags"`
	Published *bool           `json:"published"`
	Author    json.RawMessage `json:"author"`
	Image     string          `json:"image"`
	CreatedAt string          `json:"createdAt"`
}

func (b blogView) id() string {
	if b.ID != "" {
		return b.ID
	}
	return b.MongoID
}

type commentView struct {
	ID        string          `json:"id"`
	MongoID   string          `json:"_id"`
	Content   string          `json:"content"`
	Author    json.RawMessage `json:"author"`
	User      json.RawMessage `json:"user"`
	CreatedAt string          `json:"createdAt"`
}

func (c commentView) id() string {
	if c.ID != "" {
		return c.ID
	}
	return c.MongoID
}

type pageInfo struct {
	Page       int `json:"currentPage"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// decodeList accepts a bare array or an object holding the array under one
// of keys, e.g. {"blogs": [...], "totalPages": 3}.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, pageInfo, error) {
	var items []T
	var info pageInfo

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, info, nil
	}
	if trimmed[0] == '[' {
		err := json.Unmarshal(trimmed, &items)
		return items, info, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, info, err
	}
	_ = json.Unmarshal(trimmed, &info)

	for _, k := range keys {
		if v, ok := obj[k]; ok {
			err := json.Unmarshal(v, &items)
			return items, info, err
		}
	}
	return nil, info, fmt.Errorf("no list under %v", keys)
}

// decodeObject accepts the object itself or the object wrapped under key.
func decodeObject[T any](raw json.RawMessage, key string) (T, error) {
	var out T
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return out, err
	}
	if v, ok := obj[key]; ok && len(v) > 0 && v[0] == '{' {
		err := json.Unmarshal(v, &out)
		return out, err
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

// personName renders an author field that may be a string id or a
// populated user object.
func personName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var u struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if json.Unmarshal(raw, &u) == nil {
		for _, v := range []string{u.Name, u.Username, u.Email} {
			if v != "" {
				return v
			}
		}
	}
	return ""
}

// tagsText renders tags sent either as an array or a comma-separated string.
func tagsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, ", ")
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}

var (
	blockTag = regexp.MustCompile(`(?i)</?(p|br|div|h[1-6]|li|ul|ol|blockquote|pre)[^>]*>`)
	anyTag   = regexp.MustCompile(`<[^>]+>`)
	blankRun = regexp.MustCompile(`\n{3,}`)
)

// htmlToText strips markup for terminal display.
func htmlToText(s string) string {
	s = blockTag.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func printBlogList(w io.Writer, blogs []blogView, info pageInfo) {
	if len(blogs) == 0 {
		fmt.Fprintln(w, renderMuted("No blogs found"))
		return
	}
	for _, b := range blogs {
		line := fmt.Sprintf("%s  %s", renderMuted(b.id()), renderHeading(b.Title))
		if author := personName(b.Author); author != "" {
			line += renderMuted(" by " + author)
		}
		if b.Published != nil && !*b.Published {
			line += " " + renderBadge("draft")
		}
		fmt.Fprintln(w, line)
		if b.Summary != "" {
			fmt.Fprintln(w, "    "+common.Truncate(b.Summary, 100))
		}
	}
	if info.TotalPages > 0 {
		fmt.Fprintln(w, renderMuted(fmt.Sprintf("page %d of %d", info.Page, info.TotalPages)))
	}
}

func printBlog(w io.Writer, b blogView) {
	fmt.Fprintln(w, renderHeading(b.Title))
	meta := []string{}
	if author := personName(b.Author); author != "" {
		meta = append(meta, "by "+author)
	}
	if b.CreatedAt != "" {
		meta = append(meta, b.CreatedAt)
	}
	if tags := tagsText(b.Tags); tags != "" {
		meta = append(meta, "tags: "+tags)
	}
	if len(meta) > 0 {
		fmt.Fprintln(w, renderMuted(strings.Join(meta, " · ")))
	}
	if b.Image != "" {
		fmt.Fprintln(w, renderMuted("image: "+b.Image))
	}
	if b.Summary != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, b.Summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, htmlToText(b.Content))
}

func printComments(w io.Writer, comments []commentView) {
	if len(comments) == 0 {
		fmt.Fprintln(w, renderMuted("No comments yet"))
		return
	}
	for _, c := range comments {
		who := personName(c.Author)
		if who == "" {
			who = personName(c.User)
		}
		if who == "" {
			who = "anonymous"
		}
		fmt.Fprintf(w, "%s %s: %s\n", renderMuted(c.id()), who, c.Content)
	}
}

// printRaw pretty-prints a response the CLI has no view for.
func printRaw(w io.Writer, raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintln(w, string(raw))
		return
	}
	fmt.Fprintln(w, buf.String())
}
