package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/compose"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/render"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/filex"
)

var errUsage = errors.New("usage")

// parseListArgs reads "[page] [limit] [search...]". Missing or non-numeric
// page and limit fall back to defaults; everything after them is the search.
func parseListArgs(args []string) models.ListOptions {
	opts := models.ListOptions{}
	rest := args

	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			opts.Page = n
			rest = rest[1:]
			if len(rest) > 0 {
				if n, err := strconv.Atoi(rest[0]); err == nil {
					opts.Limit = n
					rest = rest[1:]
				}
			}
		}
	}
	opts.Search = strings.Join(rest, " ")
	return opts.Normalized()
}

func (a *App) requireArg(args []string, usage string) (string, bool) {
	if len(args) == 0 {
		a.println("Usage: " + usage)
		return "", false
	}
	return args[0], true
}

// Blogs lists public blogs.
func (a *App) Blogs(ctx context.Context, args []string) error {
	raw, err := a.blogs.ListBlogs(ctx, parseListArgs(args))
	if err != nil {
		a.showAPIError(err, "Failed to fetch blogs")
		return err
	}
	return a.showBlogList(raw)
}

// MyBlogs lists the current user's blogs. It is the dashboard.
func (a *App) MyBlogs(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	raw, err := a.blogs.ListUserBlogs(ctx, parseListArgs(args))
	if err != nil {
		a.showAPIError(err, "Failed to fetch user blogs")
		return err
	}
	a.println(renderHeading("Dashboard"))
	return a.showBlogList(raw)
}

func (a *App) showBlogList(raw []byte) error {
	blogs, info, err := decodeList[blogView](raw, "blogs", "data", "items")
	if err != nil {
		printRaw(a.out, raw)
		return nil
	}
	printBlogList(a.out, blogs, info)
	return nil
}

// Blog shows one blog and its comments.
func (a *App) Blog(ctx context.Context, args []string) error {
	id, ok := a.requireArg(args, "blog <id>")
	if !ok {
		return errUsage
	}

	raw, err := a.blogs.GetBlog(ctx, id)
	if err != nil {
		a.showAPIError(err, "Failed to fetch blog")
		return err
	}

	b, err := decodeObject[blogView](raw, "blog")
	if err != nil {
		printRaw(a.out, raw)
	} else {
		printBlog(a.out, b)
	}

	a.println()
	return a.Comments(ctx, args)
}

func (a *App) Comments(ctx context.Context, args []string) error {
	id, ok := a.requireArg(args, "comments <blogId>")
	if !ok {
		return errUsage
	}

	raw, err := a.blogs.ListComments(ctx, id)
	if err != nil {
		a.showAPIError(err, "Failed to fetch comments")
		return err
	}

	comments, _, err := decodeList[commentView](raw, "comments", "data")
	if err != nil {
		printRaw(a.out, raw)
		return nil
	}
	a.println(renderHeading("Comments"))
	printComments(a.out, comments)
	return nil
}

// Comment adds a comment to a blog.
func (a *App) Comment(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	blogID, ok := a.requireArg(args, "comment <blogId>")
	if !ok {
		return errUsage
	}

	content, err := getMultiline(a.reader, "Enter comment", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		a.println(renderError("Comment is empty"))
		return errEmptyInput
	}

	if _, err := a.blogs.AddComment(ctx, models.CommentInput{BlogID: blogID, Content: content}); err != nil {
		a.showAPIError(err, "Failed to add comment")
		return err
	}
	a.println(renderSuccess("Comment added"))
	return nil
}

func (a *App) Uncomment(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, ok := a.requireArg(args, "uncomment <commentId>")
	if !ok {
		return errUsage
	}

	if _, err := a.blogs.DeleteComment(ctx, id); err != nil {
		a.showAPIError(err, "Failed to delete comment")
		return err
	}
	a.println(renderSuccess("Comment deleted"))
	return nil
}

// Delete removes one of the user's blogs after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, ok := a.requireArg(args, "delete <blogId>")
	if !ok {
		return errUsage
	}

	if !confirm(a.reader, "Delete blog "+id+"?", a.out) {
		a.println("Cancelled")
		return nil
	}

	if _, err := a.blogs.DeleteBlog(ctx, id); err != nil {
		a.showAPIError(err, "Failed to delete blog")
		return err
	}
	a.println(renderSuccess("Blog deleted"))
	return nil
}

// Edit updates a blog field by field. An empty answer keeps the current
// value.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, ok := a.requireArg(args, "edit <blogId>")
	if !ok {
		return errUsage
	}

	raw, err := a.blogs.GetBlog(ctx, id)
	if err != nil {
		a.showAPIError(err, "Failed to fetch blog")
		return err
	}
	current, err := decodeObject[blogView](raw, "blog")
	if err != nil {
		a.println(renderError("Unreadable blog"))
		return err
	}

	d := models.Draft{
		Title:     current.Title,
		Summary:   current.Summary,
		Content:   current.Content,
		Tags:      tagsText(current.Tags),
		Published: current.Published == nil || *current.Published,
	}

	if d.Title, err = a.askKeep("Title", d.Title); err != nil {
		return err
	}
	if d.Summary, err = a.askKeep("Summary", d.Summary); err != nil {
		return err
	}
	if d.Tags, err = a.askKeep("Tags", d.Tags); err != nil {
		return err
	}
	published, err := a.askKeep("Published (true/false)", strconv.FormatBool(d.Published))
	if err != nil {
		return err
	}
	if d.Published, err = strconv.ParseBool(published); err != nil {
		a.println(renderError("published must be true or false"))
		return err
	}

	content, err := getMultiline(a.reader, "New content in Markdown (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		if d.Content, err = render.MarkdownToHTML(content); err != nil {
			a.println(renderError(err.Error()))
			return err
		}
	}

	submission := models.BlogSubmission{Draft: d}
	imagePath, err := getSimpleText(a.reader, "New image path (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if imagePath != "" {
		img, err := a.loadImage(imagePath)
		if err != nil {
			a.println(renderError(err.Error()))
			return err
		}
		submission.Image = img
	}

	if _, err := a.blogs.UpdateBlog(ctx, id, submission); err != nil {
		a.showAPIError(err, "Failed to update blog")
		return err
	}
	a.println(renderSuccess("Blog updated"))
	return nil
}

func (a *App) askKeep(label, current string) (string, error) {
	answer, err := getSimpleText(a.reader, label+" ["+common.Truncate(current, 60)+"]", a.out)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// loadImage reads and validates an image file for upload.
func (a *App) loadImage(path string) (*models.Image, error) {
	data, err := filex.ReadLimited(path, compose.MaxImageSize)
	if err != nil {
		return nil, err
	}
	return compose.NewImage(filepath.Base(path), data)
}

// Profile shows a user's profile, or the current user's without an id.
func (a *App) Profile(ctx context.Context, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" && !a.requireLogin() {
		return nil
	}

	raw, err := a.blogs.GetUserProfile(ctx, id)
	if err != nil {
		a.showAPIError(err, "Failed to fetch user profile")
		return err
	}

	u, err := decodeObject[models.User](raw, "user")
	if err != nil || u.DisplayName() == "" {
		printRaw(a.out, raw)
		return nil
	}
	a.println(renderHeading(u.DisplayName()))
	if u.Bio != "" {
		a.println(u.Bio)
	}

	blogs, _, err := decodeList[blogView](raw, "blogs")
	if err == nil && len(blogs) > 0 {
		a.println()
		printBlogList(a.out, blogs, pageInfo{})
	}
	return nil
}
