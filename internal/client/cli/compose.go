package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/compose"
	"github.com/dmitrijs2005/gophblog/internal/client/draft"
	"github.com/dmitrijs2005/gophblog/internal/client/render"
	"github.com/dmitrijs2005/gophblog/internal/common"
)

const composeHelp = "Editor commands: title <text>, summary <text>, tags <a, b>, published <true|false>, content, " +
	"image <path>, noimage, show, submit, clear, cancel"

// New opens the blog editor. Edits are autosaved as a draft; leaving the
// editor any way other than submit or clear keeps the draft for next time.
func (a *App) New(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	saver := draft.New(a.store, common.DraftKey, a.config.AutosaveDelay, draft.SystemClock{}, a.logger)
	view := compose.NewView(a.blogs, saver, a.session, a.navigate, a.logger)

	if err := view.Mount(ctx); err != nil {
		a.println(renderError(err.Error()))
		return err
	}
	defer func() {
		if err := saver.Flush(ctx); err != nil {
			a.logger.Warn(ctx, "saving draft on exit failed", "error", err)
		}
		view.Unmount()
	}()

	a.route = ""
	a.println(renderHeading("Create New Blog"))
	if view.State().DraftSaved {
		a.println(renderBadge("Draft saved") + " restored your last draft")
	}
	a.println(renderMuted(composeHelp))

	for a.route == "" {
		prompt := "new"
		if view.State().DraftSaved {
			prompt += " " + renderBadge("Draft saved")
		}
		line, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return nil
		}
		a.composeCommand(ctx, view, line)
	}

	if a.route == common.DashboardRoute {
		return a.MyBlogs(ctx, nil)
	}
	return nil
}

func (a *App) composeCommand(ctx context.Context, view *compose.View, line string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return

	case compose.FieldTitle, compose.FieldSummary, compose.FieldTags, compose.FieldPublished:
		if err := view.Change(cmd, arg); err != nil {
			a.println(renderError(err.Error()))
		}

	case "content":
		md, err := getMultiline(a.reader, "Enter content in Markdown", a.out)
		if err != nil {
			a.println(renderError(err.Error()))
			return
		}
		html, err := render.MarkdownToHTML(md)
		if err != nil {
			a.println(renderError(err.Error()))
			return
		}
		view.SetContent(html)

	case "image":
		if arg == "" {
			a.println("Usage: image <path>")
			return
		}
		img, err := a.loadImage(arg)
		if err == nil {
			err = view.AttachImage(img.Filename, img.Data)
		}
		if err != nil {
			a.println(renderError(err.Error()))
			return
		}
		s := view.State()
		a.println(renderSuccess(fmt.Sprintf("Attached %s (%s, %d bytes)", s.ImageName, s.ImageType, s.ImageSize)))

	case "noimage":
		view.RemoveImage()

	case "show":
		a.printForm(view.State())

	case "submit":
		if err := view.Submit(ctx); err != nil {
			a.println(renderError(view.State().Error))
			return
		}
		a.println(renderSuccess("Blog created"))

	case "clear":
		cleared, err := view.ClearDraft(ctx, func(prompt string) bool {
			return confirm(a.reader, prompt, a.out)
		})
		switch {
		case err != nil:
			a.println(renderError(err.Error()))
		case cleared:
			a.println("Draft cleared")
		}

	case "cancel":
		view.Cancel()

	case "help":
		a.println(composeHelp)

	default:
		a.println("Unknown editor command:", cmd)
	}
}

func (a *App) printForm(s compose.FormState) {
	a.printf("title:     %s\n", s.Draft.Title)
	a.printf("summary:   %s %s\n", s.Draft.Summary,
		renderMuted(fmt.Sprintf("(%d/%d)", len([]rune(s.Draft.Summary)), compose.MaxSummaryLength)))
	a.printf("tags:      %s\n", s.Draft.Tags)
	a.printf("published: %t\n", s.Draft.Published)
	a.printf("content:   %s\n", common.Truncate(htmlToText(s.Draft.Content), 200))
	if s.ImageName != "" {
		a.printf("image:     %s (%s, %d bytes)\n", s.ImageName, s.ImageType, s.ImageSize)
		a.printf("preview:   %s\n", renderMuted(common.Truncate(s.ImagePreview, 60)))
	}
	if s.Error != "" {
		a.println(renderError(s.Error))
	}
}
