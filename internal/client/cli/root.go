package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) getStatus() string {
	s := a.session.State()
	if !s.LoggedIn() {
		return "(guest)"
	}

	name := s.User.DisplayName()
	if name == "" {
		name = "logged in"
	}
	if exp, ok := a.session.TokenExpiry(); ok && time.Until(exp) < 10*time.Minute {
		name += ", session ends " + exp.Local().Format("15:04")
	}
	return fmt.Sprintf("(%s)", name)
}

// Root greets the user and runs the REPL on the app's input until EOF or
// "exit".
func (a *App) Root(ctx context.Context) {
	a.println(renderHeading("Welcome to GophBlog CLI") + " " + renderMuted("(type 'help' for commands)"))

	s := a.session.State()
	switch {
	case s.LoggedIn():
		a.println(renderSuccess("Logged in as " + s.User.DisplayName()))
	case s.Error != "":
		a.println(renderError(s.Error))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
