package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/common"
)

// getSimpleText, getPassword, getMultiline and confirm are indirections used
// to facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

var errEmptyInput = errors.New("empty input")

// Register prompts for a username, an email and a password and creates the
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.session.Register(ctx, models.Registration{Username: username, Email: email, Password: string(password)})
	if err != nil {
		a.println(renderError(a.session.State().Error))
		return err
	}

	a.println(renderSuccess("Registration successful. Please login."))
	return nil
}

// Login prompts for credentials and logs in. The email of the last
// successful login is offered as the default.
func (a *App) Login(ctx context.Context) error {
	last, err := a.session.LastEmail(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reading last email failed", "error", err)
	}

	prompt := "Enter email"
	if last != "" {
		prompt = fmt.Sprintf("Enter email [%s]", last)
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}
	if email == "" {
		a.println(renderError("Email is required"))
		return errEmptyInput
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		a.println(renderError(a.session.State().Error))
		return err
	}

	s := a.session.State()
	if s.Error != "" {
		// logged in, but the profile could not be loaded
		a.println(renderError(s.Error))
	}
	name := s.User.DisplayName()
	if name == "" {
		name = email
	}
	a.println(renderSuccess("Welcome, " + name))
	return nil
}

// Logout ends the session locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.println(renderError(err.Error()))
		return err
	}
	a.println("Logged out")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.State()
	if !s.LoggedIn() {
		a.println("Not logged in")
		return nil
	}
	if s.User == nil {
		a.println("Logged in (profile not loaded)")
		return nil
	}

	a.printf("%s\n  username: %s\n  email:    %s\n", renderHeading(s.User.DisplayName()), s.User.Username, s.User.Email)
	if s.User.ID != "" {
		a.printf("  id:       %s\n", s.User.ID)
	}
	if exp, ok := a.session.TokenExpiry(); ok {
		a.printf("  session:  until %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
