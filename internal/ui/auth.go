package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/carlosbandelli/superlist/internal/api"
	"github.com/carlosbandelli/superlist/internal/session"
)

// ErrAuthAborted reports that the user quit the auth flow without logging in.
var ErrAuthAborted = errors.New("auth aborted")

const (
	authActionLogin    = "login"
	authActionRegister = "register"
	authActionQuit     = "quit"
)

// RunAuth walks the user through login or registration until the session
// holds a token. Rejected credentials surface inline and re-prompt;
// choosing quit (or aborting the form) returns ErrAuthAborted.
func RunAuth(ctx context.Context, client *api.Client, sess *session.Session) error {
	for {
		action := authActionLogin
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("superlist").
					Options(
						huh.NewOption("Log in", authActionLogin),
						huh.NewOption("Create account", authActionRegister),
						huh.NewOption("Quit", authActionQuit),
					).
					Value(&action),
			),
		).RunWithContext(ctx)
		if err != nil {
			return ErrAuthAborted
		}
		if action == authActionQuit {
			return ErrAuthAborted
		}

		var email, password string
		title := "Log in"
		if action == authActionRegister {
			title = "Create account"
		}
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Validate(requireField("email")).
					Value(&email),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Validate(requireField("password")).
					Value(&password),
			).Title(title),
		).RunWithContext(ctx)
		if err != nil {
			// Back to the action menu; esc here is not a hard quit.
			continue
		}

		var token string
		if action == authActionRegister {
			token, err = client.Register(ctx, email, password)
		} else {
			token, err = client.Login(ctx, email, password)
		}
		if err != nil {
			fmt.Println(authFailureMessage(err))
			continue
		}

		if err := sess.Login(token); err != nil {
			return fmt.Errorf("store credentials: %w", err)
		}
		return nil
	}
}

func requireField(name string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func authFailureMessage(err error) string {
	if api.IsAuthFailure(err) {
		return "Login rejected: " + err.Error()
	}
	return "Could not reach the server: " + err.Error()
}
