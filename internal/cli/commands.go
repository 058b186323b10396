package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/flagx"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/migrations"
	"github.com/dmitrijs2005/credkeeper/internal/repositories/users"
)

var ErrEmptyUsername = errors.New("username must not be empty")

func (a *App) migrate(ctx context.Context, logger logging.Logger) error {
	dialect, err := dbx.Dialect(a.config.DatabaseDriver)
	if err != nil {
		return err
	}

	return a.withDB(ctx, func(db *sql.DB) error {
		if err := migrations.Run(ctx, db, dialect); err != nil {
			return err
		}
		logger.Info(ctx, "migrations applied", "dialect", dialect)
		fmt.Fprintln(a.out, "migrations applied")
		return nil
	})
}

func (a *App) create(ctx context.Context, logger logging.Logger, args []string) error {
	username, err := parseUsername(args)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Enter password: ")
	if err != nil {
		return err
	}

	return a.withStore(ctx, logger, func(store users.Repository) error {
		created, err := store.CreateUser(ctx, username, password)
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return fmt.Errorf("user %s already exists: %w", username, err)
			}
			return err
		}
		if !created {
			return fmt.Errorf("user %s was not created", username)
		}
		fmt.Fprintf(a.out, "created %s\n", username)
		return nil
	})
}

func (a *App) validate(ctx context.Context, logger logging.Logger, args []string) error {
	username, err := parseUsername(args)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Enter password: ")
	if err != nil {
		return err
	}

	return a.withStore(ctx, logger, func(store users.Repository) error {
		ok, err := store.ValidateCredentials(ctx, username, password)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "invalid")
			return ErrInvalidCredentials
		}
		fmt.Fprintln(a.out, "valid")
		return nil
	})
}

func (a *App) find(ctx context.Context, logger logging.Logger, args []string) error {
	username, err := parseUsername(args)
	if err != nil {
		return err
	}

	return a.withStore(ctx, logger, func(store users.Repository) error {
		user, found, err := store.FindUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintln(a.out, "not found")
			return ErrUserNotFound
		}
		fmt.Fprintf(a.out, "username: %s\npassword: %s\n", user.Username, user.PasswordHash)
		return nil
	})
}

func parseUsername(args []string) (string, error) {
	var username string

	fs := flag.NewFlagSet("command", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&username, "u", "", "username")
	fs.StringVar(&username, "username", "", "username")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u", "-username"})); err != nil {
		return "", fmt.Errorf("parse command flags: %w", err)
	}
	if username == "" {
		return "", ErrEmptyUsername
	}
	return username, nil
}
