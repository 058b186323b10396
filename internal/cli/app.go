// Package cli implements the credkeeper command-line tool: schema migration
// and the create / validate / find operations of the credential store.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/config"
	"github.com/dmitrijs2005/credkeeper/internal/cryptox"
	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/flagx"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/repositories/users"
	"github.com/google/uuid"
)

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const usage = `usage: credkeeper <command> [flags]

commands:
  migrate              apply database migrations
  create   -u <name>   create a user, password is read from stdin
  validate -u <name>   check a password against the stored digest
  find     -u <name>   show the stored record

global flags:
  -c <file>   JSON config file
  -r <name>   database driver (pgx, sqlite)
  -d <dsn>    database DSN
  -a <name>   hash algorithm (sha256, sha3-256)
  -l <level>  log level
  -f <fmt>    log format (text, json)
`

// openDB is a seam for tests.
var openDB = dbx.Open

type App struct {
	config  *config.Config
	logger  logging.Logger
	hasher  *cryptox.Hasher
	in      *bufio.Reader
	stdinFd int
	out     io.Writer
	// errOut receives prompts; out carries command output only.
	errOut io.Writer
}

// NewApp validates the configuration and wires the logger and hasher.
// An unusable hash algorithm is reported as a *common.ConfigurationError.
func NewApp(c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	hasher, err := cryptox.NewHasher(c.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(logOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}

	return &App{
		config:  c,
		logger:  logger,
		hasher:  hasher,
		in:      bufio.NewReader(in),
		stdinFd: fd,
		out:     out,
		errOut:  logOut,
	}, nil
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest, err := flagx.SplitCommand(args)
	if err != nil {
		fmt.Fprint(a.out, usage)
		return err
	}

	logger := a.logger.With("op_id", uuid.NewString(), "cmd", cmd)

	switch cmd {
	case "migrate":
		return a.migrate(ctx, logger)
	case "create":
		return a.create(ctx, logger, rest)
	case "validate":
		return a.validate(ctx, logger, rest)
	case "find":
		return a.find(ctx, logger, rest)
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (a *App) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := openDB(ctx, a.config.DatabaseDriver, a.config.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

func (a *App) withStore(ctx context.Context, logger logging.Logger, fn func(store users.Repository) error) error {
	return a.withDB(ctx, func(db *sql.DB) error {
		store := users.NewStore(dbx.Owned(dbx.NewPoolProvider(db)), a.hasher, logger)
		return fn(store)
	})
}

// ExitCode maps a Run error to a process exit status: 1 for a negative
// answer, 3 for a fatal misconfiguration and 2 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUserNotFound):
		return 1
	case common.IsFatal(err):
		return 3
	default:
		return 2
	}
}
