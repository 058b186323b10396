// Package users implements the credential store: creating users, validating
// username/password pairs and looking users up, over any database/sql driver
// that accepts $N placeholders (pgx, modernc sqlite).
package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/cryptox"
	"github.com/dmitrijs2005/credkeeper/internal/dbx"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/models"
)

const (
	insertUserSQL = `INSERT INTO users (username, password) VALUES ($1, $2)`

	selectByUserPassSQL = `SELECT username, password FROM users WHERE username = $1 AND password = $2`

	selectByUserSQL = `SELECT username, password FROM users WHERE username = $1`
)

const (
	opCreate   = "create user"
	opValidate = "validate credentials"
	opFind     = "find user"
)

// Store is a Repository backed by a dbx.Source. It holds no mutable state;
// whether it may be shared between goroutines depends on the source.
type Store struct {
	source dbx.Source
	hasher *cryptox.Hasher
	logger logging.Logger
}

var _ Repository = (*Store)(nil)

// NewStore returns a Store that leases a connection from source for each call,
// digests passwords with hasher and reports writes and lease failures to logger.
func NewStore(source dbx.Source, hasher *cryptox.Hasher, logger logging.Logger) *Store {
	return &Store{source: source, hasher: hasher, logger: logger}
}

func (s *Store) CreateUser(ctx context.Context, username, plainPassword string) (bool, error) {
	hash := s.hasher.Hash(plainPassword)

	var created bool
	err := s.withConn(ctx, opCreate, func(db dbx.DBTX) error {
		res, err := db.ExecContext(ctx, insertUserSQL, username, hash)
		if err != nil {
			if dbx.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %w", common.ErrAlreadyExists, err)
			}
			return fmt.Errorf("db error: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		created = n == 1
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		s.logger.Info(ctx, "user created", "username", username)
	}
	return created, nil
}

func (s *Store) ValidateCredentials(ctx context.Context, username, plainPassword string) (bool, error) {
	hash := s.hasher.Hash(plainPassword)

	var valid bool
	err := s.withConn(ctx, opValidate, func(db dbx.DBTX) error {
		rows, err := db.QueryContext(ctx, selectByUserPassSQL, username, hash)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		defer rows.Close()

		valid = rows.Next()
		return rows.Err()
	})
	if err != nil {
		return false, err
	}

	return valid, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, bool, error) {
	var (
		user  models.User
		found bool
	)
	err := s.withConn(ctx, opFind, func(db dbx.DBTX) error {
		rows, err := db.QueryContext(ctx, selectByUserSQL, username)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		defer rows.Close()

		if !rows.Next() {
			return rows.Err()
		}

		user, err = scanUser(rows)
		if err != nil {
			return err
		}
		found = true
		return rows.Err()
	})
	if err != nil {
		return models.User{}, false, err
	}

	return user, found, nil
}

// withConn runs fn on a leased connection and releases the lease on every
// exit path. A release failure is reported only when fn succeeded.
func (s *Store) withConn(ctx context.Context, op string, fn func(db dbx.DBTX) error) (err error) {
	lease, err := s.source.Acquire(ctx)
	if err != nil {
		return common.NewStorageError(op, fmt.Errorf("acquire connection: %w", err))
	}
	s.logger.Debug(ctx, "connection acquired", "op", op, "owned", s.source.Owns())

	defer func() {
		rerr := lease.Release()
		if rerr == nil {
			return
		}
		if err == nil {
			err = common.NewStorageError(op, fmt.Errorf("release connection: %w", rerr))
			return
		}
		s.logger.Error(ctx, "failed to release connection", "op", op, "error", rerr)
	}()

	if ferr := fn(lease.DB); ferr != nil {
		return common.NewStorageError(op, ferr)
	}
	return nil
}

// scanUser maps the current row by column name, ignoring columns it does not know.
func scanUser(rows *sql.Rows) (models.User, error) {
	cols, err := rows.Columns()
	if err != nil {
		return models.User{}, fmt.Errorf("columns: %w", err)
	}

	var (
		user     models.User
		username sql.NullString
		password sql.NullString
		seen     int
	)
	dest := make([]any, len(cols))
	for i, c := range cols {
		switch c {
		case "username":
			dest[i] = &username
			seen++
		case "password":
			dest[i] = &password
			seen++
		default:
			dest[i] = new(sql.RawBytes)
		}
	}
	if seen != 2 {
		return models.User{}, fmt.Errorf("unexpected columns %v", cols)
	}

	if err := rows.Scan(dest...); err != nil {
		return models.User{}, fmt.Errorf("scan: %w", err)
	}

	user.Username = username.String
	user.PasswordHash = password.String
	return user, nil
}
