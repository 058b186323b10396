package dbx

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrNilProvider = errors.New("connection provider is nil")
	ErrNilConn     = errors.New("borrowed connection is nil")
)

// Conn is a dedicated connection that must be closed by whoever opened it.
// *sql.Conn satisfies this interface.
type Conn interface {
	DBTX
	Close() error
}

// ConnProvider hands out a fresh connection on every call.
type ConnProvider interface {
	Conn(ctx context.Context) (Conn, error)
}

// PoolProvider adapts a database/sql pool to ConnProvider.
type PoolProvider struct {
	db *sql.DB
}

// NewPoolProvider returns a provider that checks out one *sql.Conn per call.
func NewPoolProvider(db *sql.DB) *PoolProvider {
	return &PoolProvider{db: db}
}

func (p *PoolProvider) Conn(ctx context.Context) (Conn, error) {
	c, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Lease is a connection checked out from a Source for one operation.
// Release must be called exactly once the operation is done; extra calls are no-ops.
type Lease struct {
	DB DBTX

	release  func() error
	released bool
}

func (l *Lease) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	if l.release == nil {
		return nil
	}
	return l.release()
}

// Source decides where a connection comes from and whether it is closed
// after use. The only implementations are the ones returned by Owned and
// Borrowed.
type Source interface {
	Acquire(ctx context.Context) (*Lease, error)

	// Owns reports whether leases from this source close their connection.
	Owns() bool

	sealed()
}

type ownedSource struct {
	provider ConnProvider
}

// Owned returns a Source that opens a new connection per Acquire and closes
// it on Release. Safe for concurrent use if the provider is.
func Owned(provider ConnProvider) Source {
	return &ownedSource{provider: provider}
}

func (s *ownedSource) Acquire(ctx context.Context) (*Lease, error) {
	if s.provider == nil {
		return nil, ErrNilProvider
	}
	c, err := s.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &Lease{DB: c, release: c.Close}, nil
}

func (s *ownedSource) Owns() bool { return true }

func (s *ownedSource) sealed() {}

type borrowedSource struct {
	db DBTX
}

// Borrowed returns a Source over an externally managed handle, typically a
// transaction. Release never closes it; the caller keeps lifecycle ownership.
// A borrowed *sql.Tx or *sql.Conn must not be shared by concurrent callers.
func Borrowed(db DBTX) Source {
	return &borrowedSource{db: db}
}

func (s *borrowedSource) Acquire(ctx context.Context) (*Lease, error) {
	if s.db == nil {
		return nil, ErrNilConn
	}
	return &Lease{DB: s.db}, nil
}

func (s *borrowedSource) Owns() bool { return false }

func (s *borrowedSource) sealed() {}
