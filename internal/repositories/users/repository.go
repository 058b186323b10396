package users

import (
	"context"

	"github.com/dmitrijs2005/credkeeper/internal/models"
)

// Repository is the credential store contract. Every error it returns is a
// *common.StorageError.
type Repository interface {
	// CreateUser stores username with the digest of plainPassword and
	// reports whether exactly one row was inserted.
	CreateUser(ctx context.Context, username, plainPassword string) (bool, error)

	// ValidateCredentials reports whether a user with this username and
	// password exists. An unknown user and a wrong password both yield false.
	ValidateCredentials(ctx context.Context, username, plainPassword string) (bool, error)

	// FindUserByUsername returns the stored record. found is false, with a
	// nil error, when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (user models.User, found bool, err error)
}
