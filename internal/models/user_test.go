package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_StringHidesHash(t *testing.T) {
	u := User{Username: "alice", PasswordHash: "fcf730b6d95236ecd3c9fc2d92d7b6b2bb061514961aec041d6c7a7192f592e4"}

	assert.Equal(t, "User{Username: alice}", u.String())
	assert.NotContains(t, fmt.Sprintf("%v", u), u.PasswordHash)
}
