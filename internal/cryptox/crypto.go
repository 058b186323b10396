// Package cryptox provides the one-way password digest used by the credential
// store. Digests are rendered as lowercase hexadecimal, two characters per
// byte in byte order.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"golang.org/x/crypto/sha3"
)

// Supported algorithm names.
const (
	SHA256   = "sha256"
	SHA3_256 = "sha3-256"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = SHA256

var errNotInitialized = errors.New("hasher is not initialized")

var algorithms = map[string]func() hash.Hash{
	SHA256:   sha256.New,
	SHA3_256: func() hash.Hash { return sha3.New256() },
}

// Hasher computes password digests with a fixed algorithm.
// A Hasher is immutable and safe for concurrent use.
type Hasher struct {
	algorithm string
	newFn     func() hash.Hash
}

// NewHasher resolves the named algorithm. An empty name selects DefaultAlgorithm.
// An algorithm that is not available in this build yields a *common.ConfigurationError.
func NewHasher(algorithm string) (*Hasher, error) {
	name := strings.ToLower(strings.TrimSpace(algorithm))
	if name == "" {
		name = DefaultAlgorithm
	}

	newFn, ok := algorithms[name]
	if !ok || newFn == nil {
		return nil, &common.ConfigurationError{Algorithm: algorithm, Err: common.ErrUnsupportedAlgorithm}
	}

	return &Hasher{algorithm: name, newFn: newFn}, nil
}

// MustHasher is like NewHasher but panics on a misconfigured algorithm.
func MustHasher(algorithm string) *Hasher {
	h, err := NewHasher(algorithm)
	if err != nil {
		panic(err)
	}
	return h
}

// Algorithm returns the resolved algorithm name.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// DigestLen returns the length of a rendered digest in characters.
func (h *Hasher) DigestLen() int {
	return h.digest().Size() * 2
}

// Hash returns the hex digest of plain. The same input always yields the same output.
func (h *Hasher) Hash(plain string) string {
	d := h.digest()
	d.Write([]byte(plain))
	return hex.EncodeToString(d.Sum(nil))
}

func (h *Hasher) digest() hash.Hash {
	if h == nil || h.newFn == nil {
		panic(&common.ConfigurationError{Err: errNotInitialized})
	}
	return h.newFn()
}
