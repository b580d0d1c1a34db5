package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters for credential hashing
const (
	saltSize    = 16
	hashTime    = 1
	hashMemory  = 64 * 1024
	hashThreads = 4
	hashLen     = 32
)

// credential is a salted password digest as persisted in the
// registered-user directory
type credential struct {
	Salt string `json:"salt"`
	Hash string `json:"hash"`
}

// hashPassword derives a fresh salted argon2id digest for the password
func hashPassword(password string) (credential, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return credential{}, fmt.Errorf("generate salt: %w", err)
	}
	hash := argon2.IDKey([]byte(password), salt, hashTime, hashMemory, hashThreads, hashLen)
	return credential{Salt: hex.EncodeToString(salt), Hash: hex.EncodeToString(hash)}, nil
}

// verify checks the password against the stored digest in constant time
func (c credential) verify(password string) bool {
	salt, err := hex.DecodeString(c.Salt)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(c.Hash)
	if err != nil {
		return false
	}
	derived := argon2.IDKey([]byte(password), salt, hashTime, hashMemory, hashThreads, hashLen)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}
