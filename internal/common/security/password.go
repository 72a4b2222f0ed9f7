package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
)

// saltLength is the size of the per-account HMAC key. 64 bytes matches the
// SHA-512 block size.
const saltLength = 64

// HashPassword derives a keyed hash of the plaintext password. A fresh random
// salt is generated on every call and used as the HMAC-SHA-512 key, so the
// same password hashed twice yields different (hash, salt) pairs.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generating salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil), salt, nil
}

// VerifyPassword recomputes the keyed hash of password under salt and compares
// it to hash in constant time. Inputs of mismatched length simply compare
// unequal.
func VerifyPassword(password string, hash, salt []byte) bool {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), hash)
}
