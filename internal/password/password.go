package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for all password hashes.
const Cost = 12

// Hash computes a salted bcrypt hash of the plaintext. A fresh salt is
// drawn on every call, so hashing the same plaintext twice yields two
// different hashes.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the given bcrypt hash.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
