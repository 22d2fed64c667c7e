package provisioner

import (
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"
)

// Alphabet used for generated passwords: lowercase, uppercase, digits.
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length of the passwords handed out to students.
const passwordLength = 12

// GeneratePassword returns a password of n characters sampled without
// replacement from the 62-symbol alphanumeric alphabet, so no
// character repeats and n cannot exceed 62. This matches what the
// exam operators have always handed out; it is not cryptographically
// uniform, which is acceptable for a one-time low-value secret.
func GeneratePassword(n int) (string, error) {
	if n > len(passwordAlphabet) {
		return "", fmt.Errorf("password length %d exceeds alphabet size %d", n, len(passwordAlphabet))
	}

	letters := []byte(passwordAlphabet)
	rand.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})

	return string(letters[:n]), nil
}

// hashPassword derives the one-way hash stored in the user table.
// DOMjudge verifies accounts against bcrypt hashes.
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
