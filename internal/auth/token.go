// Package auth provides the random material for the credential layer:
// opaque session tokens and activation codes.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionTokenBytes is the entropy of a session token before encoding.
const SessionTokenBytes = 32

// ActivationCodeLength is the length of a generated activation code.
const ActivationCodeLength = 16

// GenerateSessionToken creates a cryptographically random opaque session
// token, URL-safe and padding-free. The token itself carries no identity;
// it is only a lookup key.
func GenerateSessionToken() (string, error) {
	b := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateActivationCode derives a 16-character upper-case hex code from a
// fresh UUID and the current time. Uniqueness is enforced by the database,
// not here; callers must handle the duplicate case.
func GenerateActivationCode() string {
	seed := uuid.New().String() + strconv.FormatInt(time.Now().UnixNano(), 10)
	sum := sha256.Sum256([]byte(seed))

	return strings.ToUpper(hex.EncodeToString(sum[:]))[:ActivationCodeLength]
}
