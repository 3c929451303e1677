// Package id generates opaque, URL-safe random identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// 62*4; bytes at or above it are rejected so every symbol is equally likely.
	maxUnbiased = 248

	// DefaultLength is used when Generate is asked for a non-positive length.
	DefaultLength = 12

	// SessionLength yields roughly 256 bits of entropy.
	SessionLength = 43
)

// PrefixSession marks server-side session identifiers.
const PrefixSession = "sess"

// Generate returns a cryptographically random base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// NewSessionID returns a fresh "sess_" identifier.
func NewSessionID() (string, error) {
	s, err := Generate(SessionLength)
	if err != nil {
		return "", err
	}
	return PrefixSession + "_" + s, nil
}

// IsSessionID reports whether s has the shape of an identifier produced by NewSessionID.
func IsSessionID(s string) bool {
	rest, ok := strings.CutPrefix(s, PrefixSession+"_")
	if !ok || len(rest) != SessionLength {
		return false
	}
	return strings.Trim(rest, alphabet) == ""
}
