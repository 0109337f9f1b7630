package types

import (
	"strings"
)

// UserKeySigil marks "user key" references in the storage layer.
const UserKeySigil = '~'

// FormatPublicKey normalizes a public key reference: surrounding whitespace is
// trimmed and a single leading user key sigil is stripped. It returns false
// for empty input and for input containing characters outside
// [A-Za-z0-9+/=._-], so the result is always safe to use as a lookup key.
func FormatPublicKey(input string) (string, bool) {
	key := strings.TrimSpace(input)
	if key == "" {
		return "", false
	}
	if key[0] == UserKeySigil {
		key = key[1:]
	}
	if key == "" {
		return "", false
	}
	for i := 0; i < len(key); i++ {
		if !isPublicKeyChar(key[i]) {
			return "", false
		}
	}
	return key, true
}

func isPublicKeyChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+', c == '/', c == '=', c == '.', c == '_', c == '-':
		return true
	}
	return false
}
