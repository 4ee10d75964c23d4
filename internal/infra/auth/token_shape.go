package auth

import "strings"

// IsCompactJWS reports whether token has the three non-empty dot-separated segments of a
// compact JWS. Verifiers use it to reject garbage without a provider round-trip.
func IsCompactJWS(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	for _, part := range parts {
		if part == "" {
			return false
		}
	}

	return true
}

// StringClaim reads a string claim, returning "" when absent or of another type.
func StringClaim(claims map[string]any, key string) string {
	if claims == nil {
		return ""
	}
	v, _ := claims[key].(string)

	return v
}
