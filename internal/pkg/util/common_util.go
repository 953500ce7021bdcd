package util

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const digits = "0123456789"

// GenerateCode random numeric code of the given length, zero-padded.
func GenerateCode(length int) (string, error) {
	code := make([]byte, length)
	bound := big.NewInt(int64(len(digits)))
	for i := range code {
		n, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

func PtrInt(i int) *int {
	return &i
}

func PtrStr(s string) *string {
	return &s
}

func PtrUint64(i uint64) *uint64 {
	return &i
}

// NilIfBlank nil for empty or whitespace-only strings.
func NilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// Deref value of s, empty for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
