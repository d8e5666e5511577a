package utils

import (
	crand "crypto/rand"
	"encoding/hex"
	"time"

	"golang.org/x/exp/rand"
)

func init() {
	rand.Seed(uint64(time.Now().UnixNano()))
}

func GenerateRandomString(limit int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, limit)
	for i := range result {
		result[i] = chars[rand.Intn(len(chars))]
	}

	return string(result)
}

// GenerateSecureString draws from crypto/rand; use it for anything that
// acts as a secret (signing keys, generated passwords).
func GenerateSecureString(limit int) string {
	buf := make([]byte, (limit+1)/2)
	if _, err := crand.Read(buf); err != nil {
		panic(err)
	}

	return hex.EncodeToString(buf)[:limit]
}
