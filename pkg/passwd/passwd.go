package passwd

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	currentPrefix = "$argon2id$"
)

// Scheme identifies how a stored password hash was produced.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	// SchemeLegacy is the unsalted SHA-1 hex digest carried over from the
	// first iteration of the application. Verification still works but
	// hashes should be migrated to the current scheme on successful login.
	SchemeLegacy
	// SchemeCurrent is salted argon2id in the standard encoded form.
	SchemeCurrent
)

func SchemeOf(hash string) Scheme {
	if strings.HasPrefix(hash, currentPrefix) {
		return SchemeCurrent
	}
	if len(hash) == hex.EncodedLen(sha1.Size) {
		if _, err := hex.DecodeString(hash); err == nil {
			return SchemeLegacy
		}
	}
	return SchemeUnknown
}

// Hash derives an argon2id hash with a fresh random salt and returns it
// in the encoded form that Verify understands.
func Hash(password string) string {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		panic(err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	saltBase64 := base64.RawStdEncoding.EncodeToString(salt)
	keyBase64 := base64.RawStdEncoding.EncodeToString(key)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s", argon2.Version, argonMemory, argonTime, argonThreads, saltBase64, keyBase64)
}

// Verify checks a plaintext password against a stored hash, dispatching
// on the hash scheme. Comparison is constant time in both schemes.
func Verify(password, hash string) bool {
	switch SchemeOf(hash) {
	case SchemeCurrent:
		return verifyCurrent(password, hash)
	case SchemeLegacy:
		return verifyLegacy(password, hash)
	default:
		return false
	}
}

func verifyCurrent(password, hash string) bool {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(derived, key) == 1
}

func verifyLegacy(password, hash string) bool {
	// Burn the same argon2id cost as the current scheme so a legacy
	// account is not distinguishable from a migrated one by timing.
	argon2.IDKey([]byte(password), []byte("stockroom.legacy"), argonTime, argonMemory, argonThreads, argonKeyLen)

	digest := sha1.Sum([]byte(password))
	derived := hex.EncodeToString(digest[:])

	return subtle.ConstantTimeCompare([]byte(derived), []byte(strings.ToLower(hash))) == 1
}
