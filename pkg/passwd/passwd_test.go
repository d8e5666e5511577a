package passwd

import (
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	testCases := []string{
		"Admin@2024!",
		"correct horse battery staple",
		"p",
	}

	for _, password := range testCases {
		t.Run(password, func(t *testing.T) {
			hash := Hash(password)

			if !strings.HasPrefix(hash, "$argon2id$") {
				t.Fatalf("Hash(%q) = %q; want argon2id encoded form", password, hash)
			}
			if !Verify(password, hash) {
				t.Errorf("Verify(%q, hash) = false; want true", password)
			}
			if Verify(password+"x", hash) {
				t.Errorf("Verify(%q, hash) = true; want false", password+"x")
			}
		})
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	if Hash("secret") == Hash("secret") {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
}

func TestVerifyLegacy(t *testing.T) {
	// SHA-1 of "admin123"
	const legacyHash = "e99a18c428cb38d5f260853678922e03abd8335e"

	if !Verify("admin123", legacyHash) {
		t.Error("Verify against legacy digest = false; want true")
	}
	if Verify("admin124", legacyHash) {
		t.Error("Verify with wrong password against legacy digest = true; want false")
	}
}

func TestSchemeOf(t *testing.T) {
	testCases := []struct {
		hash     string
		expected Scheme
	}{
		{Hash("x"), SchemeCurrent},
		{"e99a18c428cb38d5f260853678922e03abd8335e", SchemeLegacy},
		{"", SchemeUnknown},
		{"not-a-hash", SchemeUnknown},
		{"zzza18c428cb38d5f260853678922e03abd8335e", SchemeUnknown},
	}

	for _, tc := range testCases {
		if actual := SchemeOf(tc.hash); actual != tc.expected {
			t.Errorf("SchemeOf(%q) = %v; want %v", tc.hash, actual, tc.expected)
		}
	}
}

func TestVerifyMalformed(t *testing.T) {
	testCases := []string{
		"$argon2id$",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$!!",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
	}

	for _, hash := range testCases {
		if Verify("secret", hash) {
			t.Errorf("Verify against malformed hash %q = true; want false", hash)
		}
	}
}
