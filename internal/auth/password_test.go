package auth

import (
	"encoding/base64"
	"testing"
)

// bcrypt cost 4 keeps these tests fast; verification behavior is cost-independent.
const testCost = 4

func TestHashAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("wonderland", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !VerifyPassword("wonderland", digest) {
		t.Fatalf("expected digest to verify against its own plaintext")
	}
	if VerifyPassword("not-wonderland", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-input", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-input", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same input must differ: %q", first)
	}
	if !VerifyPassword("same-input", first) || !VerifyPassword("same-input", second) {
		t.Fatalf("both digests must verify against the original input")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	for _, digest := range []string{"", "not-a-digest", "$2b$garbage", "!!!=="} {
		if VerifyPassword("anything", digest) {
			t.Fatalf("malformed digest %q must not verify", digest)
		}
	}
}

func TestVerifyPassword_LegacyEncoding(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("migrated-secret", testCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	legacy := base64.StdEncoding.EncodeToString([]byte(digest))

	if !VerifyPassword("migrated-secret", legacy) {
		t.Fatalf("legacy base64-wrapped digest must verify")
	}
	if VerifyPassword("wrong-secret", legacy) {
		t.Fatalf("legacy digest must still reject a wrong password")
	}
}
