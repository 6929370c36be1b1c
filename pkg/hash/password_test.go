package hash

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "s3cret" {
		t.Fatal("password stored in clear text")
	}
	if !CheckPasswordHash("s3cret", hashed) {
		t.Fatal("expected hash to match its password")
	}
	if CheckPasswordHash("other", hashed) {
		t.Fatal("expected mismatch for a different password")
	}
}

func TestHashPasswordLongerThanBcryptLimit(t *testing.T) {
	long := strings.Repeat("a", 73)
	hashed, err := HashPassword(long)
	if err != nil {
		t.Fatalf("HashPassword(73 bytes): %v", err)
	}
	if !CheckPasswordHash(long, hashed) {
		t.Fatal("expected long password to match its hash")
	}
	// differs only after byte 72, which plain bcrypt would ignore
	if CheckPasswordHash(strings.Repeat("a", 72)+"b", hashed) {
		t.Fatal("expected mismatch for a password differing past 72 bytes")
	}
}
