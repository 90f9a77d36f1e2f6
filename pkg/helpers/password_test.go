package helpers

import (
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !CompareHashAndPassword(hash, "s3cret-pass") {
		t.Error("correct password did not verify")
	}
	if CompareHashAndPassword(hash, "wrong-pass") {
		t.Error("wrong password verified")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, _ := HashPassword("same")
	h2, _ := HashPassword("same")
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}
