package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret77", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret77" {
		t.Fatal("hash equals the plaintext")
	}
	if !VerifyPassword(hash, "secret77") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "secret78") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// An out-of-range cost falls back to the default instead of failing.
	hash, err := HashPassword("secret77", 99)
	if err != nil {
		t.Fatalf("hash with out-of-range cost: %v", err)
	}
	if !VerifyPassword(hash, "secret77") {
		t.Fatal("clamped hash does not verify")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "secret77") {
		t.Fatal("garbage hash accepted")
	}
}
