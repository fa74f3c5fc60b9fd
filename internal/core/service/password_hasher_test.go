package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_InvalidCost(t *testing.T) {
	if _, err := NewBcryptHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatalf("expected error for cost above max")
	}
	if _, err := NewBcryptHasher(-1); err == nil {
		t.Fatalf("expected error for negative cost")
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !h.Compare("s3cret", hash) {
		t.Fatalf("expected match for correct password")
	}
	if h.Compare("wrong", hash) {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same plaintext must differ (random salt)")
	}
	if !h.Compare("same-password", h1) || !h.Compare("same-password", h2) {
		t.Fatalf("both hashes must verify against the original plaintext")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}
	if h.Compare("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must not verify")
	}
	if h.Compare("anything", "") {
		t.Fatalf("empty hash must not verify")
	}
}
