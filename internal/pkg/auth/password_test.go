package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("orden-secreta")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "orden-secreta" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := h.Compare(hash, "orden-secreta"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)
	if h.cost == 0 {
		t.Fatal("expected default cost to be applied")
	}
}
