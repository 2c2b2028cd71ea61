package crypto

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if string(hash) == "secret1" {
		t.Fatalf("hash must not equal plaintext")
	}
	if err := ComparePassword(hash, "secret1"); err != nil {
		t.Fatalf("expected matching password: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch to fail")
	}
}
