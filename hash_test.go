package cereal

import (
	"strings"
	"testing"
)

func TestArgon2_Hash(t *testing.T) {
	h := Argon2WithParams(Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 16, SaltLen: 8})

	hash1, err := h.Hash([]byte("password123"))
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if !strings.HasPrefix(hash1, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Errorf("Hash() = %q, want argon2id PHC prefix", hash1)
	}

	hash2, _ := h.Hash([]byte("password123"))
	if hash1 == hash2 {
		t.Error("same plaintext should produce different hashes (random salt)")
	}
}

func TestDefaultArgon2Params(t *testing.T) {
	want := Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
	if got := DefaultArgon2Params(); got != want {
		t.Errorf("DefaultArgon2Params() = %+v, want %+v", got, want)
	}
}

func TestBcryptWithCost(t *testing.T) {
	h := BcryptWithCost(BcryptMinCost)

	hash, err := h.Hash([]byte("test"))
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() = %q, want prefix $2", hash)
	}
}

func TestBcrypt_InvalidCost(t *testing.T) {
	h := BcryptWithCost(BcryptMaxCost + 1)
	if _, err := h.Hash([]byte("test")); err == nil {
		t.Error("expected error for out-of-range cost")
	}
}

func TestDigestHashers(t *testing.T) {
	tests := []struct {
		name string
		h    Hasher
		want string
	}{
		{"sha256", SHA256Hasher(), "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"sha512", SHA512Hasher(), "9b71d224bd62f3785d96d46ad3ea3d73319bfbc2890caadae2dff72519673ca72323c3d99ba5c11d7c7acc6e14b8c5da0c4663475c2e5c3adef46f73bcdec043"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.h.Hash([]byte("hello"))
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Hash() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuiltinHashers(t *testing.T) {
	hashers := builtinHashers()
	for algo := range validHashAlgos {
		if _, ok := hashers[algo]; !ok {
			t.Errorf("builtinHashers() missing %q", algo)
		}
	}
}
