package testing

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/cereal"
)

func TestTestKey(t *testing.T) {
	if key := TestKey(t); len(key) != 32 {
		t.Errorf("TestKey() length = %d, want 32", len(key))
	}
}

func TestTestEncryptor(t *testing.T) {
	enc := TestEncryptor(t)

	ciphertext, err := enc.Encrypt([]byte("test"))
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if string(decrypted) != "test" {
		t.Errorf("round-trip = %q, want %q", decrypted, "test")
	}
}

func TestBookSerializer(t *testing.T) {
	got, err := BookSerializer().AsDict(NewBook(7))
	if err != nil {
		t.Fatalf("AsDict() error: %v", err)
	}

	want := map[string]any{
		"schema": "v1",
		"id":     7,
		"title":  "Book 7",
		"slug":   "book-7",
		"author": map[string]any{"name": "Frank Herbert", "email": "f***@example.com"},
		"tags":   []map[string]any{{"name": "scifi"}, {"name": "classic"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AsDict() mismatch (-want +got):\n%s", diff)
	}
}

func TestTagSet_Error(t *testing.T) {
	boom := errors.New("query failed")
	book := NewBook(1)
	book.Tags.Err = boom

	_, err := BookSerializer().AsDict(book)
	if !errors.Is(err, boom) {
		t.Errorf("AsDict() error = %v, want %v", err, boom)
	}
}

func TestTagSet_Shape(t *testing.T) {
	if got := cereal.ShapeOf(TagSet{}); got != cereal.ShapeQueryable {
		t.Errorf("ShapeOf(TagSet) = %v, want %v", got, cereal.ShapeQueryable)
	}
}

func TestCustomer_Infer(t *testing.T) {
	s, err := cereal.Infer[Customer](cereal.WithEncryptor(cereal.EncryptAES, TestEncryptor(t)))
	if err != nil {
		t.Fatalf("Infer() error: %v", err)
	}

	got, err := s.AsDict(NewCustomer())
	if err != nil {
		t.Fatalf("AsDict() error: %v", err)
	}

	if _, ok := got["Internal"]; ok {
		t.Error("Internal should be skipped")
	}
	if got["email"] != "a***@example.com" {
		t.Errorf("email = %v, want masked", got["email"])
	}
	if got["note"] != "[REDACTED]" {
		t.Errorf("note = %v, want redacted", got["note"])
	}
	if got["ssn"] == "123-45-6789" {
		t.Error("ssn should be encrypted")
	}
}
