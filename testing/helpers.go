// Package testing provides fixtures and helpers for testing cereal serializers.
package testing

import (
	"fmt"
	"testing"

	"github.com/zoobzio/cereal"
)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(t testing.TB) []byte {
	t.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(t testing.TB) cereal.Encryptor {
	t.Helper()
	enc, err := cereal.AES(TestKey(t))
	if err != nil {
		t.Fatalf("cereal.AES: %v", err)
	}
	return enc
}

// Author is a plain struct read through Passthrough fields.
type Author struct {
	Name  string
	Email string
}

// Tag is a member of a TagSet.
type Tag struct {
	Name string
}

// TagSet is a lazy relation of tags, resolved through Objects().All().
type TagSet struct {
	Items []Tag
	Err   error
}

// Objects implements cereal.Relation.
func (s TagSet) Objects() cereal.QuerySet { return s }

// All implements cereal.QuerySet.
func (s TagSet) All() ([]any, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]any, len(s.Items))
	for i, tag := range s.Items {
		out[i] = tag
	}
	return out, nil
}

// Book relates one author and a set of tags.
type Book struct {
	ID     int     `cereal:"id"`
	Title  string  `cereal:"title"`
	Author *Author `cereal:"author"`
	Tags   TagSet  `cereal:"tags"`
}

// Slug is exposed to serializers as a zero-argument method.
func (b Book) Slug() string {
	return fmt.Sprintf("book-%d", b.ID)
}

// Customer carries every transform tag understood by cereal.Infer.
type Customer struct {
	ID       string `cereal:"id"`
	Email    string `cereal:"email" cereal.mask:"email"`
	Password string `cereal:"password" cereal.hash:"sha256"`
	SSN      string `cereal:"ssn" cereal.encrypt:"aes"`
	Note     string `cereal:"note" cereal.redact:"[REDACTED]"`
	Internal string `cereal:"-"`
}

// AuthorSerializer returns a serializer for Author.
func AuthorSerializer() cereal.AsDicter {
	return cereal.NewSerializer("Author").
		Declare("name", cereal.From("Name")).
		Declare("email", cereal.Masked(cereal.From("Email"), cereal.EmailMasker()))
}

// TagSerializer returns a serializer for Tag.
func TagSerializer() cereal.AsDicter {
	return cereal.NewSerializer("Tag").Declare("name", cereal.From("Name"))
}

// BookSerializer returns a serializer for Book with nested author and tags.
func BookSerializer() *cereal.Serializer {
	return cereal.NewSerializer("Book").
		Declare("schema", cereal.Constant("v1")).
		Declare("id", nil).
		Declare("title", nil).
		Declare("slug", cereal.From("Slug")).
		Declare("author", cereal.Nested(AuthorSerializer)).
		Declare("tags", cereal.Nested(TagSerializer))
}

// NewBook returns a populated Book.
func NewBook(id int) *Book {
	return &Book{
		ID:     id,
		Title:  fmt.Sprintf("Book %d", id),
		Author: &Author{Name: "Frank Herbert", Email: "frank@example.com"},
		Tags:   TagSet{Items: []Tag{{Name: "scifi"}, {Name: "classic"}}},
	}
}

// NewBooks returns n populated books with IDs starting at 1.
func NewBooks(n int) []*Book {
	books := make([]*Book, n)
	for i := range books {
		books[i] = NewBook(i + 1)
	}
	return books
}

// NewCustomer returns a populated Customer.
func NewCustomer() Customer {
	return Customer{
		ID:       "c-1",
		Email:    "alice@example.com",
		Password: "hunter2",
		SSN:      "123-45-6789",
		Note:     "prefers email",
		Internal: "never serialized",
	}
}
