package cereal

import (
	"errors"
	"net/netip"
	"slices"
	"testing"
)

func TestMasked(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"string", "alice@example.com", "a***@example.com"},
		{"bytes", []byte("bob@example.com"), "b***@example.com"},
		{"named string", Label("carol@example.com"), "c***@example.com"},
		{"nil", nil, nil},
	}

	f := Masked(nil, EmailMasker())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Value(map[string]any{"email": tt.value}, "email")
			if err != nil {
				t.Fatalf("Value() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMasked_Slice(t *testing.T) {
	got, err := Masked(nil, NameMasker()).Value(map[string]any{"names": []string{"John Smith", "Ann"}}, "names")
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if want := []string{"J*** S****", "A**"}; !slices.Equal(got.([]string), want) {
		t.Errorf("Value() = %v, want %v", got, want)
	}
}

func TestMasked_Stringer(t *testing.T) {
	source := map[string]any{"ip": netip.MustParseAddr("10.1.2.3")}
	got, err := Masked(Passthrough(), IPMasker()).Value(source, "ip")
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if got != "10.1.xxx.xxx" {
		t.Errorf("Value() = %v, want %q", got, "10.1.xxx.xxx")
	}
}

func TestTransformField_UnsupportedType(t *testing.T) {
	_, err := Masked(nil, EmailMasker()).Value(map[string]any{"n": 42}, "n")
	if !errors.Is(err, ErrMask) {
		t.Fatalf("Value() error = %v, want ErrMask", err)
	}
	var te *TransformError
	if !errors.As(err, &te) || te.Key != "n" || te.Operation != "mask" {
		t.Errorf("Value() error = %#v, want TransformError for key n", err)
	}
}

func TestTransformField_InnerErrorUnchanged(t *testing.T) {
	_, err := Hashed(nil, SHA256Hasher()).Value(map[string]any{}, "missing")
	var le *LookupError
	if !errors.As(err, &le) {
		t.Errorf("Value() error = %v, want *LookupError", err)
	}
}

func TestRedacted(t *testing.T) {
	f := Redacted(Passthrough(), "***")
	got, err := f.Value(map[string]any{"password": "hunter2"}, "password")
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if got != "***" {
		t.Errorf("Value() = %v, want %q", got, "***")
	}
}

func TestHashed(t *testing.T) {
	got, err := Hashed(From("Secret"), SHA256Hasher()).Value(struct{ Secret string }{"hello"}, "digest")
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if got != "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" {
		t.Errorf("Value() = %v, want sha256 of hello", got)
	}
}

func TestHashed_Error(t *testing.T) {
	cause := errors.New("hasher down")
	h := HasherFunc(func([]byte) (string, error) { return "", cause })

	_, err := Hashed(nil, h).Value(map[string]any{"tokens": []string{"a", "b"}}, "tokens")
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Value() error = %v, want *TransformError", err)
	}
	if !errors.Is(err, ErrHash) || te.Cause != cause || te.Key != "tokens[0]" {
		t.Errorf("TransformError = %+v, want ErrHash on tokens[0] caused by %v", te, cause)
	}
}

func TestEncrypted(t *testing.T) {
	enc, err := AES([]byte(testAESKey))
	if err != nil {
		t.Fatalf("AES() error: %v", err)
	}

	got, err := Encrypted(nil, enc).Value(map[string]any{"ssn": "123-45-6789"}, "ssn")
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	plaintext, err := DecryptValue(enc, got.(string))
	if err != nil {
		t.Fatalf("DecryptValue() error: %v", err)
	}
	if plaintext != "123-45-6789" {
		t.Errorf("round-trip = %q, want %q", plaintext, "123-45-6789")
	}
}
