package cereal

import (
	"errors"
	"testing"
)

func TestLookupError_Is(t *testing.T) {
	err := newLookupError("title", Child{})

	if !errors.Is(err, ErrLookup) {
		t.Error("LookupError should unwrap to ErrLookup")
	}
	if errors.Is(err, ErrInvalidTag) {
		t.Error("LookupError should not match ErrInvalidTag")
	}
}

func TestFieldError(t *testing.T) {
	cause := newLookupError("title", nil)

	tests := []struct {
		name string
		err  *FieldError
		want string
	}{
		{
			name: "named serializer",
			err:  &FieldError{Serializer: "Book", Key: "title", Err: cause},
			want: `Book: field title: lookup "title" on <nil>: neither attribute nor key found`,
		},
		{
			name: "anonymous serializer",
			err:  &FieldError{Key: "title", Err: cause},
			want: `field title: lookup "title" on <nil>: neither attribute nor key found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrLookup) {
				t.Error("FieldError should unwrap to the field error")
			}
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newConfigError(ErrMissingEncryptor, "aes", "SSN"),
			want: `missing encryptor for algorithm "aes" (field SSN)`,
		},
		{
			name: "algorithm only",
			err:  &ConfigError{Err: ErrMissingHasher, Algorithm: "argon2"},
			want: `missing hasher for algorithm "argon2"`,
		},
		{
			name: "field only",
			err:  &ConfigError{Err: ErrInvalidTag, Field: "Password"},
			want: `invalid tag (field Password)`,
		},
		{
			name: "sentinel only",
			err:  &ConfigError{Err: ErrMissingMasker},
			want: `missing masker`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransformError(t *testing.T) {
	err := newTransformError(ErrEncrypt, "encrypt", "ssn", errors.New("key error"))

	if !errors.Is(err, ErrEncrypt) {
		t.Error("TransformError should unwrap to ErrEncrypt")
	}
	if want := "encrypt ssn: key error"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &TransformError{Err: ErrRedact, Operation: "redact", Key: "note"}
	if want := "redact note"; bare.Error() != want {
		t.Errorf("Error() = %q, want %q", bare.Error(), want)
	}
}

func TestCodecError(t *testing.T) {
	err := newCodecError(ErrMarshal, errors.New("unsupported type"))

	if !errors.Is(err, ErrMarshal) {
		t.Error("CodecError should unwrap to ErrMarshal")
	}
	if want := "marshal failed: unsupported type"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if got := (&CodecError{Err: ErrMarshal}).Error(); got != "marshal failed" {
		t.Errorf("Error() = %q, want %q", got, "marshal failed")
	}
}
