package cereal

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrLookup indicates neither an attribute nor a key was found on a source.
	ErrLookup = errors.New("lookup failed")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrMissingEncryptor indicates a required encryptor was not registered.
	ErrMissingEncryptor = errors.New("missing encryptor")

	// ErrMissingHasher indicates a required hasher was not registered.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrMissingMasker indicates a required masker was not registered.
	ErrMissingMasker = errors.New("missing masker")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrEncrypt indicates encryption of a value failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrHash indicates hashing of a value failed.
	ErrHash = errors.New("hash failed")

	// ErrMask indicates masking of a value failed.
	ErrMask = errors.New("mask failed")

	// ErrRedact indicates redaction of a value failed.
	ErrRedact = errors.New("redact failed")

	// ErrInvalidKey indicates an encryption key has invalid size or format.
	ErrInvalidKey = errors.New("invalid key")
)

// LookupError reports that a name resolved to neither an attribute nor a key.
type LookupError struct {
	Name string // Attribute or key that was requested
	Type string // Dynamic type of the source
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q on %s: neither attribute nor key found", e.Name, e.Type)
}

func (e *LookupError) Unwrap() error {
	return ErrLookup
}

// FieldError attaches the output key to a failure raised while resolving it.
// It unwraps to the field's original error.
type FieldError struct {
	Serializer string // Serializer name
	Key        string // Output key being resolved
	Err        error  // Error returned by the field
}

func (e *FieldError) Error() string {
	if e.Serializer != "" {
		return fmt.Sprintf("%s: field %s: %v", e.Serializer, e.Key, e.Err)
	}
	return fmt.Sprintf("field %s: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConfigError represents a serializer configuration error.
// It wraps a sentinel error with additional context about the field and algorithm.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingEncryptor, etc.)
	Field     string // Field name that triggered the error
	Algorithm string // Algorithm or type that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents a failure inside a transforming field.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrMask, ErrHash, etc.)
	Key       string // Output key being transformed
	Operation string // mask, redact, hash, encrypt
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Operation, e.Key)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newLookupError(name string, source any) error {
	return &LookupError{Name: name, Type: fmt.Sprintf("%T", source)}
}

func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

func newTransformError(sentinel error, operation, key string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Key:       key,
		Operation: operation,
		Cause:     cause,
	}
}

func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
