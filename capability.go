package cereal

// Struct tags understood by Infer and the attribute index.
//
//	cereal:"name"          output key and lookup alias ("-" skips the field)
//	cereal.mask:"email"    mask the value with a builtin masker
//	cereal.redact:"***"    replace the value with a fixed string
//	cereal.hash:"sha256"   replace the value with its hash
//	cereal.encrypt:"aes"   replace the value with base64 ciphertext
const (
	tagKey     = "cereal"
	tagMask    = "cereal.mask"
	tagRedact  = "cereal.redact"
	tagHash    = "cereal.hash"
	tagEncrypt = "cereal.encrypt"
)

var knownTags = []string{tagKey, tagMask, tagRedact, tagHash, tagEncrypt}

// EncryptAlgo represents a supported encryption algorithm.
// Use these constants in struct tags: `cereal.encrypt:"aes"`
type EncryptAlgo string

// EncryptAES uses AES-GCM symmetric encryption.
const EncryptAES EncryptAlgo = "aes"

// HashAlgo represents a supported hashing algorithm.
// Use these constants in struct tags: `cereal.hash:"sha256"`
type HashAlgo string

const (
	// HashArgon2 uses Argon2id for password hashing (salted, slow).
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt for password hashing (salted, slow).
	HashBcrypt HashAlgo = "bcrypt"

	// HashSHA256 uses SHA-256 for deterministic hashing (fast, no salt).
	// Use for fingerprinting/identification, NOT for passwords.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 for deterministic hashing (fast, no salt).
	HashSHA512 HashAlgo = "sha512"
)

var validEncryptAlgos = map[EncryptAlgo]bool{
	EncryptAES: true,
}

var validHashAlgos = map[HashAlgo]bool{
	HashArgon2: true,
	HashBcrypt: true,
	HashSHA256: true,
	HashSHA512: true,
}

var validMaskTypes = map[MaskType]bool{
	MaskSSN:   true,
	MaskEmail: true,
	MaskPhone: true,
	MaskCard:  true,
	MaskIP:    true,
	MaskUUID:  true,
	MaskIBAN:  true,
	MaskName:  true,
}

// IsValidEncryptAlgo returns true if the algorithm is a known encryption algorithm.
func IsValidEncryptAlgo(algo EncryptAlgo) bool {
	return validEncryptAlgos[algo]
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}
