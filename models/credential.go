package models

// CredentialID is the fixed primary key of the credential row. Exactly one
// credential exists per vault installation.
const CredentialID = "master"

// Credential is the persisted authentication record for the vault. It never
// contains the master password or any key material: only the salted
// verification hash and the hashed security answers.
//
// The field encodings are part of the on-disk format and must not change
// without versioning the vault: Salt is the hex encoding of 16 random bytes,
// and every *Hash field is the hex encoding of a 32-byte PBKDF2 output.
type Credential struct {
	// ID is always [CredentialID].
	ID string `json:"id"`

	// MasterHash is the verification value for the master password.
	// It is derived from the password and the UTF-8 bytes of Salt, and is
	// cryptographically independent of the encryption key, which is derived
	// from the raw bytes Salt decodes to.
	MasterHash string `json:"masterHash"`

	// Salt is the per-installation key-derivation salt, hex-encoded.
	Salt string `json:"salt"`

	// Username is the display name chosen at setup. Not used for
	// authentication; the vault is single-user.
	Username string `json:"username"`

	// SecurityQuestion1 and SecurityQuestion2 are stored in plaintext so the
	// reset flow can show them before the user is authenticated.
	SecurityQuestion1 string `json:"securityQuestion1"`

	// SecurityAnswer1Hash is the hash of the lower-cased first answer.
	SecurityAnswer1Hash string `json:"securityAnswer1Hash"`

	SecurityQuestion2 string `json:"securityQuestion2"`

	// SecurityAnswer2Hash is the hash of the lower-cased second answer.
	SecurityAnswer2Hash string `json:"securityAnswer2Hash"`

	// CreatedAt and UpdatedAt are Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// TableName returns the name of the database table associated with the
// Credential model.
func (c Credential) TableName() string {
	return "credential"
}
