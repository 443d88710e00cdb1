package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCredentialNotFound is returned when the credential row does not
	// exist, i.e. the vault has never been set up.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrRecordNotFound is returned when a query or delete targets a record
	// ID that does not exist in the database.
	ErrRecordNotFound = errors.New("record not found")

	// ErrBlobNotFound is returned when an attachment payload is missing from
	// the blob store.
	ErrBlobNotFound = errors.New("attachment blob not found")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails before it reaches the database.
	ErrBuildingSQLQuery = errors.New("error building sql query")
)
