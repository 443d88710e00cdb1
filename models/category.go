package models

// Category identifies a vault record category. Each category has its own set
// of sensitive field names, declared in the schema table and injected into
// the record service; the models layer treats categories as opaque labels.
type Category string

const (
	// CategoryBanks holds bank account records (account number, CIF,
	// netbanking credentials, PINs).
	CategoryBanks Category = "banks"

	// CategoryCards holds debit/credit card records.
	CategoryCards Category = "cards"

	// CategoryPolicies holds insurance policy records.
	CategoryPolicies Category = "policies"

	// CategoryAadhar holds Aadhaar ID records.
	CategoryAadhar Category = "aadhar"

	// CategoryPan holds PAN card records.
	CategoryPan Category = "pan"

	// CategoryLicense holds driving licence records.
	CategoryLicense Category = "license"

	// CategoryVoterID holds voter ID records.
	CategoryVoterID Category = "voterid"

	// CategoryMisc holds free-form notes and credentials that fit no other
	// category.
	CategoryMisc Category = "misc"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryBanks,
		CategoryCards,
		CategoryPolicies,
		CategoryAadhar,
		CategoryPan,
		CategoryLicense,
		CategoryVoterID,
		CategoryMisc,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
