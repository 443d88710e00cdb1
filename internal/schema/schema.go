// Package schema declares, per record category, which field names hold
// sensitive values and must pass through the field codec before persisting.
//
// The table is injected into the record service rather than looked up ad
// hoc, so tests can substitute their own and the engine itself stays
// ignorant of what the fields mean.
package schema

import "github.com/abbasl7/e-vault/models"

// Table maps each category to the names of its sensitive fields. A field
// name absent from the table is persisted verbatim.
type Table map[models.Category][]string

// Default returns the sensitive-field table existing vaults were written
// with. Changing an entry changes which fields the record service encrypts
// for new writes, so additions are safe but removals are not.
func Default() Table {
	return Table{
		models.CategoryBanks:    {"accountNo", "cifNo", "username", "profilePrivy", "mPin", "tPin", "notes", "privy"},
		models.CategoryCards:    {"cardNumber", "cvv", "customerId", "pin", "notes"},
		models.CategoryPolicies: {"notes"},
		models.CategoryAadhar:   {"aadharNumber", "enrollmentNumber", "vid", "notes"},
		models.CategoryPan:      {"panNumber", "notes"},
		models.CategoryLicense:  {"licenseNumber", "notes"},
		models.CategoryVoterID:  {"voterIdNumber", "notes"},
		models.CategoryMisc:     {"content", "username", "password", "notes"},
	}
}

// SensitiveFields returns the sensitive field set for category as a lookup
// map. Unknown categories yield an empty set: a record of an undeclared
// category is persisted untouched rather than rejected here (validation is
// the service layer's job).
func (t Table) SensitiveFields(category models.Category) map[string]struct{} {
	names := t[category]
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
