package tui

import "github.com/abbasl7/e-vault/models"

// fieldSpec describes one record field as the forms and detail view render
// it. Sensitive is display metadata only; what actually gets encrypted is
// decided by the schema table in the record service.
type fieldSpec struct {
	Name      string
	Label     string
	Sensitive bool
}

// categoryTitles maps categories to their menu labels.
var categoryTitles = map[models.Category]string{
	models.CategoryBanks:    "Bank Accounts",
	models.CategoryCards:    "Cards",
	models.CategoryPolicies: "Insurance Policies",
	models.CategoryAadhar:   "Aadhaar",
	models.CategoryPan:      "PAN",
	models.CategoryLicense:  "Driving License",
	models.CategoryVoterID:  "Voter ID",
	models.CategoryMisc:     "Miscellaneous",
}

// categoryFields lists every field of a category in form order.
var categoryFields = map[models.Category][]fieldSpec{
	models.CategoryBanks: {
		{Name: "title", Label: "Title"},
		{Name: "bankName", Label: "Bank name"},
		{Name: "ifsc", Label: "IFSC"},
		{Name: "accountNo", Label: "Account number", Sensitive: true},
		{Name: "cifNo", Label: "CIF number", Sensitive: true},
		{Name: "username", Label: "Netbanking username", Sensitive: true},
		{Name: "profilePrivy", Label: "Profile password", Sensitive: true},
		{Name: "mPin", Label: "mPIN", Sensitive: true},
		{Name: "tPin", Label: "tPIN", Sensitive: true},
		{Name: "privy", Label: "Netbanking password", Sensitive: true},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
	models.CategoryCards: {
		{Name: "bankName", Label: "Bank name"},
		{Name: "cardType", Label: "Card type"},
		{Name: "cardNumber", Label: "Card number", Sensitive: true},
		{Name: "cvv", Label: "CVV", Sensitive: true},
		{Name: "validTill", Label: "Valid till"},
		{Name: "customerId", Label: "Customer ID", Sensitive: true},
		{Name: "pin", Label: "PIN", Sensitive: true},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
	models.CategoryPolicies: {
		{Name: "name", Label: "Policy name"},
		{Name: "company", Label: "Company"},
		{Name: "amount", Label: "Amount"},
		{Name: "nextPremiumDate", Label: "Next premium date"},
		{Name: "premiumValue", Label: "Premium value"},
		{Name: "maturityValue", Label: "Maturity value"},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
	models.CategoryAadhar: {
		{Name: "name", Label: "Name"},
		{Name: "aadharNumber", Label: "Aadhaar number", Sensitive: true},
		{Name: "dateOfBirth", Label: "Date of birth"},
		{Name: "address", Label: "Address"},
		{Name: "enrollmentNumber", Label: "Enrollment number", Sensitive: true},
		{Name: "vid", Label: "VID", Sensitive: true},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
	models.CategoryPan: {
		{Name: "name", Label: "Name"},
		{Name: "panNumber", Label: "PAN number", Sensitive: true},
		{Name: "dateOfBirth", Label: "Date of birth"},
		{Name: "fatherName", Label: "Father's name"},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
	models.CategoryLicense: {
		{Name: "name", Label: "Name"},
		{Name: "licenseNumber", Label: "License number", Sensitive: true},
		{Name: "dateOfIssue", Label: "Date of issue"},
		{Name: "validTill", Label: "Valid till"},
		{Name: "vehicleClasses", Label: "Vehicle classes"},
		{Name: "stateOfIssue", Label: "State of issue"},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
	models.CategoryVoterID: {
		{Name: "name", Label: "Name"},
		{Name: "voterIdNumber", Label: "Voter ID number", Sensitive: true},
		{Name: "dateOfBirth", Label: "Date of birth"},
		{Name: "constituency", Label: "Constituency"},
		{Name: "state", Label: "State"},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
	models.CategoryMisc: {
		{Name: "title", Label: "Title"},
		{Name: "type", Label: "Type"},
		{Name: "content", Label: "Content", Sensitive: true},
		{Name: "url", Label: "URL"},
		{Name: "username", Label: "Username", Sensitive: true},
		{Name: "password", Label: "Password", Sensitive: true},
		{Name: "notes", Label: "Notes", Sensitive: true},
	},
}

// recordTitle picks the display line for a record in list views.
func recordTitle(record models.Record) string {
	for _, name := range []string{"title", "name", "bankName"} {
		if v := record.Fields[name]; v != "" {
			return v
		}
	}
	return record.ID
}
