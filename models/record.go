package models

// Record is a generic vault entity belonging to one category. Field values
// are kept in a flat name->value map; which of them are sensitive is decided
// by the category schema, not by the record itself.
//
// A Record value is either fully plaintext (as handed to and from the service
// layer) or persisted form (sensitive values replaced by serialized field
// envelopes). The two forms share this type; the record service converts
// between them and never lets a plaintext form reach the store.
type Record struct {
	// ID is a UUID assigned on first create. Empty on a not-yet-created
	// record.
	ID string `json:"id"`

	// Category determines which schema entry applies to Fields.
	Category Category `json:"category"`

	// Fields maps field names to values. In persisted form the values of
	// the category's sensitive fields are serialized field envelopes
	// (decimal-byte-array JSON); all other values are stored verbatim.
	Fields map[string]string `json:"fields"`

	// Attachments holds the record's encrypted file attachments.
	Attachments []Attachment `json:"documents,omitempty"`

	// CreatedAt and UpdatedAt are Unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Clone returns a deep copy of the record. The record service mutates copies
// during envelope conversion, never its input.
func (r Record) Clone() Record {
	out := r
	out.Fields = make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	if r.Attachments != nil {
		out.Attachments = make([]Attachment, len(r.Attachments))
		copy(out.Attachments, r.Attachments)
	}
	return out
}

// TableName returns the name of the database table associated with the
// Record model.
func (r Record) TableName() string {
	return "records"
}
