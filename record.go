package postrewriter

// StructuredRecord is a name with its fixed attribute fields, detected
// inside freeform article text. A record is only usable when all four
// fields are present; partial records are dropped rather than emitted.
type StructuredRecord struct {
	Name       string `json:"name"`
	Origin     string `json:"origin"`
	Meaning    string `json:"meaning"`
	Popularity string `json:"popularity"`
}

// Validate returns an error if any record field is empty.
func (r *StructuredRecord) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "record name required")
	}
	if r.Origin == "" {
		return Errorf(EINVALID, "record origin required")
	}
	if r.Meaning == "" {
		return Errorf(EINVALID, "record meaning required")
	}
	if r.Popularity == "" {
		return Errorf(EINVALID, "record popularity required")
	}
	return nil
}
