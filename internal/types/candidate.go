// Package types defines the structured data shapes shared across the CV parser pipeline.
package types

// PresentToken is the literal end date used for roles the candidate still holds.
const PresentToken = "Present"

// ContactInfo holds the candidate's contact details. Every field is optional and
// independently nullable; a null means the resume did not contain that detail.
type ContactInfo struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

// Education is a single education entry. Fields are always present but may be
// empty strings when the resume omits them.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationYear string `json:"graduation_year"`
}

// Experience is a single work experience entry. EndDate carries PresentToken
// for ongoing roles.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// CandidateRecord is the canonical structured output of the parser.
// Every key is present in the serialized form even when the value is unknown:
// unknown strings are empty, unknown contact fields are null, and the sequences
// serialize as empty arrays rather than null.
type CandidateRecord struct {
	Name       string       `json:"name"`
	Contact    ContactInfo  `json:"contact"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []string     `json:"skills"`
}

// Normalize ensures the sequence fields are non-nil so the record always
// serializes with every key present.
func (r *CandidateRecord) Normalize() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
}
