package patient

import "time"

// Gender values permitted by the patients.gender CHECK constraint.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether the gender is one of the permitted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// AddressType values permitted by the patient_addresses.address_type CHECK
// constraint.
type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// Valid reports whether the address type is one of the permitted values.
func (a AddressType) Valid() bool {
	switch a {
	case AddressHome, AddressWork, AddressOther:
		return true
	}
	return false
}

// Patient maps to the patients table. national_id is the only natural key and
// may be absent (e.g. newborns, undocumented walk-ins).
type Patient struct {
	ID          int64      `db:"id" json:"id"`
	NationalID  *string    `db:"national_id" json:"national_id,omitempty"`
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	Gender      *Gender    `db:"gender" json:"gender,omitempty"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	Email       *string    `db:"email" json:"email,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns "First Last".
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Address maps to the patient_addresses table. Rows live and die with their
// patient.
type Address struct {
	ID         int64       `db:"id" json:"id"`
	PatientID  int64       `db:"patient_id" json:"patient_id"`
	Type       AddressType `db:"address_type" json:"address_type"`
	Line1      string      `db:"line1" json:"line1"`
	Line2      *string     `db:"line2" json:"line2,omitempty"`
	City       *string     `db:"city" json:"city,omitempty"`
	Region     *string     `db:"region" json:"region,omitempty"`
	PostalCode *string     `db:"postal_code" json:"postal_code,omitempty"`
	Country    *string     `db:"country" json:"country,omitempty"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
