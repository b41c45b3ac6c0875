package directory

import "time"

// Specialty maps to the specialties table.
type Specialty struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}

// Doctor maps to the doctors table. The user link is optional: a doctor may
// practice at the clinic without holding a staff login, and deleting the staff
// account detaches it without touching the doctor row.
type Doctor struct {
	ID            int64     `db:"id" json:"id"`
	UserID        *int64    `db:"user_id" json:"user_id,omitempty"`
	LicenseNumber string    `db:"license_number" json:"license_number"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Email         *string   `db:"email" json:"email,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns "First Last".
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// ClinicRoom maps to the clinic_rooms table.
type ClinicRoom struct {
	ID       int64   `db:"id" json:"id"`
	Code     string  `db:"code" json:"code"`
	Name     *string `db:"name" json:"name,omitempty"`
	Capacity int     `db:"capacity" json:"capacity"`
}

// Service maps to the services table: the live billable catalog. Booked
// appointments snapshot the price, so editing it here never rewrites history.
type Service struct {
	ID              int64   `db:"id" json:"id"`
	Code            string  `db:"code" json:"code"`
	Name            string  `db:"name" json:"name"`
	DurationMinutes int     `db:"duration_minutes" json:"duration_minutes"`
	Price           float64 `db:"price" json:"price"`
	Active          bool    `db:"active" json:"active"`
}
