// Package seed loads the reference and demo rows a fresh deployment starts
// with: staff accounts, the specialty taxonomy, a doctor roster, the service
// catalog, rooms, and one demo patient. Loading is idempotent; every insert
// carries ON CONFLICT DO NOTHING keyed on the natural unique column, so
// running it against a populated schema is a no-op.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicbase/clinicbase/internal/domain/staff"
	"github.com/clinicbase/clinicbase/internal/platform/db"
)

// Result counts the rows each entity gained during a load.
type Result struct {
	Users       int `json:"users"`
	Specialties int `json:"specialties"`
	Doctors     int `json:"doctors"`
	Services    int `json:"services"`
	Rooms       int `json:"rooms"`
	Patients    int `json:"patients"`
}

type userSeed struct {
	Username string
	Password string
	FullName string
	Role     staff.Role
	Email    string
}

type doctorSeed struct {
	Username    string // linked staff account, empty for none
	License     string
	FirstName   string
	LastName    string
	Specialties []string
}

type serviceSeed struct {
	Code            string
	Name            string
	DurationMinutes int
	Price           float64
}

func seedUsers() []userSeed {
	return []userSeed{
		{"admin", "admin123", "System Administrator", staff.RoleAdmin, "admin@clinic.local"},
		{"reception", "reception123", "Front Desk", staff.RoleReception, "reception@clinic.local"},
		{"dr.mensah", "doctor123", "Grace Mensah", staff.RoleDoctor, "g.mensah@clinic.local"},
		{"nurse.abena", "nurse123", "Abena Owusu", staff.RoleNurse, "a.owusu@clinic.local"},
		{"accounts", "accounts123", "Kwame Boateng", staff.RoleAccountant, "k.boateng@clinic.local"},
	}
}

func seedSpecialties() []string {
	return []string{
		"General Practice", "Pediatrics", "Cardiology",
		"Dermatology", "Obstetrics & Gynecology", "Orthopedics",
	}
}

func seedDoctors() []doctorSeed {
	return []doctorSeed{
		{"dr.mensah", "MD-2021-0147", "Grace", "Mensah", []string{"General Practice", "Pediatrics"}},
		{"", "MD-2018-0032", "Yaw", "Asante", []string{"Cardiology"}},
		{"", "MD-2023-0581", "Efua", "Darko", []string{"Dermatology", "General Practice"}},
	}
}

func seedServices() []serviceSeed {
	return []serviceSeed{
		{"CONS-GEN", "General Consultation", 30, 150.00},
		{"CONS-SPEC", "Specialist Consultation", 45, 300.00},
		{"LAB-BLOOD", "Blood Panel", 15, 120.00},
		{"IMG-XRAY", "X-Ray", 20, 250.00},
		{"VACC-STD", "Standard Vaccination", 10, 80.00},
		{"PROC-MINOR", "Minor Procedure", 60, 500.00},
	}
}

// Loader writes the seed rows.
type Loader struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewLoader(pool *pgxpool.Pool, logger zerolog.Logger) *Loader {
	return &Loader{pool: pool, logger: logger}
}

// Load inserts all seed rows into the given schema in a single transaction
// and reports how many each entity gained. Re-running against already seeded
// data returns zeros.
func (l *Loader) Load(ctx context.Context, schema string) (*Result, error) {
	if !db.ValidSchemaName(schema) {
		return nil, fmt.Errorf("invalid schema name: %s", schema)
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL search_path TO %s, public", schema)); err != nil {
		return nil, fmt.Errorf("set search_path: %w", err)
	}

	res := &Result{}

	if res.Users, err = l.loadUsers(ctx, tx); err != nil {
		return nil, err
	}
	if res.Specialties, err = l.loadSpecialties(ctx, tx); err != nil {
		return nil, err
	}
	if res.Doctors, err = l.loadDoctors(ctx, tx); err != nil {
		return nil, err
	}
	if res.Services, err = l.loadServices(ctx, tx); err != nil {
		return nil, err
	}
	if res.Rooms, err = l.loadRooms(ctx, tx); err != nil {
		return nil, err
	}
	if res.Patients, err = l.loadDemoPatient(ctx, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit seed tx: %w", err)
	}

	l.logger.Info().
		Int("users", res.Users).
		Int("specialties", res.Specialties).
		Int("doctors", res.Doctors).
		Int("services", res.Services).
		Int("rooms", res.Rooms).
		Int("patients", res.Patients).
		Str("schema", schema).
		Msg("seed complete")
	return res, nil
}

func (l *Loader) loadUsers(ctx context.Context, tx pgx.Tx) (int, error) {
	count := 0
	for _, u := range seedUsers() {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return count, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO users (username, password_hash, full_name, role, email)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (username) DO NOTHING`,
			u.Username, string(hash), u.FullName, u.Role, u.Email)
		if err != nil {
			return count, fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		count += int(tag.RowsAffected())
	}
	return count, nil
}

func (l *Loader) loadSpecialties(ctx context.Context, tx pgx.Tx) (int, error) {
	count := 0
	for _, name := range seedSpecialties() {
		tag, err := tx.Exec(ctx, `
			INSERT INTO specialties (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			return count, fmt.Errorf("seed specialty %s: %w", name, err)
		}
		count += int(tag.RowsAffected())
	}
	return count, nil
}

func (l *Loader) loadDoctors(ctx context.Context, tx pgx.Tx) (int, error) {
	count := 0
	for _, d := range seedDoctors() {
		var userID *int64
		if d.Username != "" {
			var id int64
			err := tx.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, d.Username).Scan(&id)
			if err != nil && err != pgx.ErrNoRows {
				return count, fmt.Errorf("lookup user %s: %w", d.Username, err)
			}
			if err == nil {
				userID = &id
			}
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO doctors (user_id, license_number, first_name, last_name)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (license_number) DO NOTHING`,
			userID, d.License, d.FirstName, d.LastName)
		if err != nil {
			return count, fmt.Errorf("seed doctor %s: %w", d.License, err)
		}
		count += int(tag.RowsAffected())

		for _, spName := range d.Specialties {
			if _, err := tx.Exec(ctx, `
				INSERT INTO doctor_specialties (doctor_id, specialty_id)
				SELECT d.id, s.id FROM doctors d, specialties s
				WHERE d.license_number = $1 AND s.name = $2
				ON CONFLICT DO NOTHING`, d.License, spName); err != nil {
				return count, fmt.Errorf("link doctor %s to %s: %w", d.License, spName, err)
			}
		}
	}
	return count, nil
}

func (l *Loader) loadServices(ctx context.Context, tx pgx.Tx) (int, error) {
	count := 0
	for _, s := range seedServices() {
		tag, err := tx.Exec(ctx, `
			INSERT INTO services (code, name, duration_minutes, price)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (code) DO NOTHING`,
			s.Code, s.Name, s.DurationMinutes, s.Price)
		if err != nil {
			return count, fmt.Errorf("seed service %s: %w", s.Code, err)
		}
		count += int(tag.RowsAffected())
	}
	return count, nil
}

func (l *Loader) loadRooms(ctx context.Context, tx pgx.Tx) (int, error) {
	rooms := []struct {
		Code     string
		Name     string
		Capacity int
	}{
		{"RM-101", "Consultation Room 1", 2},
		{"RM-102", "Consultation Room 2", 2},
	}
	count := 0
	for _, room := range rooms {
		tag, err := tx.Exec(ctx, `
			INSERT INTO clinic_rooms (code, name, capacity)
			VALUES ($1,$2,$3)
			ON CONFLICT (code) DO NOTHING`, room.Code, room.Name, room.Capacity)
		if err != nil {
			return count, fmt.Errorf("seed room %s: %w", room.Code, err)
		}
		count += int(tag.RowsAffected())
	}
	return count, nil
}

func (l *Loader) loadDemoPatient(ctx context.Context, tx pgx.Tx) (int, error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO patients (national_id, first_name, last_name, gender, date_of_birth, phone)
		VALUES ('GHA-000000001', 'Amina', 'Okello', 'female', '1990-04-12', '+233200000001')
		ON CONFLICT (national_id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("seed demo patient: %w", err)
	}
	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, `
			INSERT INTO patient_addresses (patient_id, address_type, line1, city, country)
			SELECT id, 'home', '12 Harbour Road', 'Accra', 'Ghana'
			FROM patients WHERE national_id = 'GHA-000000001'`); err != nil {
			return 0, fmt.Errorf("seed demo address: %w", err)
		}
	}
	return int(tag.RowsAffected()), nil
}
