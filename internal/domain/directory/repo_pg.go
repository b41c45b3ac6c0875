package directory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicbase/clinicbase/internal/platform/db"
	"github.com/clinicbase/clinicbase/pkg/pagination"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// =========== Specialty Repository ===========

type specialtyRepoPG struct{ pool *pgxpool.Pool }

func NewSpecialtyRepoPG(pool *pgxpool.Pool) SpecialtyRepository { return &specialtyRepoPG{pool: pool} }

const specialtyCols = `id, name, description`

func scanSpecialty(row pgx.Row) (*Specialty, error) {
	var s Specialty
	err := row.Scan(&s.ID, &s.Name, &s.Description)
	return &s, err
}

func (r *specialtyRepoPG) Create(ctx context.Context, s *Specialty) error {
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO specialties (name, description) VALUES ($1,$2) RETURNING id`,
		s.Name, s.Description).Scan(&s.ID)
}

func (r *specialtyRepoPG) GetByID(ctx context.Context, id int64) (*Specialty, error) {
	return scanSpecialty(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+specialtyCols+` FROM specialties WHERE id = $1`, id))
}

func (r *specialtyRepoPG) GetByName(ctx context.Context, name string) (*Specialty, error) {
	return scanSpecialty(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+specialtyCols+` FROM specialties WHERE name = $1`, name))
}

func (r *specialtyRepoPG) List(ctx context.Context) ([]*Specialty, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+specialtyCols+` FROM specialties ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Specialty
	for rows.Next() {
		s, err := scanSpecialty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *specialtyRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	return err
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

const doctorCols = `id, user_id, license_number, first_name, last_name, phone, email,
	created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.LicenseNumber, &d.FirstName, &d.LastName, &d.Phone, &d.Email,
		&d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO doctors (user_id, license_number, first_name, last_name, phone, email)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		d.UserID, d.LicenseNumber, d.FirstName, d.LastName, d.Phone, d.Email).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return scanDoctor(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByLicense(ctx context.Context, licenseNumber string) (*Doctor, error) {
	return scanDoctor(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE license_number = $1`, licenseNumber))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE doctors SET user_id=$2, license_number=$3, first_name=$4, last_name=$5,
			phone=$6, email=$7, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.UserID, d.LicenseNumber, d.FirstName, d.LastName, d.Phone, d.Email)
	return err
}

func (r *doctorRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	return err
}

func (r *doctorRepoPG) SearchByName(ctx context.Context, name string, limit, offset int) ([]*Doctor, int, error) {
	page := pagination.New(limit, offset)
	pattern := name + "%"
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM doctors WHERE last_name ILIKE $1 OR first_name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+doctorCols+` FROM doctors
		WHERE last_name ILIKE $1 OR first_name ILIKE $1
		ORDER BY last_name, first_name LIMIT $2 OFFSET $3`, pattern, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

func (r *doctorRepoPG) AddSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO doctor_specialties (doctor_id, specialty_id) VALUES ($1,$2)`,
		doctorID, specialtyID)
	return err
}

func (r *doctorRepoPG) RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM doctor_specialties WHERE doctor_id = $1 AND specialty_id = $2`,
		doctorID, specialtyID)
	return err
}

func (r *doctorRepoPG) ListSpecialties(ctx context.Context, doctorID int64) ([]*Specialty, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT s.id, s.name, s.description
		FROM specialties s
		JOIN doctor_specialties ds ON ds.specialty_id = s.id
		WHERE ds.doctor_id = $1
		ORDER BY s.name`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Specialty
	for rows.Next() {
		s, err := scanSpecialty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *doctorRepoPG) ListBySpecialty(ctx context.Context, specialtyID int64) ([]*Doctor, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT d.id, d.user_id, d.license_number, d.first_name, d.last_name, d.phone, d.email,
			d.created_at, d.updated_at
		FROM doctors d
		JOIN doctor_specialties ds ON ds.doctor_id = d.id
		WHERE ds.specialty_id = $1
		ORDER BY d.last_name, d.first_name`, specialtyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, nil
}

// =========== Room Repository ===========

type roomRepoPG struct{ pool *pgxpool.Pool }

func NewRoomRepoPG(pool *pgxpool.Pool) RoomRepository { return &roomRepoPG{pool: pool} }

const roomCols = `id, code, name, capacity`

func scanRoom(row pgx.Row) (*ClinicRoom, error) {
	var room ClinicRoom
	err := row.Scan(&room.ID, &room.Code, &room.Name, &room.Capacity)
	return &room, err
}

func (r *roomRepoPG) Create(ctx context.Context, room *ClinicRoom) error {
	if room.Capacity == 0 {
		room.Capacity = 1
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO clinic_rooms (code, name, capacity) VALUES ($1,$2,$3) RETURNING id`,
		room.Code, room.Name, room.Capacity).Scan(&room.ID)
}

func (r *roomRepoPG) GetByID(ctx context.Context, id int64) (*ClinicRoom, error) {
	return scanRoom(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+roomCols+` FROM clinic_rooms WHERE id = $1`, id))
}

func (r *roomRepoPG) GetByCode(ctx context.Context, code string) (*ClinicRoom, error) {
	return scanRoom(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+roomCols+` FROM clinic_rooms WHERE code = $1`, code))
}

func (r *roomRepoPG) List(ctx context.Context) ([]*ClinicRoom, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+roomCols+` FROM clinic_rooms ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ClinicRoom
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, room)
	}
	return items, nil
}

func (r *roomRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM clinic_rooms WHERE id = $1`, id)
	return err
}

// =========== Service Repository ===========

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository { return &serviceRepoPG{pool: pool} }

const serviceCols = `id, code, name, duration_minutes, price, active`

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.DurationMinutes, &s.Price, &s.Active)
	return &s, err
}

func (r *serviceRepoPG) Create(ctx context.Context, s *Service) error {
	if s.DurationMinutes == 0 {
		s.DurationMinutes = 30
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO services (code, name, duration_minutes, price, active)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		s.Code, s.Name, s.DurationMinutes, s.Price, s.Active).Scan(&s.ID)
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id int64) (*Service, error) {
	return scanService(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+serviceCols+` FROM services WHERE id = $1`, id))
}

func (r *serviceRepoPG) GetByCode(ctx context.Context, code string) (*Service, error) {
	return scanService(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+serviceCols+` FROM services WHERE code = $1`, code))
}

func (r *serviceRepoPG) Update(ctx context.Context, s *Service) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE services SET code=$2, name=$3, duration_minutes=$4, price=$5, active=$6
		WHERE id = $1`,
		s.ID, s.Code, s.Name, s.DurationMinutes, s.Price, s.Active)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context, activeOnly bool) ([]*Service, error) {
	query := `SELECT ` + serviceCols + ` FROM services ORDER BY code`
	if activeOnly {
		query = `SELECT ` + serviceCols + ` FROM services WHERE active ORDER BY code`
	}
	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}
