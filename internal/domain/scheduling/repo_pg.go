package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
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

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const appointmentCols = `id, appointment_uuid, patient_id, doctor_id, room_id,
	scheduled_start, scheduled_end, status, reason, notes, created_by, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UUID, &a.PatientID, &a.DoctorID, &a.RoomID,
		&a.ScheduledStart, &a.ScheduledEnd, &a.Status, &a.Reason, &a.Notes,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (appointment_uuid, patient_id, doctor_id, room_id,
			scheduled_start, scheduled_end, status, reason, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`,
		a.UUID, a.PatientID, a.DoctorID, a.RoomID,
		a.ScheduledStart, a.ScheduledEnd, a.Status, a.Reason, a.Notes, a.CreatedBy).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id))
}

func (r *repoPG) GetByUUID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE appointment_uuid = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET patient_id=$2, doctor_id=$3, room_id=$4,
			scheduled_start=$5, scheduled_end=$6, status=$7, reason=$8, notes=$9,
			updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.DoctorID, a.RoomID,
		a.ScheduledStart, a.ScheduledEnd, a.Status, a.Reason, a.Notes)
	return err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id int64, status Status) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	page := pagination.New(limit, offset)
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+appointmentCols+` FROM appointments
		WHERE patient_id = $1
		ORDER BY scheduled_start DESC LIMIT $2 OFFSET $3`, patientID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collect(rows)
	return items, total, err
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int64, from, to time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+appointmentCols+` FROM appointments
		WHERE doctor_id = $1 AND scheduled_start >= $2 AND scheduled_start < $3
		ORDER BY scheduled_start`, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repoPG) ListByTimeRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Appointment, int, error) {
	page := pagination.New(limit, offset)
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE scheduled_start >= $1 AND scheduled_start < $2`,
		from, to).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+appointmentCols+` FROM appointments
		WHERE scheduled_start >= $1 AND scheduled_start < $2
		ORDER BY scheduled_start LIMIT $3 OFFSET $4`, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collect(rows)
	return items, total, err
}

func collect(rows pgx.Rows) ([]*Appointment, error) {
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) AddService(ctx context.Context, as *AppointmentService) error {
	if as.Quantity == 0 {
		as.Quantity = 1
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment_services (appointment_id, service_id, quantity, service_price)
		VALUES ($1,$2,$3,$4)`,
		as.AppointmentID, as.ServiceID, as.Quantity, as.ServicePrice)
	return err
}

func (r *repoPG) RemoveService(ctx context.Context, appointmentID, serviceID int64) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM appointment_services WHERE appointment_id = $1 AND service_id = $2`,
		appointmentID, serviceID)
	return err
}

func (r *repoPG) ListServices(ctx context.Context, appointmentID int64) ([]*AppointmentService, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT appointment_id, service_id, quantity, service_price
		FROM appointment_services WHERE appointment_id = $1 ORDER BY service_id`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AppointmentService
	for rows.Next() {
		var as AppointmentService
		if err := rows.Scan(&as.AppointmentID, &as.ServiceID, &as.Quantity, &as.ServicePrice); err != nil {
			return nil, err
		}
		items = append(items, &as)
	}
	return items, rows.Err()
}
