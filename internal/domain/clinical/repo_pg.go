package clinical

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

// =========== Medical Record Repository ===========

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository { return &recordRepoPG{pool: pool} }

const recordCols = `id, patient_id, appointment_id, recorded_by,
	height_cm, weight_kg, temperature_c, pulse_bpm, systolic_bp, diastolic_bp,
	diagnosis, notes, created_at, updated_at`

func scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var m MedicalRecord
	err := row.Scan(&m.ID, &m.PatientID, &m.AppointmentID, &m.RecordedBy,
		&m.HeightCm, &m.WeightKg, &m.TemperatureC, &m.PulseBpm, &m.SystolicBp, &m.DiastolicBp,
		&m.Diagnosis, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *recordRepoPG) Create(ctx context.Context, m *MedicalRecord) error {
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO medical_records (patient_id, appointment_id, recorded_by,
			height_cm, weight_kg, temperature_c, pulse_bpm, systolic_bp, diastolic_bp,
			diagnosis, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at`,
		m.PatientID, m.AppointmentID, m.RecordedBy,
		m.HeightCm, m.WeightKg, m.TemperatureC, m.PulseBpm, m.SystolicBp, m.DiastolicBp,
		m.Diagnosis, m.Notes).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *recordRepoPG) GetByID(ctx context.Context, id int64) (*MedicalRecord, error) {
	return scanRecord(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+recordCols+` FROM medical_records WHERE id = $1`, id))
}

func (r *recordRepoPG) Update(ctx context.Context, m *MedicalRecord) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE medical_records SET appointment_id=$2, recorded_by=$3,
			height_cm=$4, weight_kg=$5, temperature_c=$6, pulse_bpm=$7,
			systolic_bp=$8, diastolic_bp=$9, diagnosis=$10, notes=$11,
			updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.AppointmentID, m.RecordedBy,
		m.HeightCm, m.WeightKg, m.TemperatureC, m.PulseBpm,
		m.SystolicBp, m.DiastolicBp, m.Diagnosis, m.Notes)
	return err
}

func (r *recordRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	return err
}

func (r *recordRepoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*MedicalRecord, int, error) {
	page := pagination.New(limit, offset)
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM medical_records WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+recordCols+` FROM medical_records
		WHERE patient_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectRecords(rows)
	return items, total, err
}

func (r *recordRepoPG) ListByAppointment(ctx context.Context, appointmentID int64) ([]*MedicalRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+recordCols+` FROM medical_records
		WHERE appointment_id = $1 ORDER BY created_at`, appointmentID)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]*MedicalRecord, error) {
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// =========== Prescription Repository ===========

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

const prescriptionCols = `id, medical_record_id, prescribed_by, prescribed_on, notes, created_at`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.MedicalRecordID, &p.PrescribedBy, &p.PrescribedOn, &p.Notes, &p.CreatedAt)
	return &p, err
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	if p.PrescribedOn.IsZero() {
		return conn(ctx, r.pool).QueryRow(ctx, `
			INSERT INTO prescriptions (medical_record_id, prescribed_by, notes)
			VALUES ($1,$2,$3)
			RETURNING id, prescribed_on, created_at`,
			p.MedicalRecordID, p.PrescribedBy, p.Notes).
			Scan(&p.ID, &p.PrescribedOn, &p.CreatedAt)
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO prescriptions (medical_record_id, prescribed_by, prescribed_on, notes)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		p.MedicalRecordID, p.PrescribedBy, p.PrescribedOn, p.Notes).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id int64) (*Prescription, error) {
	return scanPrescription(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+prescriptionCols+` FROM prescriptions WHERE id = $1`, id))
}

func (r *prescriptionRepoPG) GetWithItems(ctx context.Context, id int64) (*Prescription, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items, err = r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	return err
}

func (r *prescriptionRepoPG) ListByRecord(ctx context.Context, medicalRecordID int64) ([]*Prescription, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+prescriptionCols+` FROM prescriptions
		WHERE medical_record_id = $1 ORDER BY prescribed_on DESC, id DESC`, medicalRecordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *prescriptionRepoPG) AddItem(ctx context.Context, item *PrescriptionItem) error {
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO prescription_items (prescription_id, medication, dosage, frequency,
			duration_days, instructions)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		item.PrescriptionID, item.Medication, item.Dosage, item.Frequency,
		item.DurationDays, item.Instructions).Scan(&item.ID)
}

func (r *prescriptionRepoPG) RemoveItem(ctx context.Context, itemID int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM prescription_items WHERE id = $1`, itemID)
	return err
}

func (r *prescriptionRepoPG) ListItems(ctx context.Context, prescriptionID int64) ([]*PrescriptionItem, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, prescription_id, medication, dosage, frequency, duration_days, instructions
		FROM prescription_items WHERE prescription_id = $1 ORDER BY id`, prescriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PrescriptionItem
	for rows.Next() {
		var it PrescriptionItem
		if err := rows.Scan(&it.ID, &it.PrescriptionID, &it.Medication, &it.Dosage,
			&it.Frequency, &it.DurationDays, &it.Instructions); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
