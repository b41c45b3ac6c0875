package clinical

import "time"

// MedicalRecord maps to the medical_records table. The appointment link is
// optional so walk-in notes can be recorded without a booking, and it
// survives appointment deletion as a detached record.
type MedicalRecord struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	AppointmentID *int64    `db:"appointment_id" json:"appointment_id,omitempty"`
	RecordedBy    *int64    `db:"recorded_by" json:"recorded_by,omitempty"`
	HeightCm      *float64  `db:"height_cm" json:"height_cm,omitempty"`
	WeightKg      *float64  `db:"weight_kg" json:"weight_kg,omitempty"`
	TemperatureC  *float64  `db:"temperature_c" json:"temperature_c,omitempty"`
	PulseBpm      *int      `db:"pulse_bpm" json:"pulse_bpm,omitempty"`
	SystolicBp    *int      `db:"systolic_bp" json:"systolic_bp,omitempty"`
	DiastolicBp   *int      `db:"diastolic_bp" json:"diastolic_bp,omitempty"`
	Diagnosis     *string   `db:"diagnosis" json:"diagnosis,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// BMI returns the body mass index, or nil when height or weight is missing.
func (m *MedicalRecord) BMI() *float64 {
	if m.HeightCm == nil || m.WeightKg == nil || *m.HeightCm <= 0 {
		return nil
	}
	h := *m.HeightCm / 100
	bmi := *m.WeightKg / (h * h)
	return &bmi
}

// Prescription maps to the prescriptions table.
type Prescription struct {
	ID              int64     `db:"id" json:"id"`
	MedicalRecordID int64     `db:"medical_record_id" json:"medical_record_id"`
	PrescribedBy    *int64    `db:"prescribed_by" json:"prescribed_by,omitempty"`
	PrescribedOn    time.Time `db:"prescribed_on" json:"prescribed_on"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`

	// Items is populated by GetWithItems, not by the row scan.
	Items []*PrescriptionItem `db:"-" json:"items,omitempty"`
}

// PrescriptionItem maps to the prescription_items table. Only the medication
// name is required; dosage and frequency are free text the way a clinician
// would write them.
type PrescriptionItem struct {
	ID             int64   `db:"id" json:"id"`
	PrescriptionID int64   `db:"prescription_id" json:"prescription_id"`
	Medication     string  `db:"medication" json:"medication"`
	Dosage         *string `db:"dosage" json:"dosage,omitempty"`
	Frequency      *string `db:"frequency" json:"frequency,omitempty"`
	DurationDays   *int    `db:"duration_days" json:"duration_days,omitempty"`
	Instructions   *string `db:"instructions" json:"instructions,omitempty"`
}
