package clinical

import "context"

type RecordRepository interface {
	Create(ctx context.Context, m *MedicalRecord) error
	GetByID(ctx context.Context, id int64) (*MedicalRecord, error)
	Update(ctx context.Context, m *MedicalRecord) error
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*MedicalRecord, int, error)
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*MedicalRecord, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id int64) (*Prescription, error)
	// GetWithItems loads the prescription and its line items in one call.
	GetWithItems(ctx context.Context, id int64) (*Prescription, error)
	Delete(ctx context.Context, id int64) error
	ListByRecord(ctx context.Context, medicalRecordID int64) ([]*Prescription, error)
	AddItem(ctx context.Context, item *PrescriptionItem) error
	RemoveItem(ctx context.Context, itemID int64) error
	ListItems(ctx context.Context, prescriptionID int64) ([]*PrescriptionItem, error)
}
