package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID int64, from, to time.Time) ([]*Appointment, error)
	ListByTimeRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Appointment, int, error)
	// Service line items
	AddService(ctx context.Context, as *AppointmentService) error
	RemoveService(ctx context.Context, appointmentID, serviceID int64) error
	ListServices(ctx context.Context, appointmentID int64) ([]*AppointmentService, error)
}
