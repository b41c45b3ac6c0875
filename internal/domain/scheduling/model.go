package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Statuses returns every permitted appointment status.
func Statuses() []Status {
	return []Status{
		StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow,
	}
}

func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Appointment maps to the appointments table. The UUID is the stable external
// reference; the numeric id never leaves the database layer.
type Appointment struct {
	ID             int64     `db:"id" json:"-"`
	UUID           uuid.UUID `db:"appointment_uuid" json:"uuid"`
	PatientID      int64     `db:"patient_id" json:"patient_id"`
	DoctorID       *int64    `db:"doctor_id" json:"doctor_id,omitempty"`
	RoomID         *int64    `db:"room_id" json:"room_id,omitempty"`
	ScheduledStart time.Time `db:"scheduled_start" json:"scheduled_start"`
	ScheduledEnd   time.Time `db:"scheduled_end" json:"scheduled_end"`
	Status         Status    `db:"status" json:"status"`
	Reason         *string   `db:"reason" json:"reason,omitempty"`
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	CreatedBy      *int64    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TimeRangeValid reports whether the end is strictly after the start, the
// same rule the appointments_time_range_check constraint enforces.
func (a *Appointment) TimeRangeValid() bool {
	return a.ScheduledEnd.After(a.ScheduledStart)
}

// AppointmentService links a booked appointment to a catalog service.
// ServicePrice is a snapshot of the catalog price at booking time so later
// catalog edits never change what an existing visit bills for.
type AppointmentService struct {
	AppointmentID int64   `db:"appointment_id" json:"appointment_id"`
	ServiceID     int64   `db:"service_id" json:"service_id"`
	Quantity      int     `db:"quantity" json:"quantity"`
	ServicePrice  float64 `db:"service_price" json:"service_price"`
}
