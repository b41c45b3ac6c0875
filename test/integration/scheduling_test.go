package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbase/clinicbase/internal/domain/scheduling"
	"github.com/clinicbase/clinicbase/pkg/pagination"
)

func TestAppointmentLifecycle(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("appt")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	p := createTestPatient(t, ctx, schema, "Booked", "Patient")
	doc := createTestDoctor(t, ctx, schema, "MD-APPT")
	repo := scheduling.NewRepoPG(globalDB.Pool)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	var appt *scheduling.Appointment

	t.Run("Create", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			a := &scheduling.Appointment{
				PatientID:      p.ID,
				DoctorID:       &doc.ID,
				ScheduledStart: start,
				ScheduledEnd:   start.Add(30 * time.Minute),
				Reason:         ptrStr("Annual checkup"),
			}
			if err := repo.Create(ctx, a); err != nil {
				return err
			}
			appt = a
			return nil
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if appt.UUID == uuid.Nil {
			t.Error("expected generated appointment uuid")
		}
		if appt.Status != scheduling.StatusScheduled {
			t.Errorf("status = %q, want scheduled", appt.Status)
		}
	})

	t.Run("GetByUUID", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			got, err := repo.GetByUUID(ctx, appt.UUID)
			if err != nil {
				return err
			}
			if got.ID != appt.ID {
				t.Errorf("GetByUUID id = %d, want %d", got.ID, appt.ID)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("get by uuid: %v", err)
		}
	})

	t.Run("StatusProgression", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			for _, status := range []scheduling.Status{
				scheduling.StatusConfirmed,
				scheduling.StatusCheckedIn,
				scheduling.StatusInProgress,
				scheduling.StatusCompleted,
			} {
				if err := repo.UpdateStatus(ctx, appt.ID, status); err != nil {
					return err
				}
			}
			got, err := repo.GetByID(ctx, appt.ID)
			if err != nil {
				return err
			}
			if got.Status != scheduling.StatusCompleted {
				t.Errorf("status = %q, want completed", got.Status)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("status progression: %v", err)
		}
	})

	t.Run("InvalidStatusRejected", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			return repo.UpdateStatus(ctx, appt.ID, scheduling.Status("postponed"))
		})
		if got := pgErrCode(err); got != pgCheckViolation {
			t.Errorf("invalid status: got error %v (code %q), want check violation", err, got)
		}
	})

	t.Run("ListByDoctor", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
			appts, err := repo.ListByDoctor(ctx, doc.ID, day, day.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			if len(appts) != 1 {
				t.Errorf("len(appointments) = %d, want 1", len(appts))
			}

			appts, err = repo.ListByDoctor(ctx, doc.ID, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
			if err != nil {
				return err
			}
			if len(appts) != 0 {
				t.Errorf("len(appointments) next day = %d, want 0", len(appts))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("list by doctor: %v", err)
		}
	})

	t.Run("ListByPatient", func(t *testing.T) {
		createTestAppointment(t, ctx, schema, p.ID, &doc.ID)
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			params := pagination.New(1, 0)
			appts, total, err := repo.ListByPatient(ctx, p.ID, params.Limit, params.Offset)
			if err != nil {
				return err
			}
			if total != 2 {
				t.Errorf("total = %d, want 2", total)
			}
			if len(appts) != 1 {
				t.Errorf("len(page) = %d, want 1", len(appts))
			}
			if !params.HasNext(total) {
				t.Error("HasNext = false with a second page remaining")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("list by patient: %v", err)
		}
	})

	t.Run("ForeignKeyViolation", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			return repo.Create(ctx, &scheduling.Appointment{
				PatientID:      999999,
				ScheduledStart: start,
				ScheduledEnd:   start.Add(time.Hour),
			})
		})
		if got := pgErrCode(err); got != pgFKViolation {
			t.Errorf("missing patient: got error %v (code %q), want FK violation", err, got)
		}
	})
}
