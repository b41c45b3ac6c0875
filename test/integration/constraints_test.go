package integration

import (
	"context"
	"testing"
	"time"

	"github.com/clinicbase/clinicbase/internal/domain/billing"
	"github.com/clinicbase/clinicbase/internal/domain/clinical"
	"github.com/clinicbase/clinicbase/internal/domain/directory"
	"github.com/clinicbase/clinicbase/internal/domain/patient"
	"github.com/clinicbase/clinicbase/internal/domain/scheduling"
	"github.com/clinicbase/clinicbase/internal/domain/staff"
	"github.com/clinicbase/clinicbase/internal/platform/db"
)

func TestAppointmentTimeRangeConstraint(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("timerange")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	p := createTestPatient(t, ctx, schema, "Time", "Range")
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("InvertedRangeRejected", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			repo := scheduling.NewRepoPG(globalDB.Pool)
			return repo.Create(ctx, &scheduling.Appointment{
				PatientID:      p.ID,
				ScheduledStart: start,
				ScheduledEnd:   start.Add(-30 * time.Minute),
			})
		})
		if got := pgErrCode(err); got != pgCheckViolation {
			t.Fatalf("inverted range: got error %v (code %q), want check violation", err, got)
		}
	})

	t.Run("EqualBoundsRejected", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			repo := scheduling.NewRepoPG(globalDB.Pool)
			return repo.Create(ctx, &scheduling.Appointment{
				PatientID:      p.ID,
				ScheduledStart: start,
				ScheduledEnd:   start,
			})
		})
		if got := pgErrCode(err); got != pgCheckViolation {
			t.Fatalf("equal bounds: got error %v (code %q), want check violation", err, got)
		}
	})

	t.Run("ValidRangeAccepted", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			repo := scheduling.NewRepoPG(globalDB.Pool)
			return repo.Create(ctx, &scheduling.Appointment{
				PatientID:      p.ID,
				ScheduledStart: start,
				ScheduledEnd:   start.Add(30 * time.Minute),
			})
		})
		if err != nil {
			t.Fatalf("valid range rejected: %v", err)
		}
	})
}

func TestUniquenessConstraints(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("uniq")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	createTestUser(t, ctx, schema, "admin", staff.RoleAdmin)
	createTestDoctor(t, ctx, schema, "MD-0001")
	createTestService(t, ctx, schema, "SRV-A", 100)

	err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
		repo := patient.NewRepoPG(globalDB.Pool)
		return repo.Create(ctx, &patient.Patient{
			NationalID: ptrStr("NID-001"), FirstName: "First", LastName: "Patient",
		})
	})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	duplicates := []struct {
		name string
		sql  string
	}{
		{"username", `INSERT INTO users (username, password_hash, full_name, role, email)
			VALUES ('admin', 'x', 'Dup', 'admin', 'other@test.local')`},
		{"email", `INSERT INTO users (username, password_hash, full_name, role, email)
			VALUES ('admin2', 'x', 'Dup', 'admin', 'admin@test.local')`},
		{"national_id", `INSERT INTO patients (national_id, first_name, last_name)
			VALUES ('NID-001', 'Dup', 'Patient')`},
		{"license_number", `INSERT INTO doctors (license_number, first_name, last_name)
			VALUES ('MD-0001', 'Dup', 'Doctor')`},
		{"room_code", `INSERT INTO clinic_rooms (code) VALUES ('RM-U1')`},
		{"service_code", `INSERT INTO services (code, name, price) VALUES ('SRV-A', 'Dup', 1)`},
		{"specialty_name", `INSERT INTO specialties (name) VALUES ('Cardiology')`},
	}

	// Prime the rows the raw duplicates collide with.
	if err := execInSchema(ctx, schema, `INSERT INTO clinic_rooms (code) VALUES ('RM-U1')`); err != nil {
		t.Fatalf("prime room: %v", err)
	}
	if err := execInSchema(ctx, schema, `INSERT INTO specialties (name) VALUES ('Cardiology')`); err != nil {
		t.Fatalf("prime specialty: %v", err)
	}

	for _, tt := range duplicates {
		t.Run(tt.name, func(t *testing.T) {
			err := execInSchema(ctx, schema, tt.sql)
			if got := pgErrCode(err); got != pgUniqueViolation {
				t.Errorf("duplicate %s: got error %v (code %q), want unique violation", tt.name, err, got)
			}
		})
	}

	t.Run("appointment_uuid", func(t *testing.T) {
		p2 := createTestPatient(t, ctx, schema, "Uuid", "Holder")
		appt := createTestAppointment(t, ctx, schema, p2.ID, nil)
		err := execInSchema(ctx, schema, `
			INSERT INTO appointments (appointment_uuid, patient_id, scheduled_start, scheduled_end)
			VALUES ($1, $2, NOW(), NOW() + interval '30 minutes')`, appt.UUID, p2.ID)
		if got := pgErrCode(err); got != pgUniqueViolation {
			t.Errorf("duplicate appointment uuid: got error %v (code %q), want unique violation", err, got)
		}
	})
}

func TestPatientDeleteCascade(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("cascade")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	p := createTestPatient(t, ctx, schema, "Cascade", "Target")
	svc := createTestService(t, ctx, schema, "SRV-C", 150)
	appt := createTestAppointment(t, ctx, schema, p.ID, nil)

	var recordID, prescriptionID, invoiceID int64
	err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
		patRepo := patient.NewRepoPG(globalDB.Pool)
		if err := patRepo.AddAddress(ctx, &patient.Address{
			PatientID: p.ID, Line1: "1 Test Street",
		}); err != nil {
			return err
		}

		schedRepo := scheduling.NewRepoPG(globalDB.Pool)
		if err := schedRepo.AddService(ctx, &scheduling.AppointmentService{
			AppointmentID: appt.ID, ServiceID: svc.ID, Quantity: 1, ServicePrice: svc.Price,
		}); err != nil {
			return err
		}

		recRepo := clinical.NewRecordRepoPG(globalDB.Pool)
		rec := &clinical.MedicalRecord{PatientID: p.ID, AppointmentID: &appt.ID}
		if err := recRepo.Create(ctx, rec); err != nil {
			return err
		}
		recordID = rec.ID

		rxRepo := clinical.NewPrescriptionRepoPG(globalDB.Pool)
		rx := &clinical.Prescription{MedicalRecordID: rec.ID}
		if err := rxRepo.Create(ctx, rx); err != nil {
			return err
		}
		prescriptionID = rx.ID
		if err := rxRepo.AddItem(ctx, &clinical.PrescriptionItem{
			PrescriptionID: rx.ID, Medication: "Amoxicillin",
		}); err != nil {
			return err
		}

		billRepo := billing.NewRepoPG(globalDB.Pool)
		inv := &billing.Invoice{PatientID: p.ID, AppointmentID: &appt.ID}
		if err := billRepo.CreateInvoice(ctx, inv); err != nil {
			return err
		}
		invoiceID = inv.ID
		if err := billRepo.AddItem(ctx, &billing.InvoiceItem{
			InvoiceID: inv.ID, Description: "Consult", Quantity: 1, UnitPrice: 150,
		}); err != nil {
			return err
		}
		if err := billRepo.RecordPayment(ctx, &billing.Payment{
			InvoiceID: inv.ID, Amount: 50, Method: billing.MethodCash,
		}); err != nil {
			return err
		}

		return patRepo.Delete(ctx, p.ID)
	})
	if err != nil {
		t.Fatalf("build and delete patient graph: %v", err)
	}

	children := []string{"patient_addresses", "appointments", "medical_records", "invoices"}
	for _, table := range children {
		var n int
		q := `SELECT COUNT(*) FROM ` + table + ` WHERE patient_id = $1`
		if err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			return db.ConnFromContext(ctx).QueryRow(ctx, q, p.ID).Scan(&n)
		}); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s: %d rows survived patient delete, want 0", table, n)
		}
	}

	// Grandchildren are gone too.
	grandchildren := []struct {
		name string
		sql  string
		arg  int64
	}{
		{"appointment_services", `SELECT COUNT(*) FROM appointment_services WHERE appointment_id = $1`, appt.ID},
		{"prescriptions", `SELECT COUNT(*) FROM prescriptions WHERE medical_record_id = $1`, recordID},
		{"prescription_items", `SELECT COUNT(*) FROM prescription_items WHERE prescription_id = $1`, prescriptionID},
		{"invoice_items", `SELECT COUNT(*) FROM invoice_items WHERE invoice_id = $1`, invoiceID},
		{"payments", `SELECT COUNT(*) FROM payments WHERE invoice_id = $1`, invoiceID},
	}
	for _, g := range grandchildren {
		var n int
		if err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			return db.ConnFromContext(ctx).QueryRow(ctx, g.sql, g.arg).Scan(&n)
		}); err != nil {
			t.Fatalf("count %s: %v", g.name, err)
		}
		if n != 0 {
			t.Errorf("%s: %d rows survived cascade, want 0", g.name, n)
		}
	}
}

func TestUserDeleteSetsReferencesNull(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("setnull")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	u := createTestUser(t, ctx, schema, "leaving", staff.RoleDoctor)
	p := createTestPatient(t, ctx, schema, "Set", "Null")

	var doctorID, apptID, recordID, rxID, invoiceID, paymentID int64
	err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
		conn := db.ConnFromContext(ctx)
		if err := conn.QueryRow(ctx, `
			INSERT INTO doctors (user_id, license_number, first_name, last_name)
			VALUES ($1, 'MD-NULL', 'Set', 'Null') RETURNING id`, u.ID).Scan(&doctorID); err != nil {
			return err
		}
		if err := conn.QueryRow(ctx, `
			INSERT INTO appointments (appointment_uuid, patient_id, created_by, scheduled_start, scheduled_end)
			VALUES (gen_random_uuid(), $1, $2, NOW(), NOW() + interval '30 minutes')
			RETURNING id`, p.ID, u.ID).Scan(&apptID); err != nil {
			return err
		}
		if err := conn.QueryRow(ctx, `
			INSERT INTO medical_records (patient_id, recorded_by) VALUES ($1, $2)
			RETURNING id`, p.ID, u.ID).Scan(&recordID); err != nil {
			return err
		}
		if err := conn.QueryRow(ctx, `
			INSERT INTO prescriptions (medical_record_id, prescribed_by) VALUES ($1, $2)
			RETURNING id`, recordID, u.ID).Scan(&rxID); err != nil {
			return err
		}
		if err := conn.QueryRow(ctx, `
			INSERT INTO invoices (patient_id, created_by) VALUES ($1, $2)
			RETURNING id`, p.ID, u.ID).Scan(&invoiceID); err != nil {
			return err
		}
		if err := conn.QueryRow(ctx, `
			INSERT INTO payments (invoice_id, amount, method, received_by)
			VALUES ($1, 10, 'cash', $2) RETURNING id`, invoiceID, u.ID).Scan(&paymentID); err != nil {
			return err
		}

		repo := staff.NewUserRepoPG(globalDB.Pool)
		return repo.Delete(ctx, u.ID)
	})
	if err != nil {
		t.Fatalf("build references and delete user: %v", err)
	}

	refs := []struct {
		name string
		sql  string
		id   int64
	}{
		{"doctors.user_id", `SELECT user_id IS NULL FROM doctors WHERE id = $1`, doctorID},
		{"appointments.created_by", `SELECT created_by IS NULL FROM appointments WHERE id = $1`, apptID},
		{"medical_records.recorded_by", `SELECT recorded_by IS NULL FROM medical_records WHERE id = $1`, recordID},
		{"prescriptions.prescribed_by", `SELECT prescribed_by IS NULL FROM prescriptions WHERE id = $1`, rxID},
		{"invoices.created_by", `SELECT created_by IS NULL FROM invoices WHERE id = $1`, invoiceID},
		{"payments.received_by", `SELECT received_by IS NULL FROM payments WHERE id = $1`, paymentID},
	}
	for _, ref := range refs {
		var nulled bool
		if err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			return db.ConnFromContext(ctx).QueryRow(ctx, ref.sql, ref.id).Scan(&nulled)
		}); err != nil {
			t.Fatalf("check %s: row missing after user delete: %v", ref.name, err)
		}
		if !nulled {
			t.Errorf("%s not nulled after user delete", ref.name)
		}
	}
}

func TestServiceDeleteRestrictedByBookings(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("restrict")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	p := createTestPatient(t, ctx, schema, "Restrict", "Case")
	svc := createTestService(t, ctx, schema, "SRV-R", 200)
	appt := createTestAppointment(t, ctx, schema, p.ID, nil)

	err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
		schedRepo := scheduling.NewRepoPG(globalDB.Pool)
		if err := schedRepo.AddService(ctx, &scheduling.AppointmentService{
			AppointmentID: appt.ID, ServiceID: svc.ID, ServicePrice: svc.Price,
		}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("book service: %v", err)
	}

	delErr := execInSchema(ctx, schema, `DELETE FROM services WHERE id = $1`, svc.ID)
	if got := pgErrCode(delErr); got != pgFKViolation {
		t.Fatalf("delete booked service: got error %v (code %q), want FK violation", delErr, got)
	}

	// Unbooking releases the restriction.
	err = withSchemaConn(ctx, schema, func(ctx context.Context) error {
		schedRepo := scheduling.NewRepoPG(globalDB.Pool)
		if err := schedRepo.RemoveService(ctx, appt.ID, svc.ID); err != nil {
			return err
		}
		return directory.NewServiceRepoPG(globalDB.Pool).Delete(ctx, svc.ID)
	})
	if err != nil {
		t.Fatalf("delete unbooked service: %v", err)
	}
}

func TestInvoiceLineTotalGenerated(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("linetotal")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	p := createTestPatient(t, ctx, schema, "Line", "Total")

	err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
		repo := billing.NewRepoPG(globalDB.Pool)
		inv := &billing.Invoice{PatientID: p.ID}
		if err := repo.CreateInvoice(ctx, inv); err != nil {
			return err
		}

		item := &billing.InvoiceItem{
			InvoiceID: inv.ID, Description: "Panel", Quantity: 3, UnitPrice: 40.50,
		}
		if err := repo.AddItem(ctx, item); err != nil {
			return err
		}
		if item.LineTotal != 121.50 {
			t.Errorf("line_total = %f, want 121.50", item.LineTotal)
		}

		total, err := repo.RecalculateTotal(ctx, inv.ID)
		if err != nil {
			return err
		}
		if total != 121.50 {
			t.Errorf("recalculated total = %f, want 121.50", total)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("line total flow: %v", err)
	}
}

func TestServicePriceSnapshotDecoupled(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("snapshot")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	p := createTestPatient(t, ctx, schema, "Snap", "Shot")
	svc := createTestService(t, ctx, schema, "SRV-S", 100.00)
	appt := createTestAppointment(t, ctx, schema, p.ID, nil)

	err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
		schedRepo := scheduling.NewRepoPG(globalDB.Pool)
		if err := schedRepo.AddService(ctx, &scheduling.AppointmentService{
			AppointmentID: appt.ID, ServiceID: svc.ID, ServicePrice: svc.Price,
		}); err != nil {
			return err
		}

		// Reprice the live catalog entry.
		if _, err := db.ConnFromContext(ctx).Exec(ctx,
			`UPDATE services SET price = 999.00 WHERE id = $1`, svc.ID); err != nil {
			return err
		}

		items, err := schedRepo.ListServices(ctx, appt.ID)
		if err != nil {
			return err
		}
		if len(items) != 1 {
			t.Fatalf("len(services) = %d, want 1", len(items))
		}
		if items[0].ServicePrice != 100.00 {
			t.Errorf("snapshot price = %f, want 100.00 after catalog reprice", items[0].ServicePrice)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("price snapshot flow: %v", err)
	}
}
