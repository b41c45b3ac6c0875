package integration

import (
	"context"
	"testing"

	"github.com/clinicbase/clinicbase/internal/domain/directory"
)

func TestDoctorSpecialtyJunction(t *testing.T) {
	ctx := context.Background()
	schema := uniqueSchema("junction")
	createSchema(t, ctx, schema)
	defer dropSchema(t, ctx, schema)

	docRepo := directory.NewDoctorRepoPG(globalDB.Pool)
	spRepo := directory.NewSpecialtyRepoPG(globalDB.Pool)

	doc := createTestDoctor(t, ctx, schema, "MD-JX")
	var cardiology, derm *directory.Specialty

	err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
		cardiology = &directory.Specialty{Name: "Cardiology"}
		if err := spRepo.Create(ctx, cardiology); err != nil {
			return err
		}
		derm = &directory.Specialty{Name: "Dermatology"}
		if err := spRepo.Create(ctx, derm); err != nil {
			return err
		}

		if err := docRepo.AddSpecialty(ctx, doc.ID, cardiology.ID); err != nil {
			return err
		}
		if err := docRepo.AddSpecialty(ctx, doc.ID, derm.ID); err != nil {
			return err
		}

		specs, err := docRepo.ListSpecialties(ctx, doc.ID)
		if err != nil {
			return err
		}
		if len(specs) != 2 {
			t.Fatalf("len(specialties) = %d, want 2", len(specs))
		}

		doctors, err := docRepo.ListBySpecialty(ctx, cardiology.ID)
		if err != nil {
			return err
		}
		if len(doctors) != 1 || doctors[0].ID != doc.ID {
			t.Errorf("ListBySpecialty returned %d doctors", len(doctors))
		}

		if err := docRepo.RemoveSpecialty(ctx, doc.ID, derm.ID); err != nil {
			return err
		}
		specs, err = docRepo.ListSpecialties(ctx, doc.ID)
		if err != nil {
			return err
		}
		if len(specs) != 1 {
			t.Errorf("len(specialties) after remove = %d, want 1", len(specs))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("junction flow: %v", err)
	}

	t.Run("DuplicateLinkRejected", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			return docRepo.AddSpecialty(ctx, doc.ID, cardiology.ID)
		})
		if got := pgErrCode(err); got != pgUniqueViolation {
			t.Errorf("duplicate link: got error %v (code %q), want unique violation", err, got)
		}
	})

	t.Run("SpecialtyDeleteCascadesLinks", func(t *testing.T) {
		err := withSchemaConn(ctx, schema, func(ctx context.Context) error {
			if err := spRepo.Delete(ctx, cardiology.ID); err != nil {
				return err
			}
			specs, err := docRepo.ListSpecialties(ctx, doc.ID)
			if err != nil {
				return err
			}
			if len(specs) != 0 {
				t.Errorf("len(specialties) after specialty delete = %d, want 0", len(specs))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("specialty delete: %v", err)
		}
	})
}
