package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// SearchByName matches against last and first name (prefix, case-insensitive),
	// served by the patients_name_idx index.
	SearchByName(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error)
	// Addresses
	AddAddress(ctx context.Context, a *Address) error
	GetAddresses(ctx context.Context, patientID int64) ([]*Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}
