package directory

import "context"

type SpecialtyRepository interface {
	Create(ctx context.Context, s *Specialty) error
	GetByID(ctx context.Context, id int64) (*Specialty, error)
	GetByName(ctx context.Context, name string) (*Specialty, error)
	List(ctx context.Context) ([]*Specialty, error)
	Delete(ctx context.Context, id int64) error
}

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	GetByLicense(ctx context.Context, licenseNumber string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id int64) error
	// SearchByName matches against last and first name (prefix, case-insensitive),
	// served by the doctors_name_idx index.
	SearchByName(ctx context.Context, name string, limit, offset int) ([]*Doctor, int, error)
	// Specialty junction
	AddSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	RemoveSpecialty(ctx context.Context, doctorID, specialtyID int64) error
	ListSpecialties(ctx context.Context, doctorID int64) ([]*Specialty, error)
	ListBySpecialty(ctx context.Context, specialtyID int64) ([]*Doctor, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *ClinicRoom) error
	GetByID(ctx context.Context, id int64) (*ClinicRoom, error)
	GetByCode(ctx context.Context, code string) (*ClinicRoom, error)
	List(ctx context.Context) ([]*ClinicRoom, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id int64) (*Service, error)
	GetByCode(ctx context.Context, code string) (*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
}
