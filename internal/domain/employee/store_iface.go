package employee

import "context"

type StoreAPI interface {
	CreateEmployeeFanOut(ctx context.Context, e *Employee, b *Birthday, w *WorkAnniversary, p *ProfileCard) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	EmployeeIDExists(ctx context.Context, employeeID string) (bool, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	UpdateCredentials(ctx context.Context, id, employeeID, passwordHash string) (*Employee, error)
	UpdateEmployeeDetails(ctx context.Context, e *Employee) error
	DeleteEmployeeCascade(ctx context.Context, id string) error
	SetContactDetails(ctx context.Context, id string, details *ContactDetails) error
	SetProfilePicture(ctx context.Context, id string, url *string, upsertProjections bool, branch string) error
	ListBirthdays(ctx context.Context) ([]Birthday, error)
	ListWorkAnniversaries(ctx context.Context) ([]WorkAnniversary, error)
	ReconcileProjections(ctx context.Context, defaultBranch string) (int, error)
}
