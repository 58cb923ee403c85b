package employee

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/blob"
	"hrms/internal/platform/jobs"
)

type pictureCall struct {
	id     string
	url    *string
	upsert bool
	branch string
}

type fakeStore struct {
	StoreAPI

	employees     map[string]*Employee
	birthdays     map[string]*Birthday
	anniversaries map[string]*WorkAnniversary
	profiles      map[string]*ProfileCard
	pictureCalls  []pictureCall
	detailsSaved  *Employee
	contactCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:     map[string]*Employee{},
		birthdays:     map[string]*Birthday{},
		anniversaries: map[string]*WorkAnniversary{},
		profiles:      map[string]*ProfileCard{},
	}
}

func (f *fakeStore) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	for _, emp := range f.employees {
		if emp.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateEmployeeFanOut(ctx context.Context, e *Employee, b *Birthday, w *WorkAnniversary, p *ProfileCard) error {
	f.employees[e.ID] = e
	f.birthdays[b.EmpDBID] = b
	f.anniversaries[w.EmpDBID] = w
	f.profiles[p.EmpDBID] = p
	return nil
}

func (f *fakeStore) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return emp, nil
}

func (f *fakeStore) GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeID == employeeID {
			return emp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) SetProfilePicture(ctx context.Context, id string, url *string, upsert bool, branch string) error {
	emp, ok := f.employees[id]
	if !ok {
		return ErrNotFound
	}
	f.pictureCalls = append(f.pictureCalls, pictureCall{id: id, url: url, upsert: upsert, branch: branch})
	if emp.ProfileDetails == nil {
		emp.ProfileDetails = &ProfileDetails{}
	}
	emp.ProfileDetails.ProfilePicture = url
	if b, ok := f.birthdays[id]; ok {
		b.ProfilePicture = url
	}
	if w, ok := f.anniversaries[id]; ok {
		w.ProfilePicture = url
	}
	return nil
}

func (f *fakeStore) UpdateEmployeeDetails(ctx context.Context, e *Employee) error {
	if _, ok := f.employees[e.ID]; !ok {
		return ErrNotFound
	}
	f.employees[e.ID] = e
	f.detailsSaved = e
	return nil
}

func (f *fakeStore) SetContactDetails(ctx context.Context, id string, details *ContactDetails) error {
	emp, ok := f.employees[id]
	if !ok {
		return ErrNotFound
	}
	f.contactCalls++
	emp.ContactDetails = details
	return nil
}

func (f *fakeStore) UpdateCredentials(ctx context.Context, id, employeeID, passwordHash string) (*Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	if employeeID != "" {
		emp.EmployeeID = employeeID
		if b, ok := f.birthdays[id]; ok {
			b.EmployeeID = employeeID
		}
		if w, ok := f.anniversaries[id]; ok {
			w.EmployeeID = employeeID
		}
		if p, ok := f.profiles[id]; ok {
			p.EmployeeID = employeeID
		}
	}
	if passwordHash != "" {
		emp.PasswordHash = passwordHash
	}
	return emp, nil
}

func (f *fakeStore) DeleteEmployeeCascade(ctx context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return ErrNotFound
	}
	delete(f.employees, id)
	delete(f.birthdays, id)
	delete(f.anniversaries, id)
	delete(f.profiles, id)
	return nil
}

func (f *fakeStore) ReconcileProjections(ctx context.Context, defaultBranch string) (int, error) {
	created := 0
	for _, emp := range f.employees {
		if _, ok := f.birthdays[emp.ID]; !ok {
			f.birthdays[emp.ID] = &Birthday{EmpDBID: emp.ID, EmployeeID: emp.EmployeeID, Name: emp.Name, Branch: defaultBranch}
			created++
		}
		if _, ok := f.anniversaries[emp.ID]; !ok {
			f.anniversaries[emp.ID] = &WorkAnniversary{EmpDBID: emp.ID, EmployeeID: emp.EmployeeID, Name: emp.Name, Branch: defaultBranch}
			created++
		}
		if _, ok := f.profiles[emp.ID]; !ok {
			f.profiles[emp.ID] = &ProfileCard{EmpDBID: emp.ID, EmployeeID: emp.EmployeeID}
			created++
		}
	}
	return created, nil
}

type fakeGateway struct {
	objects    map[string]string
	failDelete error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{objects: map[string]string{}}
}

func (g *fakeGateway) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	g.objects[key] = buf.String()
	return blob.BuildURL("http://localhost:8080/media", "hrms-media", key), nil
}

func (g *fakeGateway) Delete(ctx context.Context, key string) error {
	if g.failDelete != nil {
		return g.failDelete
	}
	if _, ok := g.objects[key]; !ok {
		return blob.ErrObjectNotFound
	}
	delete(g.objects, key)
	return nil
}

func (g *fakeGateway) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := g.objects[key]
	return ok, nil
}

func newTestService(store *fakeStore, blobs blob.Gateway) *Service {
	return NewService(store, blobs, "secret", time.Hour, "Pune")
}

func validInput() CreateEmployeeInput {
	return CreateEmployeeInput{
		Name:             "A",
		EmployeeID:       "E100",
		Password:         "pass123",
		Gender:           "male",
		FathersName:      "B",
		DateOfBirth:      NewDate(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
		ConfirmationDate: NewDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		JoiningDate:      NewDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		Department:       "IT",
		Designation:      "Dev",
	}
}

func TestRegisterFansOutAllProjections(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	result, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	emp := result.Employee
	if emp.ID == "" {
		t.Fatal("expected an internal id to be assigned")
	}
	if result.Birthday.EmpDBID != emp.ID || result.WorkAnniversary.EmpDBID != emp.ID || result.Profile.EmpDBID != emp.ID {
		t.Fatal("all projections must back-reference the new employee")
	}
	if result.Birthday.Branch != "Pune" || result.WorkAnniversary.Branch != "Pune" {
		t.Fatal("projections must carry the default branch")
	}
	if result.Profile.Employee != "A - E100" {
		t.Fatalf("unexpected profile label %q", result.Profile.Employee)
	}
	if len(store.birthdays) != 1 || len(store.anniversaries) != 1 || len(store.profiles) != 1 {
		t.Fatal("expected one row per projection in the store")
	}

	if emp.PasswordHash == "pass123" || emp.PasswordHash == "" {
		t.Fatal("password must be stored hashed, never in plaintext")
	}
	if err := auth.CheckPassword(emp.PasswordHash, "pass123"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmployeeID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), validInput()); !errors.Is(err, ErrDuplicateEmployeeID) {
		t.Fatalf("expected ErrDuplicateEmployeeID, got %v", err)
	}
	if len(store.employees) != 1 {
		t.Fatal("duplicate register must not create documents")
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	input := validInput()
	input.Name = ""
	input.Password = "abc"

	_, err := svc.Register(context.Background(), input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	fields := issueFields(err)
	joined := strings.Join(fields, ", ")
	if !strings.Contains(joined, "name") || !strings.Contains(joined, "password") {
		t.Fatalf("expected issues on name and password, got %s", joined)
	}
	if len(store.employees) != 0 {
		t.Fatal("invalid payload must not create documents")
	}
}

func TestLoginRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "E100", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.FullName != "A" || result.EmployeeID != "E100" || result.LoginUserID != created.Employee.ID {
		t.Fatalf("unexpected login result: %+v", result)
	}

	claims, err := auth.ParseToken("secret", result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != created.Employee.ID || claims.EmployeeID != "E100" {
		t.Fatalf("token claims mismatch: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "E100", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "E999", "pass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown employee, got %v", err)
	}
}

func TestUploadProfilePictureReplacesOldBlob(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := created.Employee.ID

	first, err := svc.UploadProfilePicture(context.Background(), id, "old.png", "image/png", strings.NewReader("old"))
	if err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	second, err := svc.UploadProfilePicture(context.Background(), id, "new.png", "image/png", strings.NewReader("new"))
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}

	if len(gateway.objects) != 1 {
		t.Fatalf("expected exactly one blob to remain, got %d", len(gateway.objects))
	}
	oldKey, err := blob.KeyFromURL(first)
	if err != nil {
		t.Fatalf("old URL not derivable: %v", err)
	}
	if _, ok := gateway.objects[oldKey]; ok {
		t.Fatal("old blob must be deleted before the new upload")
	}

	if got := store.employees[id].ProfilePictureURL(); got != second {
		t.Fatalf("employee picture %q, want %q", got, second)
	}
	if b := store.birthdays[id]; b.ProfilePicture == nil || *b.ProfilePicture != second {
		t.Fatal("birthday projection must reference the new URL")
	}
	if w := store.anniversaries[id]; w.ProfilePicture == nil || *w.ProfilePicture != second {
		t.Fatal("work anniversary projection must reference the new URL")
	}

	last := store.pictureCalls[len(store.pictureCalls)-1]
	if !last.upsert {
		t.Fatal("picture upload must upsert the projections")
	}
}

func TestUploadProfilePictureAbortsWhenOldDeleteFails(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := created.Employee.ID

	if _, err := svc.UploadProfilePicture(context.Background(), id, "old.png", "image/png", strings.NewReader("old")); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}

	gateway.failDelete = errors.New("upstream unavailable")
	calls := len(store.pictureCalls)
	if _, err := svc.UploadProfilePicture(context.Background(), id, "new.png", "image/png", strings.NewReader("new")); err == nil {
		t.Fatal("expected upload to fail when the old blob cannot be deleted")
	}
	if len(gateway.objects) != 1 {
		t.Fatalf("expected the old blob to remain, got %d objects", len(gateway.objects))
	}
	if len(store.pictureCalls) != calls {
		t.Fatal("record must not change when the blob fan-out aborts")
	}
}

func TestDeleteProfilePicture(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := created.Employee.ID

	if err := svc.DeleteProfilePicture(context.Background(), id); !errors.Is(err, ErrNoProfilePicture) {
		t.Fatalf("expected ErrNoProfilePicture without a picture, got %v", err)
	}

	if _, err := svc.UploadProfilePicture(context.Background(), id, "pic.png", "image/png", strings.NewReader("pic")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if err := svc.DeleteProfilePicture(context.Background(), id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(gateway.objects) != 0 {
		t.Fatal("blob must be removed on delete")
	}
	last := store.pictureCalls[len(store.pictureCalls)-1]
	if last.url != nil || last.upsert {
		t.Fatalf("picture delete must null the field without upserting, got %+v", last)
	}
}

func TestUpdateDetailsValidates(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err = svc.UpdateDetails(context.Background(), created.Employee.ID, DetailsUpdate{
		StatutoryDetails: &StatutoryDetails{PFNumber: "PF1", PANNumber: "bad", ESICNumber: "ES1"},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.detailsSaved != nil {
		t.Fatal("invalid details must not be persisted")
	}
}

func TestUpdateDetailsPreservesPicture(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := created.Employee.ID

	url, err := svc.UploadProfilePicture(context.Background(), id, "pic.png", "image/png", strings.NewReader("pic"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	updated, err := svc.UpdateDetails(context.Background(), id, DetailsUpdate{
		ProfileDetails: &ProfileDetails{LinkedinLink: "https://linkedin.com/in/a"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ProfilePictureURL() != url {
		t.Fatal("detail update must not touch the picture URL")
	}
	if updated.ProfileDetails.LinkedinLink != "https://linkedin.com/in/a" {
		t.Fatal("linkedin link must be applied")
	}
}

func TestSetContactDetailsValidates(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.SetContactDetails(context.Background(), "E100", &ContactDetails{MobileNo: "123"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.contactCalls != 0 {
		t.Fatal("invalid contact details must not be persisted")
	}

	details, err := svc.SetContactDetails(context.Background(), "E100", &ContactDetails{MobileNo: "9876543210", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if details.MobileNo != "9876543210" || store.contactCalls != 1 {
		t.Fatal("valid contact details must be persisted")
	}
}

func TestUpdateCredentialsShortPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err = svc.UpdateCredentials(context.Background(), created.Employee.ID, "", "abc")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for a short password, got %v", err)
	}
	if err := auth.CheckPassword(store.employees[created.Employee.ID].PasswordHash, "pass123"); err != nil {
		t.Fatal("rejected update must leave the stored hash unchanged")
	}
}

func TestUpdateCredentialsPropagatesEmployeeID(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := created.Employee.ID

	updated, err := svc.UpdateCredentials(context.Background(), id, "E200", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.EmployeeID != "E200" {
		t.Fatalf("employee ID not updated, got %q", updated.EmployeeID)
	}
	if store.birthdays[id].EmployeeID != "E200" ||
		store.anniversaries[id].EmployeeID != "E200" ||
		store.profiles[id].EmployeeID != "E200" {
		t.Fatal("changed employee ID must reach all projection rows")
	}
	if err := auth.CheckPassword(updated.PasswordHash, "pass123"); err != nil {
		t.Fatal("omitting the password must keep the existing hash")
	}
}

func TestDeleteEmployeeCascades(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := created.Employee.ID

	if err := svc.DeleteEmployee(context.Background(), id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.employees) != 0 || len(store.birthdays) != 0 ||
		len(store.anniversaries) != 0 || len(store.profiles) != 0 {
		t.Fatal("delete must remove the record and every projection row")
	}
	if err := svc.DeleteEmployee(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestReconcileRepairsMissingProjection(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	id := created.Employee.ID

	delete(store.birthdays, id)

	reconciler := jobs.New(store, time.Hour, "Mumbai")
	repaired, err := reconciler.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if repaired != 1 {
		t.Fatalf("expected one repaired row, got %d", repaired)
	}
	b, ok := store.birthdays[id]
	if !ok {
		t.Fatal("missing birthday row must be re-created")
	}
	if b.EmpDBID != id || b.Branch != "Mumbai" {
		t.Fatalf("repaired row must back-reference the employee and carry the job branch, got %+v", b)
	}

	if repaired, err := reconciler.RunOnce(context.Background()); err != nil || repaired != 0 {
		t.Fatalf("a healthy state must repair nothing, got %d, %v", repaired, err)
	}
}

func TestUploadProfilePictureCarriesConfiguredBranch(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, newFakeGateway(), "secret", time.Hour, "Mumbai")

	created, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.UploadProfilePicture(context.Background(), created.Employee.ID, "pic.png", "image/png", strings.NewReader("pic")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	last := store.pictureCalls[len(store.pictureCalls)-1]
	if last.branch != "Mumbai" {
		t.Fatalf("picture upsert must carry the configured branch, got %q", last.branch)
	}
}
