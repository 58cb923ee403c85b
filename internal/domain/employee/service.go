package employee

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/blob"
)

type Service struct {
	store     StoreAPI
	blobs     blob.Gateway
	jwtSecret string
	tokenTTL  time.Duration
	branch    string
}

func NewService(store StoreAPI, blobs blob.Gateway, jwtSecret string, tokenTTL time.Duration, branch string) *Service {
	if branch == "" {
		branch = defaultBranchFallback
	}
	return &Service{
		store:     store,
		blobs:     blobs,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		branch:    branch,
	}
}

type CreateEmployeeInput struct {
	Name              string `json:"name"`
	EmployeeID        string `json:"employeeId"`
	Password          string `json:"password"`
	Gender            string `json:"gender"`
	FathersName       string `json:"fathersName"`
	DateOfBirth       Date   `json:"dateOfBirth"`
	ConfirmationDate  Date   `json:"confirmationDate"`
	JoiningDate       Date   `json:"joiningDate"`
	Department        string `json:"department"`
	Designation       string `json:"designation"`
	Division          string `json:"division"`
	SubDivision       string `json:"subDivision"`
	MainDivision      string `json:"mainDivision"`
	BankAccountNumber string `json:"bankAccountNumber"`
	AadharNumber      string `json:"aadharNumber"`
	UANNumber         string `json:"uanNumber"`
}

type CreateResult struct {
	Employee        *Employee        `json:"employee"`
	Profile         *ProfileCard     `json:"profile"`
	Birthday        *Birthday        `json:"birthday"`
	WorkAnniversary *WorkAnniversary `json:"workAnniversary"`
}

// Register creates the canonical employee record and fans out to the
// three projections, each back-referencing the new record.
func (s *Service) Register(ctx context.Context, input CreateEmployeeInput) (*CreateResult, error) {
	emp := &Employee{
		ID:                   uuid.NewString(),
		EmployeeID:           input.EmployeeID,
		Name:                 input.Name,
		Gender:               input.Gender,
		FathersName:          input.FathersName,
		DateOfBirth:          input.DateOfBirth,
		ConfirmationDate:     input.ConfirmationDate,
		JoiningDate:          input.JoiningDate,
		Department:           input.Department,
		Designation:          input.Designation,
		Division:             input.Division,
		SubDivision:          input.SubDivision,
		MainDivision:         input.MainDivision,
		BankAccountNumber:    input.BankAccountNumber,
		AadharNumber:         input.AadharNumber,
		UANNumber:            input.UANNumber,
		FamilyDetails:        []FamilyMember{},
		NomineeDetails:       []Nominee{},
		QualificationDetails: []Qualification{},
	}

	if err := s.validateNewEmployee(emp, input.Password); err != nil {
		return nil, err
	}

	exists, err := s.store.EmployeeIDExists(ctx, emp.EmployeeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmployeeID
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	emp.PasswordHash = hash

	profile := &ProfileCard{
		ID:         uuid.NewString(),
		EmpDBID:    emp.ID,
		EmployeeID: emp.EmployeeID,
		Employee:   emp.Name + " - " + emp.EmployeeID,
	}
	birthday := &Birthday{
		ID:          uuid.NewString(),
		EmpDBID:     emp.ID,
		EmployeeID:  emp.EmployeeID,
		Name:        emp.Name,
		Department:  emp.Department,
		Designation: emp.Designation,
		DateOfBirth: emp.DateOfBirth,
		Branch:      s.branch,
	}
	anniversary := &WorkAnniversary{
		ID:          uuid.NewString(),
		EmpDBID:     emp.ID,
		EmployeeID:  emp.EmployeeID,
		Name:        emp.Name,
		Department:  emp.Department,
		Designation: emp.Designation,
		JoiningDate: emp.JoiningDate,
		Branch:      s.branch,
	}

	if err := s.store.CreateEmployeeFanOut(ctx, emp, birthday, anniversary, profile); err != nil {
		return nil, err
	}

	return &CreateResult{
		Employee:        emp,
		Profile:         profile,
		Birthday:        birthday,
		WorkAnniversary: anniversary,
	}, nil
}

func (s *Service) validateNewEmployee(emp *Employee, password string) error {
	err := emp.Validate(time.Now())

	var verr *ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if verr == nil {
		verr = &ValidationError{}
	}
	if password == "" {
		verr.Issues = append(verr.Issues, Issue{Field: "password", Reason: "is required"})
	} else if len(password) < auth.MinPasswordLength {
		verr.Issues = append(verr.Issues, Issue{Field: "password", Reason: "must be at least 4 characters long"})
	}

	if len(verr.Issues) == 0 {
		return nil
	}
	return verr
}

type LoginResult struct {
	FullName    string `json:"fullName"`
	IsAdmin     bool   `json:"isAdmin"`
	EmployeeID  string `json:"employeeId"`
	Token       string `json:"token"`
	LoginUserID string `json:"loginUserId"`
}

// Login verifies credentials and issues a signed, time-limited token
// carrying the internal id and the external employee ID.
func (s *Service) Login(ctx context.Context, employeeID, password string) (*LoginResult, error) {
	emp, err := s.store.GetEmployeeByEmployeeID(ctx, employeeID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(emp.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, auth.Claims{
		UserID:     emp.ID,
		EmployeeID: emp.EmployeeID,
	}, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		FullName:    emp.Name,
		IsAdmin:     emp.IsAdmin,
		EmployeeID:  emp.EmployeeID,
		Token:       token,
		LoginUserID: emp.ID,
	}, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

// UpdateCredentials is the narrow admin update: only employeeId and
// password are mutable through this path.
func (s *Service) UpdateCredentials(ctx context.Context, id, employeeID, password string) (*Employee, error) {
	hash := ""
	if password != "" {
		if len(password) < auth.MinPasswordLength {
			return nil, &ValidationError{Issues: []Issue{{Field: "password", Reason: "must be at least 4 characters long"}}}
		}
		hashed, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		hash = hashed
	}
	return s.store.UpdateCredentials(ctx, id, employeeID, hash)
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	return s.store.DeleteEmployeeCascade(ctx, id)
}

type DetailsUpdate struct {
	ContactDetails       *ContactDetails   `json:"contactDetails"`
	FamilyDetails        *[]FamilyMember   `json:"familyDetails"`
	NomineeDetails       *[]Nominee        `json:"nomineeDetails"`
	PersonalDetails      *PersonalDetails  `json:"personalDetails"`
	ProfileDetails       *ProfileDetails   `json:"profileDetails"`
	StatutoryDetails     *StatutoryDetails `json:"statutoryDetails"`
	QualificationDetails *[]Qualification  `json:"qualificationDetails"`
}

// UpdateDetails replaces the nested structures present in the update and
// leaves absent sections untouched. The profile picture URL is owned by
// the picture path and never changes here.
func (s *Service) UpdateDetails(ctx context.Context, id string, update DetailsUpdate) (*Employee, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.ContactDetails != nil {
		emp.ContactDetails = update.ContactDetails
	}
	if update.FamilyDetails != nil {
		emp.FamilyDetails = *update.FamilyDetails
	}
	if update.NomineeDetails != nil {
		emp.NomineeDetails = *update.NomineeDetails
	}
	if update.PersonalDetails != nil {
		emp.PersonalDetails = update.PersonalDetails
	}
	if update.ProfileDetails != nil {
		picture := emp.ProfilePictureURL()
		emp.ProfileDetails = &ProfileDetails{LinkedinLink: update.ProfileDetails.LinkedinLink}
		if picture != "" {
			emp.ProfileDetails.ProfilePicture = &picture
		}
	}
	if update.StatutoryDetails != nil {
		emp.StatutoryDetails = update.StatutoryDetails
	}
	if update.QualificationDetails != nil {
		emp.QualificationDetails = *update.QualificationDetails
	}

	if err := emp.Validate(time.Now()); err != nil {
		return nil, err
	}
	if err := s.store.UpdateEmployeeDetails(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// GetContactDetails resolves the employee from the authenticated
// employee ID claim.
func (s *Service) GetContactDetails(ctx context.Context, employeeID string) (*ContactDetails, error) {
	emp, err := s.store.GetEmployeeByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.ContactDetails == nil {
		return nil, ErrNoContactDetails
	}
	return emp.ContactDetails, nil
}

func (s *Service) SetContactDetails(ctx context.Context, employeeID string, details *ContactDetails) (*ContactDetails, error) {
	if details != nil {
		v := &validator{}
		details.validate(v, "contactDetails")
		if err := v.err(); err != nil {
			return nil, err
		}
	}
	emp, err := s.store.GetEmployeeByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetContactDetails(ctx, emp.ID, details); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *Service) DeleteContactDetails(ctx context.Context, employeeID string) error {
	emp, err := s.store.GetEmployeeByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	return s.store.SetContactDetails(ctx, emp.ID, nil)
}

func (s *Service) ListBirthdays(ctx context.Context) ([]Birthday, error) {
	return s.store.ListBirthdays(ctx)
}

func (s *Service) ListWorkAnniversaries(ctx context.Context) ([]WorkAnniversary, error) {
	return s.store.ListWorkAnniversaries(ctx)
}
