package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, employee_id, name, password_hash, gender, fathers_name,
  date_of_birth, confirmation_date, joining_date,
  COALESCE(bank_account_number, ''), COALESCE(aadhar_number, ''), COALESCE(uan_number, ''),
  COALESCE(division, ''), COALESCE(sub_division, ''), COALESCE(main_division, ''),
  department, designation, is_admin,
  contact_details, family_details, nominee_details,
  personal_details, profile_details, statutory_details, qualification_details,
  created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*Employee, error) {
	var emp Employee
	var contactDoc, familyDoc, nomineeDoc, personalDoc, profileDoc, statutoryDoc, qualificationDoc []byte
	err := row.Scan(
		&emp.ID, &emp.EmployeeID, &emp.Name, &emp.PasswordHash, &emp.Gender, &emp.FathersName,
		&emp.DateOfBirth.Time, &emp.ConfirmationDate.Time, &emp.JoiningDate.Time,
		&emp.BankAccountNumber, &emp.AadharNumber, &emp.UANNumber,
		&emp.Division, &emp.SubDivision, &emp.MainDivision,
		&emp.Department, &emp.Designation, &emp.IsAdmin,
		&contactDoc, &familyDoc, &nomineeDoc,
		&personalDoc, &profileDoc, &statutoryDoc, &qualificationDoc,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	emp.FamilyDetails = []FamilyMember{}
	emp.NomineeDetails = []Nominee{}
	emp.QualificationDetails = []Qualification{}
	if err := unmarshalDoc(contactDoc, &emp.ContactDetails); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(familyDoc, &emp.FamilyDetails); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(nomineeDoc, &emp.NomineeDetails); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(personalDoc, &emp.PersonalDetails); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(profileDoc, &emp.ProfileDetails); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(statutoryDoc, &emp.StatutoryDetails); err != nil {
		return nil, err
	}
	if err := unmarshalDoc(qualificationDoc, &emp.QualificationDetails); err != nil {
		return nil, err
	}
	return &emp, nil
}

func unmarshalDoc(doc []byte, target any) error {
	if len(doc) == 0 {
		return nil
	}
	return json.Unmarshal(doc, target)
}

func marshalDoc(v any, isNil bool) ([]byte, error) {
	if isNil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return emp, err
}

func (s *Store) GetEmployeeByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = $1`, employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return emp, err
}

func (s *Store) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM employees WHERE employee_id = $1`, employeeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name, employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

// CreateEmployeeFanOut persists the employee and its three projections in
// one transaction, so a half-created record set never becomes visible.
func (s *Store) CreateEmployeeFanOut(ctx context.Context, e *Employee, b *Birthday, w *WorkAnniversary, p *ProfileCard) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertEmployee(ctx, tx, e); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO birthdays (id, emp_db_id, employee_id, name, department, designation, date_of_birth, profile_picture, email, branch)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, b.ID, b.EmpDBID, b.EmployeeID, b.Name, b.Department, b.Designation, b.DateOfBirth.Time, b.ProfilePicture, b.Email, b.Branch); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO work_anniversaries (id, emp_db_id, employee_id, name, department, designation, joining_date, profile_picture, email, branch)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, w.ID, w.EmpDBID, w.EmployeeID, w.Name, w.Department, w.Designation, w.JoiningDate.Time, w.ProfilePicture, w.Email, w.Branch); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO profiles (id, emp_db_id, employee_id, employee, profile_picture, linkedin_link)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, p.ID, p.EmpDBID, p.EmployeeID, p.Employee, p.ProfilePicture, p.LinkedinLink); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertEmployee(ctx context.Context, tx pgx.Tx, e *Employee) error {
	contactDoc, err := marshalDoc(e.ContactDetails, e.ContactDetails == nil)
	if err != nil {
		return err
	}
	familyDoc, err := marshalDoc(e.FamilyDetails, e.FamilyDetails == nil)
	if err != nil {
		return err
	}
	nomineeDoc, err := marshalDoc(e.NomineeDetails, e.NomineeDetails == nil)
	if err != nil {
		return err
	}
	personalDoc, err := marshalDoc(e.PersonalDetails, e.PersonalDetails == nil)
	if err != nil {
		return err
	}
	profileDoc, err := marshalDoc(e.ProfileDetails, e.ProfileDetails == nil)
	if err != nil {
		return err
	}
	statutoryDoc, err := marshalDoc(e.StatutoryDetails, e.StatutoryDetails == nil)
	if err != nil {
		return err
	}
	qualificationDoc, err := marshalDoc(e.QualificationDetails, e.QualificationDetails == nil)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
    INSERT INTO employees (
      id, employee_id, name, password_hash, gender, fathers_name,
      date_of_birth, confirmation_date, joining_date,
      bank_account_number, aadhar_number, uan_number,
      division, sub_division, main_division,
      department, designation, is_admin,
      contact_details, family_details, nominee_details,
      personal_details, profile_details, statutory_details, qualification_details
    ) VALUES (
      $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25
    )
  `,
		e.ID, e.EmployeeID, e.Name, e.PasswordHash, e.Gender, e.FathersName,
		e.DateOfBirth.Time, e.ConfirmationDate.Time, e.JoiningDate.Time,
		e.BankAccountNumber, e.AadharNumber, e.UANNumber,
		e.Division, e.SubDivision, e.MainDivision,
		e.Department, e.Designation, e.IsAdmin,
		contactDoc, familyDoc, nomineeDoc,
		personalDoc, profileDoc, statutoryDoc, qualificationDoc,
	)
	return mapUniqueViolation(err)
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmployeeID
	}
	return err
}

// UpdateCredentials applies the deliberately narrow admin update: only the
// external employee ID and the password hash are mutable here. A changed
// employee ID is propagated to the projection rows in the same transaction.
func (s *Store) UpdateCredentials(ctx context.Context, id, employeeID, passwordHash string) (*Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET employee_id = COALESCE(NULLIF($2, ''), employee_id),
        password_hash = COALESCE(NULLIF($3, ''), password_hash),
        updated_at = now()
    WHERE id = $1
  `, id, employeeID, passwordHash)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if employeeID != "" {
		for _, table := range []string{"birthdays", "work_anniversaries", "profiles"} {
			if _, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET employee_id = $2 WHERE emp_db_id = $1`, table), id, employeeID); err != nil {
				return nil, err
			}
		}
	}

	emp, err := scanEmployee(tx.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return emp, nil
}

// UpdateEmployeeDetails rewrites the nested document columns from the
// given record.
func (s *Store) UpdateEmployeeDetails(ctx context.Context, e *Employee) error {
	contactDoc, err := marshalDoc(e.ContactDetails, e.ContactDetails == nil)
	if err != nil {
		return err
	}
	familyDoc, err := marshalDoc(e.FamilyDetails, e.FamilyDetails == nil)
	if err != nil {
		return err
	}
	nomineeDoc, err := marshalDoc(e.NomineeDetails, e.NomineeDetails == nil)
	if err != nil {
		return err
	}
	personalDoc, err := marshalDoc(e.PersonalDetails, e.PersonalDetails == nil)
	if err != nil {
		return err
	}
	profileDoc, err := marshalDoc(e.ProfileDetails, e.ProfileDetails == nil)
	if err != nil {
		return err
	}
	statutoryDoc, err := marshalDoc(e.StatutoryDetails, e.StatutoryDetails == nil)
	if err != nil {
		return err
	}
	qualificationDoc, err := marshalDoc(e.QualificationDetails, e.QualificationDetails == nil)
	if err != nil {
		return err
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET contact_details = $2, family_details = $3, nominee_details = $4,
        personal_details = $5, profile_details = $6, statutory_details = $7,
        qualification_details = $8, updated_at = now()
    WHERE id = $1
  `, e.ID, contactDoc, familyDoc, nomineeDoc, personalDoc, profileDoc, statutoryDoc, qualificationDoc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEmployeeCascade removes the employee and its projection rows in
// one transaction, so no orphaned projections remain.
func (s *Store) DeleteEmployeeCascade(ctx context.Context, id string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, table := range []string{"birthdays", "work_anniversaries", "profiles"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE emp_db_id = $1`, table), id); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) SetContactDetails(ctx context.Context, id string, details *ContactDetails) error {
	doc, err := marshalDoc(details, details == nil)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET contact_details = $2, updated_at = now() WHERE id = $1
  `, id, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
