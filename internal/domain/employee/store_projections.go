package employee

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) ListBirthdays(ctx context.Context) ([]Birthday, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_db_id, employee_id, name, department, designation, date_of_birth, profile_picture, COALESCE(email, ''), branch
    FROM birthdays
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Birthday{}
	for rows.Next() {
		var b Birthday
		if err := rows.Scan(&b.ID, &b.EmpDBID, &b.EmployeeID, &b.Name, &b.Department, &b.Designation, &b.DateOfBirth.Time, &b.ProfilePicture, &b.Email, &b.Branch); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) ListWorkAnniversaries(ctx context.Context) ([]WorkAnniversary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_db_id, employee_id, name, department, designation, joining_date, profile_picture, COALESCE(email, ''), branch
    FROM work_anniversaries
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []WorkAnniversary{}
	for rows.Next() {
		var w WorkAnniversary
		if err := rows.Scan(&w.ID, &w.EmpDBID, &w.EmployeeID, &w.Name, &w.Department, &w.Designation, &w.JoiningDate.Time, &w.ProfilePicture, &w.Email, &w.Branch); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// SetProfilePicture updates the canonical picture URL and fans the change
// out to the calendar projections. With upsertProjections the projection
// rows are created when absent (employees predating the projections),
// carrying the given branch; without it, missing rows are silently left
// alone.
func (s *Store) SetProfilePicture(ctx context.Context, id string, url *string, upsertProjections bool, branch string) error {
	if branch == "" {
		branch = defaultBranchFallback
	}
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET profile_details = COALESCE(profile_details, '{}'::jsonb) || jsonb_build_object('profilePicture', $2::text),
        updated_at = now()
    WHERE id = $1
  `, id, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if upsertProjections {
		if _, err := tx.Exec(ctx, `
      INSERT INTO birthdays (id, emp_db_id, employee_id, name, department, designation, date_of_birth, profile_picture, branch)
      SELECT $1, e.id, e.employee_id, e.name, e.department, e.designation, e.date_of_birth, $3::text, $4
      FROM employees e WHERE e.id = $2
      ON CONFLICT (emp_db_id) DO UPDATE SET profile_picture = EXCLUDED.profile_picture
    `, uuid.NewString(), id, url, branch); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO work_anniversaries (id, emp_db_id, employee_id, name, department, designation, joining_date, profile_picture, branch)
      SELECT $1, e.id, e.employee_id, e.name, e.department, e.designation, e.joining_date, $3::text, $4
      FROM employees e WHERE e.id = $2
      ON CONFLICT (emp_db_id) DO UPDATE SET profile_picture = EXCLUDED.profile_picture
    `, uuid.NewString(), id, url, branch); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `UPDATE birthdays SET profile_picture = $2 WHERE emp_db_id = $1`, id, url); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE work_anniversaries SET profile_picture = $2 WHERE emp_db_id = $1`, id, url); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const defaultBranchFallback = "Pune"

// ReconcileProjections inserts projection rows missing for existing
// employees and reports how many were created.
func (s *Store) ReconcileProjections(ctx context.Context, defaultBranch string) (int, error) {
	if defaultBranch == "" {
		defaultBranch = defaultBranchFallback
	}

	created := 0
	calendarStatements := []string{
		`INSERT INTO birthdays (id, emp_db_id, employee_id, name, department, designation, date_of_birth, profile_picture, branch)
     SELECT gen_random_uuid(), e.id, e.employee_id, e.name, e.department, e.designation, e.date_of_birth,
            e.profile_details->>'profilePicture', $1
     FROM employees e
     WHERE NOT EXISTS (SELECT 1 FROM birthdays b WHERE b.emp_db_id = e.id)`,
		`INSERT INTO work_anniversaries (id, emp_db_id, employee_id, name, department, designation, joining_date, profile_picture, branch)
     SELECT gen_random_uuid(), e.id, e.employee_id, e.name, e.department, e.designation, e.joining_date,
            e.profile_details->>'profilePicture', $1
     FROM employees e
     WHERE NOT EXISTS (SELECT 1 FROM work_anniversaries w WHERE w.emp_db_id = e.id)`,
	}
	for _, stmt := range calendarStatements {
		tag, err := s.DB.Exec(ctx, stmt, defaultBranch)
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}

	tag, err := s.DB.Exec(ctx, `
    INSERT INTO profiles (id, emp_db_id, employee_id, employee, profile_picture, linkedin_link)
    SELECT gen_random_uuid(), e.id, e.employee_id, e.name || ' - ' || e.employee_id,
           e.profile_details->>'profilePicture', e.profile_details->>'linkedinLink'
    FROM employees e
    WHERE NOT EXISTS (SELECT 1 FROM profiles p WHERE p.emp_db_id = e.id)
  `)
	if err != nil {
		return created, err
	}
	created += int(tag.RowsAffected())
	return created, nil
}
