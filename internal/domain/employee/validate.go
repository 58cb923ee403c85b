package employee

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type validator struct {
	issues []Issue
}

func (v *validator) add(field, reason string) {
	v.issues = append(v.issues, Issue{Field: field, Reason: reason})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
}

func (v *validator) requiredDate(field string, value Date) {
	if value.IsZero() {
		v.add(field, "is required")
	}
}

func (v *validator) enum(field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	v.add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (v *validator) digits(field, value string, length int) {
	if value == "" {
		return
	}
	if len(value) != length || !digitPattern.MatchString(value) {
		v.add(field, fmt.Sprintf("must be exactly %d digits", length))
	}
}

func (v *validator) email(field, value string) {
	if value == "" {
		return
	}
	if !emailPattern.MatchString(value) {
		v.add(field, "must be a valid email address")
	}
}

func (v *validator) err() error {
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: v.issues}
}

// Validate checks the whole record against the schema constraints and
// returns a *ValidationError listing every violated field.
func (e *Employee) Validate(now time.Time) error {
	v := &validator{}

	v.required("name", e.Name)
	v.required("employeeId", e.EmployeeID)
	v.required("gender", e.Gender)
	v.enum("gender", e.Gender, Genders)
	v.required("fathersName", e.FathersName)
	v.requiredDate("dateOfBirth", e.DateOfBirth)
	v.requiredDate("confirmationDate", e.ConfirmationDate)
	v.requiredDate("joiningDate", e.JoiningDate)
	v.required("department", e.Department)
	v.required("designation", e.Designation)
	v.digits("aadharNumber", e.AadharNumber, 12)

	if e.ContactDetails != nil {
		e.ContactDetails.validate(v, "contactDetails")
	}
	for i, member := range e.FamilyDetails {
		member.validate(v, fmt.Sprintf("familyDetails[%d]", i))
	}
	for i, nominee := range e.NomineeDetails {
		nominee.validate(v, fmt.Sprintf("nomineeDetails[%d]", i))
	}
	if e.PersonalDetails != nil {
		e.PersonalDetails.validate(v, "personalDetails")
	}
	if e.StatutoryDetails != nil {
		e.StatutoryDetails.validate(v, "statutoryDetails")
	}
	for i, qualification := range e.QualificationDetails {
		qualification.validate(v, fmt.Sprintf("qualificationDetails[%d]", i), now)
	}

	return v.err()
}

func (c *ContactDetails) validate(v *validator, prefix string) {
	v.digits(prefix+".mobileNo", c.MobileNo, 10)
	v.email(prefix+".email", c.Email)
	v.email(prefix+".alternateEmail", c.AlternateEmail)
	v.enum(prefix+".maritalStatus", c.MaritalStatus, ContactMaritalStatuses)
}

func (f FamilyMember) validate(v *validator, prefix string) {
	v.required(prefix+".name", f.Name)
	v.requiredDate(prefix+".dateOfBirth", f.DateOfBirth)
	v.required(prefix+".relation", f.Relation)
	if f.Age < 0 {
		v.add(prefix+".age", "cannot be negative")
	}
	v.required(prefix+".contactNo", f.ContactNo)
	v.digits(prefix+".contactNo", f.ContactNo, 10)
	v.required(prefix+".gender", f.Gender)
	v.enum(prefix+".gender", f.Gender, FamilyGenders)
	v.digits(prefix+".aadharNumber", f.AadharNumber, 12)
}

func (n Nominee) validate(v *validator, prefix string) {
	v.required(prefix+".nomineeName", n.NomineeName)
	v.required(prefix+".relation", n.Relation)
	v.requiredDate(prefix+".nominationDate", n.NominationDate)
	if n.Percentage < 0 || n.Percentage > 100 {
		v.add(prefix+".percentage", "must be between 0 and 100")
	}
	v.requiredDate(prefix+".dateOfBirth", n.DateOfBirth)
	v.digits(prefix+".aadharNumber", n.AadharNumber, 12)
}

func (p *PersonalDetails) validate(v *validator, prefix string) {
	if p.Height < 0 {
		v.add(prefix+".height", "cannot be negative")
	}
	if p.Weight < 0 {
		v.add(prefix+".weight", "cannot be negative")
	}
	v.enum(prefix+".bloodGroup", p.BloodGroup, BloodGroups)
	v.enum(prefix+".maritalStatus", p.MaritalStatus, PersonalMaritalStatuses)
	v.required(prefix+".nameAsPerPan", p.NameAsPerPan)
	if p.HandicapPercentage < 0 || p.HandicapPercentage > 100 {
		v.add(prefix+".handicapPercentage", "must be between 0 and 100")
	}
}

func (s *StatutoryDetails) validate(v *validator, prefix string) {
	v.required(prefix+".pfNumber", s.PFNumber)
	v.required(prefix+".panNumber", s.PANNumber)
	if s.PANNumber != "" && !panPattern.MatchString(s.PANNumber) {
		v.add(prefix+".panNumber", "must match the PAN format (5 letters, 4 digits, 1 letter)")
	}
	v.required(prefix+".esicNumber", s.ESICNumber)
}

func (q Qualification) validate(v *validator, prefix string, now time.Time) {
	v.required(prefix+".degree", q.Degree)
	v.required(prefix+".university", q.University)
	if q.Year < QualificationMinYear || q.Year > now.Year() {
		v.add(prefix+".year", fmt.Sprintf("must be between %d and %d", QualificationMinYear, now.Year()))
	}
	if q.Month < 1 || q.Month > 12 {
		v.add(prefix+".month", "must be between 1 and 12")
	}
	v.enum(prefix+".type", q.InstitutionType, InstitutionTypes)
	v.required(prefix+".courseType", q.CourseType)
	v.enum(prefix+".courseType", q.CourseType, CourseTypes)
}
