package employee

import (
	"strings"
	"time"
)

// Date is a calendar date that accepts both RFC3339 timestamps and plain
// YYYY-MM-DD values on input, and always renders as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		d.Time = parsed
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type ContactDetails struct {
	LocalAddress     *Address `json:"localAddress,omitempty"`
	PermanentAddress *Address `json:"permanentAddress,omitempty"`
	MobileNo         string   `json:"mobileNo,omitempty"`
	Email            string   `json:"email,omitempty"`
	MaritalStatus    string   `json:"maritalStatus,omitempty"`
	SpouseName       string   `json:"spouseName,omitempty"`
	AlternateEmail   string   `json:"alternateEmail,omitempty"`
	UANNumber        string   `json:"uanNumber,omitempty"`
}

type FamilyMember struct {
	Name         string `json:"name"`
	DateOfBirth  Date   `json:"dateOfBirth"`
	Relation     string `json:"relation"`
	Occupation   string `json:"occupation,omitempty"`
	Age          int    `json:"age"`
	ContactNo    string `json:"contactNo"`
	Emergency    bool   `json:"emergency"`
	Gender       string `json:"gender"`
	AadharNumber string `json:"aadharNumber,omitempty"`
}

type Nominee struct {
	NomineeName     string  `json:"nomineeName"`
	Relation        string  `json:"relation"`
	NominationDate  Date    `json:"nominationDate"`
	Percentage      float64 `json:"percentage"`
	DateOfBirth     Date    `json:"dateOfBirth"`
	Address         string  `json:"address,omitempty"`
	GuardianName    string  `json:"guardianName,omitempty"`
	GuardianAddress string  `json:"guardianAddress,omitempty"`
	StayingWith     bool    `json:"stayingWith,omitempty"`
	NomineeType     string  `json:"nomineeType,omitempty"`
	SubType         string  `json:"subType,omitempty"`
	IsNomineeMinor  bool    `json:"isNomineeMinor,omitempty"`
	AadharNumber    string  `json:"aadharNumber,omitempty"`
}

type PersonalDetails struct {
	NickName           string  `json:"nickName,omitempty"`
	Height             float64 `json:"height,omitempty"`
	Weight             float64 `json:"weight,omitempty"`
	BirthPlace         string  `json:"birthPlace,omitempty"`
	Religion           string  `json:"religion,omitempty"`
	BloodGroup         string  `json:"bloodGroup,omitempty"`
	Nationality        string  `json:"nationality,omitempty"`
	MaritalStatus      string  `json:"maritalStatus,omitempty"`
	Language           string  `json:"language,omitempty"`
	IsHandicap         bool    `json:"isHandicap,omitempty"`
	HandicapNature     string  `json:"handicapNature,omitempty"`
	NameAsPerPan       string  `json:"nameAsPerPan"`
	NameAsPerAadhar    string  `json:"nameAsPerAadhar,omitempty"`
	NameAsPerBank      string  `json:"nameAsPerBank,omitempty"`
	MarriageDate       Date    `json:"marriageDate,omitempty"`
	HandicapPercentage float64 `json:"handicapPercentage"`
	IdentificationMark string  `json:"identificationMark,omitempty"`
}

type ProfileDetails struct {
	ProfilePicture *string `json:"profilePicture"`
	LinkedinLink   string  `json:"linkedinLink,omitempty"`
}

type StatutoryDetails struct {
	PFNumber   string `json:"pfNumber"`
	PANNumber  string `json:"panNumber"`
	ESICNumber string `json:"esicNumber"`
}

type Qualification struct {
	Degree          string `json:"degree"`
	Specification   string `json:"specification,omitempty"`
	University      string `json:"university"`
	Institute       string `json:"institute,omitempty"`
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	Grade           string `json:"grade,omitempty"`
	Location        string `json:"location,omitempty"`
	Duration        string `json:"duration,omitempty"`
	InstitutionType string `json:"type,omitempty"`
	CourseType      string `json:"courseType"`
}

// Employee is the canonical record; the projection rows below are derived
// from it and never authoritative.
type Employee struct {
	ID                   string            `json:"id"`
	EmployeeID           string            `json:"employeeId"`
	Name                 string            `json:"name"`
	PasswordHash         string            `json:"-"`
	Gender               string            `json:"gender"`
	FathersName          string            `json:"fathersName"`
	DateOfBirth          Date              `json:"dateOfBirth"`
	ConfirmationDate     Date              `json:"confirmationDate"`
	JoiningDate          Date              `json:"joiningDate"`
	BankAccountNumber    string            `json:"bankAccountNumber,omitempty"`
	AadharNumber         string            `json:"aadharNumber,omitempty"`
	UANNumber            string            `json:"uanNumber,omitempty"`
	Division             string            `json:"division,omitempty"`
	SubDivision          string            `json:"subDivision,omitempty"`
	MainDivision         string            `json:"mainDivision,omitempty"`
	Department           string            `json:"department"`
	Designation          string            `json:"designation"`
	IsAdmin              bool              `json:"isAdmin"`
	ContactDetails       *ContactDetails   `json:"contactDetails,omitempty"`
	FamilyDetails        []FamilyMember    `json:"familyDetails"`
	NomineeDetails       []Nominee         `json:"nomineeDetails"`
	PersonalDetails      *PersonalDetails  `json:"personalDetails,omitempty"`
	ProfileDetails       *ProfileDetails   `json:"profileDetails,omitempty"`
	StatutoryDetails     *StatutoryDetails `json:"statutoryDetails,omitempty"`
	QualificationDetails []Qualification   `json:"qualificationDetails"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// ProfilePictureURL returns the current picture URL, or "" when none is set.
func (e *Employee) ProfilePictureURL() string {
	if e.ProfileDetails == nil || e.ProfileDetails.ProfilePicture == nil {
		return ""
	}
	return *e.ProfileDetails.ProfilePicture
}

// Birthday is the calendar projection of an employee's date of birth.
type Birthday struct {
	ID             string  `json:"id"`
	EmpDBID        string  `json:"empDbId"`
	EmployeeID     string  `json:"employeeId"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	Designation    string  `json:"designation"`
	DateOfBirth    Date    `json:"dateOfBirth"`
	ProfilePicture *string `json:"profilePicture"`
	Email          string  `json:"email,omitempty"`
	Branch         string  `json:"branch"`
}

// WorkAnniversary is the calendar projection of an employee's joining date.
type WorkAnniversary struct {
	ID             string  `json:"id"`
	EmpDBID        string  `json:"empDbId"`
	EmployeeID     string  `json:"employeeId"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	Designation    string  `json:"designation"`
	JoiningDate    Date    `json:"joiningDate"`
	ProfilePicture *string `json:"profilePicture"`
	Email          string  `json:"email,omitempty"`
	Branch         string  `json:"branch"`
}

// ProfileCard is the lightweight directory projection of an employee.
type ProfileCard struct {
	ID             string  `json:"id"`
	EmpDBID        string  `json:"empDbId"`
	EmployeeID     string  `json:"employeeId"`
	Employee       string  `json:"employee"`
	ProfilePicture *string `json:"profilePicture"`
	LinkedinLink   string  `json:"linkedinLink,omitempty"`
}
