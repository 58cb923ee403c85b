package employee

var (
	Genders       = []string{"male", "female", "other"}
	FamilyGenders = []string{"Male", "Female", "Other"}

	ContactMaritalStatuses  = []string{"Unmarried", "Married", "Divorcee", "Widow", "Widower", "NA"}
	PersonalMaritalStatuses = []string{"Single", "Married", "Divorced", "Widowed"}

	BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	CourseTypes      = []string{"full time", "part time", "correspondence"}
	InstitutionTypes = []string{"government", "private", "deemed"}
)

const QualificationMinYear = 1900
