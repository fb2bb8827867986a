package domain

// UserType discriminates which profile accompanies a user
type UserType string

const (
	UserTypeEmployee  UserType = "employee"
	UserTypeCandidate UserType = "candidate"
)

// UserTypes lists every valid user type
var UserTypes = []string{string(UserTypeEmployee), string(UserTypeCandidate)}

// Profile is the user-type specific part of a user.
// It is either EmployeeProfile or CandidateProfile.
type Profile interface {
	UserType() UserType
	isProfile()
}

// EmployeeProfile belongs to users who publish job offers
type EmployeeProfile struct {
	CompanyName string
	Position    *string
	Phone       *string
}

// CandidateProfile belongs to users who apply to job offers
type CandidateProfile struct {
	Phone    *string
	Location *string
	Summary  *string
	CVURL    *string
}

func (EmployeeProfile) UserType() UserType  { return UserTypeEmployee }
func (CandidateProfile) UserType() UserType { return UserTypeCandidate }

func (EmployeeProfile) isProfile()  {}
func (CandidateProfile) isProfile() {}
