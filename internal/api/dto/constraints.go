package dto

// Field length limits shared by request DTOs and the database schema
const (
	EmailMaxLength = 255

	// bcrypt rejects input past 72 bytes
	PasswordMinLength = 8
	PasswordMaxLength = 72
	PasswordMaxBytes  = 72

	NameMinLength = 2
	NameMaxLength = 50

	CompanyNameMinLength = 2
	CompanyNameMaxLength = 100

	PhoneMinLength = 6
	PhoneMaxLength = 20

	SummaryMaxLength = 2000
	CVURLMaxLength   = 500

	PositionMinLength = 3
	PositionMaxLength = 100

	LocationMinLength = 2
	LocationMaxLength = 100

	DescriptionMinLength = 10
	DescriptionMaxLength = 5000

	SalaryMaxLength   = 100
	BenefitsMaxLength = 2000

	SkillNameMinLength = 1
	SkillNameMaxLength = 50
	MaxSkillsPerOffer  = 30

	DefaultPageSize = 20
	MaxPageSize     = 100
)
