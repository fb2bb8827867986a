package domain

// WorkMode classifies where a job offer's work happens
type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

// WorkModes lists every valid work mode
var WorkModes = []string{string(WorkModeRemote), string(WorkModeHybrid), string(WorkModeOnsite)}

// JobOfferStatus is the publication state of a job offer
type JobOfferStatus string

const (
	JobOfferStatusDraft  JobOfferStatus = "draft"
	JobOfferStatusOpen   JobOfferStatus = "open"
	JobOfferStatusClosed JobOfferStatus = "closed"
)

// JobOfferStatuses lists every valid job offer status
var JobOfferStatuses = []string{string(JobOfferStatusDraft), string(JobOfferStatusOpen), string(JobOfferStatusClosed)}

// SkillLevel is the expected proficiency for a job offer skill
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

// SkillLevels lists every valid skill level
var SkillLevels = []string{
	string(SkillLevelBeginner),
	string(SkillLevelIntermediate),
	string(SkillLevelAdvanced),
	string(SkillLevelExpert),
}
