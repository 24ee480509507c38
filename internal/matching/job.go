package matching

// WorkMode is the way a job is performed. Values are compared exactly.
type WorkMode string

const (
	ModeRemote WorkMode = "Remote"
	ModeHybrid WorkMode = "Hybrid"
	ModeOnsite WorkMode = "Onsite"
)

// WorkModes lists the known modes in display order.
var WorkModes = []WorkMode{ModeRemote, ModeHybrid, ModeOnsite}

// Known reports whether the mode is one of WorkModes.
func (m WorkMode) Known() bool {
	for _, known := range WorkModes {
		if m == known {
			return true
		}
	}
	return false
}

// Experience is the seniority label of a job or a preference.
type Experience string

const (
	ExperienceFresher Experience = "Fresher"
	ExperienceJunior  Experience = "Junior"
	ExperienceMid     Experience = "Mid"
	ExperienceSenior  Experience = "Senior"
	ExperienceLead    Experience = "Lead"
)

// ExperienceLevels lists the known levels from least to most senior.
var ExperienceLevels = []Experience{
	ExperienceFresher,
	ExperienceJunior,
	ExperienceMid,
	ExperienceSenior,
	ExperienceLead,
}

// Known reports whether the level is one of ExperienceLevels.
func (e Experience) Known() bool {
	for _, known := range ExperienceLevels {
		if e == known {
			return true
		}
	}
	return false
}

// Job is a single listing as seen by the scoring engine.
type Job struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	Mode          WorkMode   `json:"mode"`
	Experience    Experience `json:"experience"`
	Skills        []string   `json:"skills"`
	PostedDaysAgo int        `json:"postedDaysAgo"`
	Source        string     `json:"source"`
}
