package matching

// Preferences holds the matching criteria a user saved.
// The JSON shape is the persisted one and must stay stable.
type Preferences struct {
	RoleKeywords       string     `json:"roleKeywords"`
	PreferredLocations []string   `json:"preferredLocations"`
	PreferredMode      []WorkMode `json:"preferredMode"`
	ExperienceLevel    Experience `json:"experienceLevel"`
	Skills             string     `json:"skills"`
}

// Keywords returns the parsed role keywords.
func (p *Preferences) Keywords() []string {
	return ParseCSVTokens(p.RoleKeywords)
}

// SkillTokens returns the parsed skills.
func (p *Preferences) SkillTokens() []string {
	return ParseCSVTokens(p.Skills)
}

// HasKeywords reports whether at least one role keyword survives parsing.
func (p *Preferences) HasKeywords() bool {
	return len(p.Keywords()) > 0
}

// HasPreferredLocations reports whether any location was chosen.
// An empty list never matches.
func (p *Preferences) HasPreferredLocations() bool {
	return len(p.PreferredLocations) > 0
}

// HasPreferredModes reports whether any work mode was chosen.
func (p *Preferences) HasPreferredModes() bool {
	return len(p.PreferredMode) > 0
}

// HasExperienceLevel reports whether the experience level is set.
func (p *Preferences) HasExperienceLevel() bool {
	return p.ExperienceLevel != ""
}

// HasSkills reports whether at least one skill survives parsing.
func (p *Preferences) HasSkills() bool {
	return len(p.SkillTokens()) > 0
}
