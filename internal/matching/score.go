// Package matching scores job listings against the user's preferences.
//
// Every function here is pure: the same job and preferences always give the
// same result and nothing is cached between calls.
package matching

import "strings"

const (
	// MaxScore is the upper bound of a match score.
	MaxScore = 100

	// RecentDays is the largest PostedDaysAgo that still counts as recent.
	RecentDays = 2

	// BonusSource is the source label that earns the source bonus.
	BonusSource = "LinkedIn"
)

// Rule is one additive scoring condition.
type Rule struct {
	Name   string
	Points int
	match  func(job *Job, prefs *Preferences) bool
}

// Rules is the fixed rule table. Each rule fires at most once per listing.
var Rules = []Rule{
	{Name: "title_keyword", Points: 25, match: titleKeyword},
	{Name: "description_keyword", Points: 15, match: descriptionKeyword},
	{Name: "location", Points: 15, match: preferredLocation},
	{Name: "mode", Points: 10, match: preferredMode},
	{Name: "experience", Points: 10, match: experienceLevel},
	{Name: "skills", Points: 15, match: skillsMatch},
	{Name: "recent", Points: 5, match: postedRecently},
	{Name: "source", Points: 5, match: bonusSource},
}

// Matches reports whether the rule fires for the given pair.
func (r Rule) Matches(job *Job, prefs *Preferences) bool {
	if job == nil || prefs == nil {
		return false
	}
	return r.match(job, prefs)
}

// ComputeMatchScore returns the capped sum of the points of every rule the
// job satisfies. Absent preferences always score 0.
func ComputeMatchScore(job *Job, prefs *Preferences) int {
	if prefs == nil || job == nil {
		return 0
	}

	score := 0
	for _, rule := range Rules {
		if rule.match(job, prefs) {
			score += rule.Points
		}
	}

	return min(score, MaxScore)
}

// Explain returns the rules that fired for the job, in table order.
func Explain(job *Job, prefs *Preferences) []Rule {
	fired := make([]Rule, 0, len(Rules))
	if prefs == nil || job == nil {
		return fired
	}

	for _, rule := range Rules {
		if rule.match(job, prefs) {
			fired = append(fired, rule)
		}
	}
	return fired
}

// RuleNames returns the names of the given rules.
func RuleNames(rules []Rule) []string {
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.Name)
	}
	return names
}

func titleKeyword(job *Job, prefs *Preferences) bool {
	return prefs.HasKeywords() && AnyTokenPresent(prefs.Keywords(), strings.ToLower(job.Title))
}

func descriptionKeyword(job *Job, prefs *Preferences) bool {
	return prefs.HasKeywords() && AnyTokenPresent(prefs.Keywords(), strings.ToLower(job.Description))
}

func preferredLocation(job *Job, prefs *Preferences) bool {
	return prefs.HasPreferredLocations() && contains(prefs.PreferredLocations, job.Location)
}

func preferredMode(job *Job, prefs *Preferences) bool {
	return prefs.HasPreferredModes() && contains(prefs.PreferredMode, job.Mode)
}

func experienceLevel(job *Job, prefs *Preferences) bool {
	return prefs.HasExperienceLevel() && prefs.ExperienceLevel == job.Experience
}

func skillsMatch(job *Job, prefs *Preferences) bool {
	return SkillsOverlap(prefs.SkillTokens(), lowerAll(job.Skills))
}

func postedRecently(job *Job, _ *Preferences) bool {
	return job.PostedDaysAgo <= RecentDays
}

func bonusSource(job *Job, _ *Preferences) bool {
	return job.Source == BonusSource
}
