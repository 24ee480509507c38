// Package listing holds the job listings being ranked.
package listing

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spigell/job-matcher/internal/matching"
)

const (
	FieldID     = "ID"
	FieldSource = "Source"
)

// SortKey names an ordering of listings.
type SortKey string

const (
	SortByScore   SortKey = "score"
	SortBySalary  SortKey = "salary"
	SortByRecency SortKey = "recency"
)

// ParseSortKey validates a sort key. Empty means SortByScore.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case "":
		return SortByScore, nil
	case SortByScore, SortBySalary, SortByRecency:
		return key, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

type Listings struct {
	Items []*Listing
}

type Listing struct {
	matching.Job

	ID      string `json:"id"`
	Company string `json:"company"`
	Salary  string `json:"salaryRange"`
	URL     string `json:"applyUrl"`

	Match *Match `json:"match,omitempty"`
}

// Match is the computed result for one listing. It is never persisted.
type Match struct {
	Score        int           `json:"score"`
	Tier         matching.Tier `json:"tier"`
	SalaryNumber float64       `json:"salaryNumber"`
	Rules        []string      `json:"rules,omitempty"`
}

// Evaluate scores the listing against prefs and stores the result on it.
func (l *Listing) Evaluate(prefs *matching.Preferences) *Match {
	score := matching.ComputeMatchScore(&l.Job, prefs)
	l.Match = &Match{
		Score:        score,
		Tier:         matching.ScoreTier(score),
		SalaryNumber: matching.ExtractSalaryNum(l.Salary),
		Rules:        matching.RuleNames(matching.Explain(&l.Job, prefs)),
	}
	return l.Match
}

// Score returns the computed score or 0 when the listing was not evaluated.
func (l *Listing) Score() int {
	if l.Match == nil {
		return 0
	}
	return l.Match.Score
}

// salaryNumber prefers the value computed by Evaluate.
func (l *Listing) salaryNumber() float64 {
	if l.Match != nil {
		return l.Match.SalaryNumber
	}
	return matching.ExtractSalaryNum(l.Salary)
}

func (l *Listing) GetStringField(name string) string {
	switch name {
	case FieldID:
		return l.ID
	case FieldSource:
		return l.Source
	default:
		return ""
	}
}

func (v *Listings) Len() int {
	return len(v.Items)
}

func (v *Listings) FindByID(id string) *Listing {
	for _, l := range v.Items {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Exclude removes every listing whose field equals one of targets and
// returns the removed IDs. Order of the remaining listings is preserved.
func (v *Listings) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}

	return v.Keep(func(l *Listing) bool {
		_, drop := set[l.GetStringField(name)]
		return !drop
	})
}

// Keep retains the listings for which keep returns true and returns the IDs
// of the dropped ones.
func (v *Listings) Keep(keep func(*Listing) bool) []string {
	var dropped []string
	kept := v.Items[:0]
	for _, l := range v.Items {
		if keep(l) {
			kept = append(kept, l)
			continue
		}
		dropped = append(dropped, l.ID)
	}
	// Clear the tail so dropped listings can be collected.
	for i := len(kept); i < len(v.Items); i++ {
		v.Items[i] = nil
	}
	v.Items = kept
	return dropped
}

// Sort orders listings best first. Ties keep their input order.
func (v *Listings) Sort(key SortKey) {
	var less func(a, b *Listing) bool
	switch key {
	case SortBySalary:
		less = func(a, b *Listing) bool { return a.salaryNumber() > b.salaryNumber() }
	case SortByRecency:
		less = func(a, b *Listing) bool { return a.PostedDaysAgo < b.PostedDaysAgo }
	default:
		less = func(a, b *Listing) bool { return a.Score() > b.Score() }
	}

	sort.SliceStable(v.Items, func(i, j int) bool {
		return less(v.Items[i], v.Items[j])
	})
}

// Truncate keeps at most n listings. Non-positive n keeps all.
func (v *Listings) Truncate(n int) {
	if n <= 0 || n >= len(v.Items) {
		return
	}
	v.Items = v.Items[:n]
}

// ReportBySource groups a short description of every listing by its source.
func (v *Listings) ReportBySource() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, l := range v.Items {
		source := l.Source
		if source == "" {
			source = "unknown"
		}

		entry := map[string]string{
			"id":       l.ID,
			"title":    l.Title,
			"company":  l.Company,
			"location": l.Location,
			"salary":   l.Salary,
			"url":      l.URL,
		}
		if l.Match != nil {
			entry["score"] = fmt.Sprintf("%d", l.Match.Score)
			entry["tier"] = l.Match.Tier.String()
		}
		report[source] = append(report[source], entry)
	}
	return report
}

func (v *Listings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "listings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}
