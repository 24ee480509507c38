package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/listing"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/matching"
)

const descriptionLogLength = 80

type matchScoreFilter struct{}

// NewMatchScore creates the step that scores every listing. It never drops.
func NewMatchScore() Filter {
	return &matchScoreFilter{}
}

func (f *matchScoreFilter) Name() string { return "match_score" }

func (f *matchScoreFilter) Disable(string) {}

func (f *matchScoreFilter) IsEnabled() bool { return true }

func (f *matchScoreFilter) Validate(*Config) error { return nil }

func (f *matchScoreFilter) Apply(_ context.Context, deps Deps, v *listing.Listings) (*listing.Listings, Step, error) {
	if deps.Preferences == nil {
		deps.Logger.Info("preferences are not set, every listing scores 0",
			zap.String("hint", "run 'job-matcher prefs set' first"),
		)
	}

	for _, l := range v.Items {
		match := l.Evaluate(deps.Preferences)
		deps.Logger.Debug("listing scored", append(logger.ListingFields(l.ID, l.Source),
			zap.Int("score", match.Score),
			zap.Stringer("tier", match.Tier),
			zap.Strings("rules", match.Rules),
			zap.String("description", logger.TruncateForLog(l.Description, descriptionLogLength)),
		)...)
	}

	return v, Step{Initial: v.Len(), Dropped: 0, Left: v.Len()}, nil
}

func (f *matchScoreFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true}
}

type minimumScoreFilter struct {
	disabled bool
	reason   string
	minimum  int
}

// NewMinimumScore creates a filter that removes listings scoring below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinimumScore
	}
	if f.minimum < 0 || f.minimum > matching.MaxScore {
		return fmt.Errorf("minimum score must be within 0..%d, got %d", matching.MaxScore, f.minimum)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, v *listing.Listings) (*listing.Listings, Step, error) {
	initial := v.Len()
	if f.minimum == 0 {
		return v, Step{Initial: initial, Dropped: 0, Left: v.Len()}, nil
	}

	excluded := v.Keep(func(l *listing.Listing) bool { return l.Score() >= f.minimum })
	if len(excluded) > 0 {
		deps.Logger.Info("excluding listings below minimum score",
			zap.Int("minimum_score", f.minimum),
			zap.Strings("excluded_listings", excluded),
			zap.Int("listings_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.minimum)},
	}
}

type maxAgeFilter struct {
	days int
}

// NewMaxAge creates a filter that removes listings posted more than the configured days ago.
func NewMaxAge() Filter {
	return &maxAgeFilter{}
}

func (f *maxAgeFilter) Name() string { return "max_age" }

func (f *maxAgeFilter) Disable(string) {}

func (f *maxAgeFilter) IsEnabled() bool { return true }

func (f *maxAgeFilter) Validate(cfg *Config) error {
	f.days = 0
	if cfg != nil {
		f.days = cfg.MaxAgeDays
	}
	if f.days < 0 {
		return fmt.Errorf("max age must not be negative, got %d", f.days)
	}
	return nil
}

func (f *maxAgeFilter) Apply(_ context.Context, deps Deps, v *listing.Listings) (*listing.Listings, Step, error) {
	initial := v.Len()
	if f.days == 0 {
		return v, Step{Initial: initial, Dropped: 0, Left: v.Len()}, nil
	}

	excluded := v.Keep(func(l *listing.Listing) bool { return l.PostedDaysAgo <= f.days })
	if len(excluded) > 0 {
		deps.Logger.Info("excluding stale listings",
			zap.Int("max_age_days", f.days),
			zap.Strings("excluded_listings", excluded),
			zap.Int("listings_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *maxAgeFilter) Status() Status {
	details := map[string]string{}
	if f.days > 0 {
		details["max_age_days"] = strconv.Itoa(f.days)
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type excludeSourcesFilter struct {
	sources []string
}

// NewExcludeSources creates a filter that removes listings from the configured job boards.
func NewExcludeSources() Filter {
	return &excludeSourcesFilter{}
}

func (f *excludeSourcesFilter) Name() string { return "exclude_sources" }

func (f *excludeSourcesFilter) Disable(string) {}

func (f *excludeSourcesFilter) IsEnabled() bool { return true }

func (f *excludeSourcesFilter) Validate(cfg *Config) error {
	f.sources = nil
	if cfg != nil {
		f.sources = append(f.sources, cfg.ExcludeSources...)
	}
	return nil
}

func (f *excludeSourcesFilter) Apply(_ context.Context, deps Deps, v *listing.Listings) (*listing.Listings, Step, error) {
	initial := v.Len()
	if len(f.sources) == 0 {
		return v, Step{Initial: initial, Dropped: 0, Left: v.Len()}, nil
	}

	excluded := v.Exclude(listing.FieldSource, f.sources)
	if len(excluded) > 0 {
		deps.Logger.Info("excluding listings by source",
			zap.Strings("excluded_sources", f.sources),
			zap.Strings("excluded_listings", excluded),
			zap.Int("listings_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *excludeSourcesFilter) Status() Status {
	details := map[string]string{}
	if len(f.sources) > 0 {
		details["sources"] = strings.Join(f.sources, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
