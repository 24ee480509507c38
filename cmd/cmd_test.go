package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/job-matcher/internal/listing"
	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/secrets"
)

func rankedListings() *listing.Listings {
	return &listing.Listings{Items: []*listing.Listing{
		{
			ID:      "kn-1",
			Company: "Acme",
			Salary:  "₹18,00,000",
			Job: matching.Job{
				Title: "Senior React Developer", Location: "Bangalore", Mode: matching.ModeRemote,
				PostedDaysAgo: 1, Source: "LinkedIn",
			},
			Match: &listing.Match{Score: 85, Tier: matching.TierHigh, Rules: []string{"title_keyword", "location"}},
		},
		{
			ID:  "kn-2",
			Job: matching.Job{Title: "Accountant", PostedDaysAgo: 9, Source: "Naukri"},
		},
	}}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	if err := printTable(&buf, rankedListings(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "RULES") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); fields[0] != "kn-1" || fields[1] != "85" || fields[2] != "high" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.Contains(lines[1], "title_keyword,location") {
		t.Fatalf("expected rules in first row: %q", lines[1])
	}
	if fields := strings.Fields(lines[2]); fields[1] != "0" || fields[2] != "-" {
		t.Fatalf("unexpected unevaluated row: %q", lines[2])
	}

	buf.Reset()
	if err := printTable(&buf, rankedListings(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "RULES") {
		t.Fatalf("did not expect rules column without explain")
	}
}

func TestHandleAction(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	if err := handleAction(PromptExit, logger, rankedListings(), false); !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}
	if err := handleAction("Fly away", logger, rankedListings(), false); err == nil {
		t.Fatalf("expected error for unknown action")
	}

	if err := handleAction(PromptListingsToFile, logger, rankedListings(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := observed.FilterMessage("dumping result to file").All()
	if len(entries) != 1 {
		t.Fatalf("expected dump log entry, got %d", len(entries))
	}
	filename, _ := entries[0].ContextMap()["filename"].(string)
	if filename == "" {
		t.Fatalf("expected filename field")
	}
	os.Remove(filename)
}

func newSetCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "set"}
	cmd.Flags().AddFlagSet(prefsSetCmd.Flags())
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cmd
}

func TestApplyPrefsFlags(t *testing.T) {
	prefs := &matching.Preferences{
		RoleKeywords:    "java",
		ExperienceLevel: matching.ExperienceMid,
		Skills:          "spring",
	}

	cmd := newSetCmd(t,
		"--keywords", "react, frontend",
		"--locations", "Bangalore, Pune",
		"--modes", "Remote,Hybrid",
		"--experience", "",
	)
	if err := applyPrefsFlags(cmd, prefs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := &matching.Preferences{
		RoleKeywords:       "react, frontend",
		PreferredLocations: []string{"Bangalore", "Pune"},
		PreferredMode:      []matching.WorkMode{matching.ModeRemote, matching.ModeHybrid},
		ExperienceLevel:    "",
		Skills:             "spring",
	}
	if !reflect.DeepEqual(prefs, expected) {
		t.Fatalf("expected %+v, got %+v", expected, prefs)
	}
}

func TestWarnUnknownLabels(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	warnUnknownLabels(zap.New(core), &matching.Preferences{
		PreferredMode:   []matching.WorkMode{matching.ModeRemote, "remote"},
		ExperienceLevel: "Senoir",
	})

	if observed.Len() != 2 {
		t.Fatalf("expected 2 warnings, got %d", observed.Len())
	}
}

func TestValidateModes(t *testing.T) {
	if err := validateModes("Remote, Onsite"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateModes(""); err != nil {
		t.Fatalf("empty input must be allowed, got %v", err)
	}
	if err := validateModes("Remote, Anywhere"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" Bangalore, ,Pune ,")
	if !reflect.DeepEqual(got, []string{"Bangalore", "Pune"}) {
		t.Fatalf("unexpected list: %v", got)
	}
	if joinModes([]matching.WorkMode{matching.ModeRemote, matching.ModeOnsite}) != "Remote, Onsite" {
		t.Fatalf("unexpected joined modes")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf, true)
	if buf.String() != version+"\n" {
		t.Fatalf("unexpected short version: %q", buf.String())
	}

	buf.Reset()
	printVersion(&buf, false)
	if !strings.HasPrefix(buf.String(), app+" version: "+version) {
		t.Fatalf("unexpected version: %q", buf.String())
	}
}

func TestRedisURLSource(t *testing.T) {
	t.Setenv(redisURLEnv, "redis://from-env:6379/0")

	url, err := secrets.Load(redisURLSource(&RedisConfig{URL: "redis://from-config:6379/0"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "redis://from-env:6379/0" {
		t.Fatalf("expected environment to win over config, got %q", url)
	}

	file := filepath.Join(t.TempDir(), "redis-url")
	if err := os.WriteFile(file, []byte("redis://from-file:6379/0\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	url, err = secrets.Load(redisURLSource(&RedisConfig{URLFile: file}))
	if err != nil || url != "redis://from-file:6379/0" {
		t.Fatalf("expected file to win, got %q err=%v", url, err)
	}

	t.Setenv(redisURLEnv, "")
	if _, err := secrets.Load(redisURLSource(nil)); err == nil {
		t.Fatalf("expected error when no source is set")
	}
}
