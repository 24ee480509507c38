package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	filled := filepath.Join(dir, "redis-url")
	if err := os.WriteFile(filled, []byte("  redis://localhost:6379/0\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Setenv("JOB_MATCHER_TEST_SECRET", " from-env ")

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr string
	}{
		{
			name:   "file wins",
			src:    Source{Name: "redis url", File: filled, Env: "JOB_MATCHER_TEST_SECRET", Value: "inline"},
			expect: "redis://localhost:6379/0",
		},
		{
			name:   "env before value",
			src:    Source{Env: "JOB_MATCHER_TEST_SECRET", Value: "inline"},
			expect: "from-env",
		},
		{
			name:   "unset env falls back to value",
			src:    Source{Env: "JOB_MATCHER_TEST_UNSET", Value: " inline "},
			expect: "inline",
		},
		{
			name:    "empty file",
			src:     Source{Name: "redis url", File: empty, Value: "inline"},
			wantErr: "is empty",
		},
		{
			name:    "missing file",
			src:     Source{File: filepath.Join(dir, "nope")},
			wantErr: "reading secret",
		},
		{
			name:    "nothing configured",
			src:     Source{Name: "redis url"},
			wantErr: "redis url is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
