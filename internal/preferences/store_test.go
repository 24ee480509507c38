package preferences

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/job-matcher/internal/kv"
	"github.com/spigell/job-matcher/internal/matching"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingKV) Set(context.Context, string, string) error { return errors.New("read-only") }

func (failingKV) Close() error { return nil }

func TestLoadMissing(t *testing.T) {
	store := New(kv.NewMemory(), "", nil)

	if store.Key() != DefaultKey {
		t.Fatalf("expected default key, got %q", store.Key())
	}
	if prefs := store.Load(context.Background()); prefs != nil {
		t.Fatalf("expected nil preferences, got %+v", prefs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := New(kv.NewMemory(), "", zap.NewNop())

	saved := &matching.Preferences{
		RoleKeywords:       "react, frontend",
		PreferredLocations: []string{"Bangalore", "Pune"},
		PreferredMode:      []matching.WorkMode{matching.ModeRemote},
		ExperienceLevel:    matching.ExperienceSenior,
		Skills:             "react, typescript",
	}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded := store.Load(ctx)
	if !reflect.DeepEqual(loaded, saved) {
		t.Fatalf("expected %+v, got %+v", saved, loaded)
	}

	saved.Skills = "go"
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Load(ctx).Skills; got != "go" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func TestSerializedShape(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	store := New(backend, "", nil)

	err := store.Save(ctx, &matching.Preferences{
		RoleKeywords:       "go",
		PreferredLocations: []string{"Pune"},
		PreferredMode:      []matching.WorkMode{matching.ModeHybrid},
		ExperienceLevel:    matching.ExperienceMid,
		Skills:             "docker",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, ok, _ := backend.Get(ctx, DefaultKey)
	if !ok {
		t.Fatalf("expected record under %s", DefaultKey)
	}

	expected := `{"roleKeywords":"go","preferredLocations":["Pune"],"preferredMode":["Hybrid"],"experienceLevel":"Mid","skills":"docker"}`
	if raw != expected {
		t.Fatalf("unexpected serialized form:\n%s", raw)
	}
}

func TestLoadCorruptIsAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{roleKeywords: react"},
		{name: "wrong type", raw: `{"preferredLocations": "Bangalore"}`},
		{name: "null", raw: "null"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			backend := kv.NewMemory()
			_ = backend.Set(ctx, DefaultKey, tt.raw)

			if prefs := New(backend, "", nil).Load(ctx); prefs != nil {
				t.Fatalf("expected nil preferences, got %+v", prefs)
			}
		})
	}
}

func TestLoadBackendErrorIsAbsent(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	store := New(failingKV{}, "custom", zap.New(core))

	if prefs := store.Load(context.Background()); prefs != nil {
		t.Fatalf("expected nil preferences, got %+v", prefs)
	}

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if entries[0].ContextMap()["preferences_key"] != "custom" {
		t.Fatalf("expected key field, got %v", entries[0].ContextMap())
	}

	if err := store.Save(context.Background(), &matching.Preferences{}); err == nil {
		t.Fatalf("expected save error from backend")
	}
}
