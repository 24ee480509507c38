package matching

import (
	"encoding/json"
	"testing"
)

func TestScoreTierBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  int
		expect Tier
	}{
		{score: 0, expect: TierPoor},
		{score: 39, expect: TierPoor},
		{score: 40, expect: TierLow},
		{score: 59, expect: TierLow},
		{score: 60, expect: TierMid},
		{score: 79, expect: TierMid},
		{score: 80, expect: TierHigh},
		{score: 100, expect: TierHigh},
	}

	for _, tt := range tests {
		if got := ScoreTier(tt.score); got != tt.expect {
			t.Fatalf("score %d: expected %s, got %s", tt.score, tt.expect, got)
		}
	}
}

func TestScoreTierPartitionsRange(t *testing.T) {
	counts := map[Tier]int{}
	prev := TierPoor
	for score := 0; score <= MaxScore; score++ {
		tier := ScoreTier(score)
		if _, ok := tierLabels[tier]; !ok {
			t.Fatalf("score %d mapped to unknown tier %d", score, tier)
		}
		if tier < prev {
			t.Fatalf("tier decreased at score %d", score)
		}
		prev = tier
		counts[tier]++
	}

	expected := map[Tier]int{TierPoor: 40, TierLow: 20, TierMid: 20, TierHigh: 21}
	for tier, n := range expected {
		if counts[tier] != n {
			t.Fatalf("expected %d scores in %s, got %d", n, tier, counts[tier])
		}
	}
}

func TestTierText(t *testing.T) {
	out, err := json.Marshal(map[string]Tier{"tier": TierMid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"tier":"mid"}` {
		t.Fatalf("unexpected json: %s", out)
	}

	var decoded map[string]Tier
	if err := json.Unmarshal([]byte(`{"tier":"high"}`), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded["tier"] != TierHigh {
		t.Fatalf("expected high, got %s", decoded["tier"])
	}

	if _, err := ParseTier("excellent"); err == nil {
		t.Fatalf("expected error for unknown label")
	}
}
