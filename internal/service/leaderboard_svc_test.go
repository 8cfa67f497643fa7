package service

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/omega1entertainment/KOSCOCO-sub001/internal/model"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func baseTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestComputeStandings_MaxEveryAxisScoresHundred(t *testing.T) {
	signals := []model.VideoSignals{
		{VideoID: "vid-a", CreatedAt: baseTime(), FreeVotes: 40, PaidVotes: 10,
			JudgeCount: 2, CreativitySum: 20, QualitySum: 20},
	}

	entries := ComputeStandings(signals)

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	// normalized votes = 1.0, avgCreativity = 10, avgQuality = 10
	// overall = 60*1.0 + 30*1.0 + 10*1.0 = 100
	if entries[0].OverallScore != 100.0 {
		t.Errorf("overall = %.2f, want 100.00", entries[0].OverallScore)
	}
}

func TestComputeStandings_AllZeroSignals(t *testing.T) {
	signals := []model.VideoSignals{
		{VideoID: "vid-a", CreatedAt: baseTime()},
		{VideoID: "vid-b", CreatedAt: baseTime().Add(time.Hour)},
	}

	entries := ComputeStandings(signals)

	for _, e := range entries {
		if e.OverallScore != 0 {
			t.Errorf("%s overall = %.2f, want 0.00", e.VideoID, e.OverallScore)
		}
		if e.VoteCount != 0 || e.AvgCreativity != 0 || e.AvgQuality != 0 {
			t.Errorf("%s should render explicit zeros, got %+v", e.VideoID, e)
		}
	}
	// Zero max vote count must not divide by zero; older video ranks first.
	if entries[0].VideoID != "vid-a" {
		t.Errorf("rank 1 = %s, want vid-a (earlier submission)", entries[0].VideoID)
	}
}

func TestComputeStandings_PaidVoteAdditivity(t *testing.T) {
	// 3 free votes plus paid quantities 5 and 10 (summed upstream) → 18.
	signals := []model.VideoSignals{
		{VideoID: "vid-a", CreatedAt: baseTime(), FreeVotes: 3, PaidVotes: 15},
	}

	entries := ComputeStandings(signals)

	if entries[0].VoteCount != 18 {
		t.Errorf("voteCount = %d, want 18", entries[0].VoteCount)
	}
}

func TestComputeStandings_JudgeAveraging(t *testing.T) {
	// Judges scored (creativity 8, quality 6) and (creativity 4, quality 10).
	signals := []model.VideoSignals{
		{VideoID: "vid-a", CreatedAt: baseTime(),
			JudgeCount: 2, CreativitySum: 12, QualitySum: 16},
	}

	entries := ComputeStandings(signals)

	if entries[0].AvgCreativity != 6.0 {
		t.Errorf("avgCreativity = %.2f, want 6.00", entries[0].AvgCreativity)
	}
	if entries[0].AvgQuality != 8.0 {
		t.Errorf("avgQuality = %.2f, want 8.00", entries[0].AvgQuality)
	}
}

func TestComputeStandings_VoteNormalization(t *testing.T) {
	signals := []model.VideoSignals{
		{VideoID: "leader", CreatedAt: baseTime(), FreeVotes: 200},
		{VideoID: "half", CreatedAt: baseTime(), FreeVotes: 100},
	}

	entries := ComputeStandings(signals)

	// leader: normalized 1.0 → 60; half: normalized 0.5 → 30.
	if !almostEqual(entries[0].OverallScore, 60.0, 0.001) {
		t.Errorf("leader overall = %.2f, want 60.00", entries[0].OverallScore)
	}
	if !almostEqual(entries[1].OverallScore, 30.0, 0.001) {
		t.Errorf("half overall = %.2f, want 30.00", entries[1].OverallScore)
	}
}

func TestComputeStandings_JudgesAloneCapAtForty(t *testing.T) {
	// With zero votes everywhere, perfect judge scores reach 30+10 only.
	signals := []model.VideoSignals{
		{VideoID: "vid-a", CreatedAt: baseTime(),
			JudgeCount: 3, CreativitySum: 30, QualitySum: 30},
	}

	entries := ComputeStandings(signals)

	if !almostEqual(entries[0].OverallScore, 40.0, 0.001) {
		t.Errorf("overall = %.2f, want 40.00 (30%% creativity + 10%% quality)", entries[0].OverallScore)
	}
}

func TestComputeStandings_WeightedMix(t *testing.T) {
	signals := []model.VideoSignals{
		{VideoID: "few-votes-high-judges", CreatedAt: baseTime(),
			FreeVotes: 50, JudgeCount: 1, CreativitySum: 10, QualitySum: 10},
		{VideoID: "max-votes-low-judges", CreatedAt: baseTime(),
			FreeVotes: 100, JudgeCount: 1, CreativitySum: 2, QualitySum: 10},
	}
	// max-votes: 60*1.0 + 30*0.2 + 10*1.0 = 76
	// few-votes: 60*0.5 + 30*1.0 + 10*1.0 = 70

	entries := ComputeStandings(signals)

	if entries[0].VideoID != "max-votes-low-judges" {
		t.Errorf("rank 1 = %s, want max-votes-low-judges", entries[0].VideoID)
	}
	if !almostEqual(entries[0].OverallScore, 76.0, 0.001) {
		t.Errorf("rank 1 overall = %.2f, want 76.00", entries[0].OverallScore)
	}
	if !almostEqual(entries[1].OverallScore, 70.0, 0.001) {
		t.Errorf("rank 2 overall = %.2f, want 70.00", entries[1].OverallScore)
	}
}

func TestComputeStandings_ScoreTieBreaksOnRawVoteCount(t *testing.T) {
	signals := []model.VideoSignals{
		{VideoID: "half-votes-max-judges", CreatedAt: baseTime(),
			FreeVotes: 50, JudgeCount: 1, CreativitySum: 10},
		{VideoID: "max-votes-no-judges", CreatedAt: baseTime().Add(time.Hour),
			FreeVotes: 100},
	}
	// max-votes: 60*1.0 = 60.0
	// half-votes: 60*0.5 + 30*1.0 = 60.0 — equal overall, fewer raw votes.

	entries := ComputeStandings(signals)

	if entries[0].OverallScore != entries[1].OverallScore {
		t.Fatalf("test setup broken: overall %.4f vs %.4f should tie",
			entries[0].OverallScore, entries[1].OverallScore)
	}
	if entries[0].VideoID != "max-votes-no-judges" {
		t.Errorf("rank 1 = %s, want max-votes-no-judges (higher raw count)", entries[0].VideoID)
	}
}

func TestComputeStandings_FullTieRanksEarlierSubmissionFirst(t *testing.T) {
	older := baseTime()
	newer := baseTime().Add(48 * time.Hour)

	signals := []model.VideoSignals{
		{VideoID: "newer", CreatedAt: newer, FreeVotes: 10},
		{VideoID: "older", CreatedAt: older, FreeVotes: 10},
	}

	entries := ComputeStandings(signals)

	if entries[0].VideoID != "older" {
		t.Errorf("rank 1 = %s, want older", entries[0].VideoID)
	}

	// Swapping ledger insertion order must not change the outcome.
	swapped := []model.VideoSignals{signals[1], signals[0]}
	entriesSwapped := ComputeStandings(swapped)

	if !reflect.DeepEqual(entries, entriesSwapped) {
		t.Errorf("insertion order changed the ranking:\n  %+v\nvs\n  %+v", entries, entriesSwapped)
	}
}

func TestComputeStandings_Deterministic(t *testing.T) {
	signals := []model.VideoSignals{
		{VideoID: "a", CreatedAt: baseTime(), FreeVotes: 7, PaidVotes: 3,
			JudgeCount: 2, CreativitySum: 11, QualitySum: 9},
		{VideoID: "b", CreatedAt: baseTime().Add(time.Minute), FreeVotes: 10},
		{VideoID: "c", CreatedAt: baseTime().Add(2 * time.Minute), FreeVotes: 10},
		{VideoID: "d", CreatedAt: baseTime(), PaidVotes: 10},
	}

	first := ComputeStandings(signals)
	second := ComputeStandings(signals)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same snapshot differ:\n  %+v\nvs\n  %+v", first, second)
	}
}

func TestComputeStandings_RankContiguity(t *testing.T) {
	var signals []model.VideoSignals
	ids := []string{"v1", "v2", "v3", "v4", "v5", "v6", "v7"}
	for i, id := range ids {
		signals = append(signals, model.VideoSignals{
			VideoID:   id,
			CreatedAt: baseTime().Add(time.Duration(i) * time.Minute),
			FreeVotes: i * 3 % 5, // mix of ties and distinct counts
		})
	}

	entries := ComputeStandings(signals)

	if len(entries) != len(ids) {
		t.Fatalf("entries = %d, want %d", len(entries), len(ids))
	}
	seen := make(map[int]bool)
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("position %d has rank %d, want %d", i, e.Rank, i+1)
		}
		if seen[e.Rank] {
			t.Errorf("duplicate rank %d", e.Rank)
		}
		seen[e.Rank] = true
	}
}

func TestComputeStandings_EmptyInput(t *testing.T) {
	entries := ComputeStandings(nil)

	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestValidateScope(t *testing.T) {
	pos := int64(3)
	zero := int64(0)
	neg := int64(-1)

	tests := []struct {
		name    string
		scope   model.Scope
		wantErr bool
	}{
		{"unscoped", model.Scope{}, false},
		{"category only", model.Scope{CategoryID: &pos}, false},
		{"phase only", model.Scope{PhaseID: &pos}, false},
		{"both", model.Scope{CategoryID: &pos, PhaseID: &pos}, false},
		{"zero category", model.Scope{CategoryID: &zero}, true},
		{"negative phase", model.Scope{PhaseID: &neg}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScope(tt.scope)
			if tt.wantErr && err == nil {
				t.Error("expected ErrInvalidScope, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
