package models

import "testing"

func TestDraftLifecycleHelpers(t *testing.T) {
	draft := Draft{MaxRounds: 3}

	if !draft.IsUnstarted() {
		t.Fatalf("a draft without a round counter is unstarted")
	}
	if draft.Round() != 0 {
		t.Fatalf("unstarted drafts report round 0, got %d", draft.Round())
	}
	if draft.RoundsExhausted() {
		t.Fatalf("unstarted drafts are not exhausted")
	}

	round := 3
	draft.CurrRound = &round
	if draft.IsUnstarted() || draft.RoundsExhausted() {
		t.Fatalf("round 3 of 3 is the final live round")
	}

	round = 4
	if !draft.RoundsExhausted() {
		t.Fatalf("round 4 of 3 means the rounds are exhausted")
	}
}

func TestStudentRankingLabsRoundTrip(t *testing.T) {
	var ranking StudentRanking
	if err := ranking.SetLabIDs([]uint{5, 2, 9}); err != nil {
		t.Fatalf("SetLabIDs failed: %v", err)
	}

	ids, err := ranking.LabIDs()
	if err != nil {
		t.Fatalf("LabIDs failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != 5 || ids[1] != 2 || ids[2] != 9 {
		t.Fatalf("order must survive the JSON column, got %v", ids)
	}
}

func TestStudentRankingEmptyColumn(t *testing.T) {
	var ranking StudentRanking
	ids, err := ranking.LabIDs()
	if err != nil {
		t.Fatalf("LabIDs on empty column failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}
