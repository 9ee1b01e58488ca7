package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"lab-draft-api/apperrors"
)

func TestSubmitRankingRejectsDuplicateLabs(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	_, err := NewRankingService(db).Submit(1, "a@uni.edu", []uint{3, 4, 3})
	if !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument for duplicate lab ids, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitRankingRejectsEmptyList(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	_, err := NewRankingService(db).Submit(1, "a@uni.edu", nil)
	if !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument for empty ranking, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitRankingRejectsUnknownLab(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .drafts. WHERE draft_id = `),
			columns: draftColumns(),
			rows:    [][]driver.Value{draftRow(1, nil, 3)},
		},
		// Only one of the two requested labs exists.
		countStep("labs", 1),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewRankingService(db).Submit(1, "a@uni.edu", []uint{3, 99})
	if !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument for unknown lab, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitRankingRejectsOverlongList(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .drafts. WHERE draft_id = `),
			columns: draftColumns(),
			rows:    [][]driver.Value{draftRow(1, nil, 2)},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewRankingService(db).Submit(1, "a@uni.edu", []uint{1, 2, 3})
	if !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument when ranking exceeds max rounds, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitRankingWindowClosedAfterRoundOne(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .drafts. WHERE draft_id = `),
			columns: draftColumns(),
			rows:    [][]driver.Value{draftRow(1, int64(2), 3)},
		},
		countStep("student_rankings", 1),
		countStep("faculty_choices", 0),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewRankingService(db).Submit(1, "late@uni.edu", []uint{3})
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Fatalf("expected InvalidState after round 1, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitRankingConflictsWithExisting(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .drafts. WHERE draft_id = `),
			columns: draftColumns(),
			rows:    [][]driver.Value{draftRow(1, nil, 3)},
		},
		countStep("labs", 2),
		countStep("student_rankings", 1),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewRankingService(db).Submit(1, "a@uni.edu", []uint{3, 4})
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("expected Conflict on second ranking, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitRankingPersistsAndEmitsEvent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .drafts. WHERE draft_id = `),
			columns: draftColumns(),
			rows:    [][]driver.Value{draftRow(1, nil, 3)},
		},
		countStep("labs", 2),
		countStep("student_rankings", 0),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .student_rankings.`),
			result:  scriptedResult{lastInsertID: 7, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .notification_events.`),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	ranking, err := NewRankingService(db).Submit(1, " A@Uni.EDU ", []uint{3, 4})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if ranking.RankingID != 7 {
		t.Fatalf("expected ranking id 7, got %d", ranking.RankingID)
	}
	if ranking.Student != "a@uni.edu" {
		t.Fatalf("student identity should be normalized, got %q", ranking.Student)
	}

	ids, err := ranking.LabIDs()
	if err != nil {
		t.Fatalf("decode labs: %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 4 {
		t.Fatalf("lab order must be preserved, got %v", ids)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
