package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfClassifiedError(t *testing.T) {
	err := New(KindConflict, "draft %d already advanced", 7)

	if got := KindOf(err); got != KindConflict {
		t.Fatalf("expected KindConflict, got %s", got)
	}
	if err.Error() != "CONFLICT: draft 7 already advanced" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestKindOfSurvivesWrapping(t *testing.T) {
	base := New(KindFailedPrecondition, "quota exhausted")
	wrapped := fmt.Errorf("record choice: %w", base)

	if got := KindOf(wrapped); got != KindFailedPrecondition {
		t.Fatalf("expected KindFailedPrecondition through fmt wrap, got %s", got)
	}
	if !IsKind(wrapped, KindFailedPrecondition) {
		t.Fatalf("IsKind should match through the wrap chain")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := Wrap(KindUnavailable, cause, "load draft")

	if !errors.Is(err, cause) {
		t.Fatalf("wrapped cause should be reachable via errors.Is")
	}
	if got := KindOf(err); got != KindUnavailable {
		t.Fatalf("expected KindUnavailable, got %s", got)
	}
}

func TestUnclassifiedErrorIsInternal(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("expected KindInternal for plain errors, got %s", got)
	}
	if KindOf(nil) != KindInternal {
		t.Fatalf("nil reports KindInternal by definition")
	}
}
