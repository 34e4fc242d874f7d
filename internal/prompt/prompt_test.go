package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestTranslateSurveyErr(t *testing.T) {
	if got := translateSurveyErr(fmt.Errorf("wrapped: %w", terminal.InterruptErr)); !errors.Is(got, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", got)
	}
	other := errors.New("boom")
	if got := translateSurveyErr(other); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestIndexOf(t *testing.T) {
	options := []string{"text", "email", "select"}
	if got := indexOf(options, "email"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := indexOf(options, "name"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestSelectHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSurvey().Select(ctx, SelectConfig{Options: []string{"a"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
