package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"parenting-copilot-server/internal/models"
)

var errMockModel = errors.New("model unavailable")

// stubGenerator implements Generator for testing.
type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func testChild() *models.Child {
	return &models.Child{
		BaseModel:   models.BaseModel{ID: "child-1"},
		Name:        "Ava",
		DateOfBirth: "2022-01-01",
		Gender:      models.GenderFemale,
	}
}

func TestPersonalizedTipParsesModelReply(t *testing.T) {
	svc := NewService(&stubGenerator{
		reply: `{"tip":"Sleep early.","milestone":"Walking","safety":"Gate the stairs","nutrition":"More iron"}`,
	})

	tip := svc.PersonalizedTip(context.Background(), testChild(), "checkup next week")
	if tip.Tip != "Sleep early." || tip.Milestone != "Walking" {
		t.Errorf("unexpected tip: %+v", tip)
	}
}

func TestPersonalizedTipStripsCodeFences(t *testing.T) {
	svc := NewService(&stubGenerator{
		reply: "```json\n{\"tip\":\"Fenced.\",\"milestone\":\"m\",\"safety\":\"s\",\"nutrition\":\"n\"}\n```",
	})

	tip := svc.PersonalizedTip(context.Background(), testChild(), "")
	if tip.Tip != "Fenced." {
		t.Errorf("fences not stripped: %+v", tip)
	}
}

func TestPersonalizedTipFallbackOnModelError(t *testing.T) {
	svc := NewService(&stubGenerator{err: errMockModel})

	tip := svc.PersonalizedTip(context.Background(), testChild(), "")
	if tip != fallbackTip() {
		t.Errorf("expected fixed fallback, got %+v", tip)
	}
}

func TestPersonalizedTipUnparsableReplyKeepsText(t *testing.T) {
	svc := NewService(&stubGenerator{reply: "Just drink more water."})

	tip := svc.PersonalizedTip(context.Background(), testChild(), "")
	if tip.Tip != "Just drink more water." {
		t.Errorf("raw text not preserved as tip: %+v", tip)
	}
	if tip.Milestone == "" || tip.Safety == "" || tip.Nutrition == "" {
		t.Error("parse fallback should fill remaining fields")
	}
}

func TestGenerateCarePlanFallbackOnModelError(t *testing.T) {
	svc := NewService(&stubGenerator{err: errMockModel})

	plan := svc.GenerateCarePlan(context.Background(), testChild(), "")
	want := fallbackCarePlan()
	if len(plan.DailyRoutine) != len(want.DailyRoutine) || plan.DailyRoutine[0] != want.DailyRoutine[0] {
		t.Errorf("expected fixed fallback plan, got %+v", plan)
	}
}

func TestHealthInsightFallbackOnModelError(t *testing.T) {
	svc := NewService(&stubGenerator{err: errMockModel})

	analysis := svc.HealthInsight(context.Background(), testChild(), nil)
	if analysis != fallbackAnalysis() {
		t.Errorf("expected fixed fallback analysis, got %+v", analysis)
	}
}

func TestChatPropagatesModelError(t *testing.T) {
	svc := NewService(&stubGenerator{err: errMockModel})

	if _, err := svc.Chat(context.Background(), testChild(), "Why is she crying?", ""); !errors.Is(err, errMockModel) {
		t.Fatalf("expected model error, got %v", err)
	}
}

func TestChatIncludesChildContext(t *testing.T) {
	var captured string
	svc := NewService(&promptCapture{reply: "ok", captured: &captured})

	if _, err := svc.Chat(context.Background(), testChild(), "Why is she crying?", ""); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(captured, "Ava") {
		t.Error("prompt missing child name")
	}
	if !strings.Contains(captured, "General parenting question") {
		t.Error("prompt missing default context")
	}
}

func TestDailySummaryPropagatesModelError(t *testing.T) {
	svc := NewService(&stubGenerator{err: errMockModel})

	_, err := svc.DailySummary(context.Background(), testChild(), nil, nil, nil)
	if !errors.Is(err, errMockModel) {
		t.Fatalf("expected model error, got %v", err)
	}
}

// promptCapture records the prompt it is given.
type promptCapture struct {
	reply    string
	captured *string
}

func (p *promptCapture) GenerateText(ctx context.Context, prompt string) (string, error) {
	*p.captured = prompt
	return p.reply, nil
}
