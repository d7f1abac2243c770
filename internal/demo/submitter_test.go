package demo

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/model"
)

func TestSubmitter_AcceptsBelowFailureRate(t *testing.T) {
	var buf bytes.Buffer
	s := &Submitter{FailureRate: 0.5, Roll: func() float64 { return 0.9 }, Logger: log.New(&buf, "", 0)}
	if err := s.Submit(context.Background(), map[string]any{"email": "ada@example.com"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !strings.Contains(buf.String(), "accepted submission with 1 fields") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestSubmitter_RejectsWithinFailureRate(t *testing.T) {
	s := &Submitter{FailureRate: 0.5, Roll: func() float64 { return 0.1 }}
	err := s.Func()(context.Background(), nil)
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	var userErr *form.UserError
	if !errors.As(err, &userErr) || userErr.Message != RejectedMessage {
		t.Fatalf("expected display message %q, got %v", RejectedMessage, err)
	}
}

func TestSubmitter_RejectionShownOnForm(t *testing.T) {
	def := model.FormDefinition{
		Name:   "demo",
		Fields: []model.FieldDefinition{{Name: "email", Kind: model.FieldKindEmail}},
	}
	s := &Submitter{FailureRate: 1, Roll: func() float64 { return 0 }}
	engine, err := form.New(def, form.WithSubmit(s.Func()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Submit(context.Background()); !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if got := engine.State().SubmitError; got != RejectedMessage {
		t.Fatalf("submit error = %q, want %q", got, RejectedMessage)
	}
}

func TestSubmitter_ZeroRateNeverRolls(t *testing.T) {
	s := &Submitter{Roll: func() float64 {
		t.Fatalf("roll should not be consulted")
		return 0
	}}
	if err := s.Submit(context.Background(), nil); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestSubmitter_DelayHonoursCancellation(t *testing.T) {
	s := &Submitter{Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Submit(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
