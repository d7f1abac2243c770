package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-showcase/pkg/model"
)

func contactDefinition() model.FormDefinition {
	return model.FormDefinition{
		Name: "contact",
		Fields: []model.FieldDefinition{
			{Name: "name", Kind: model.FieldKindText},
			{Name: "email", Kind: model.FieldKindEmail},
			{Name: "role", Kind: model.FieldKindSelect, Options: []model.Option{{Value: "dev"}, {Value: "ops"}}, Default: ptr(model.Text("dev"))},
			{Name: "subscribe", Kind: model.FieldKindCheckbox, Default: ptr(model.Bool(true))},
		},
	}
}

func ptr(v model.Value) *model.Value { return &v }

func requireText(message string) Validator {
	return func(v model.Value) error {
		if v.IsEmpty() {
			return errors.New(message)
		}
		return nil
	}
}

type recordingSubmitter struct {
	mu     sync.Mutex
	calls  int
	values map[string]any
	err    error
}

func (r *recordingSubmitter) submit(_ context.Context, values map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.values = values
	return r.err
}

func TestEngine_SubmitWithInvalidFieldSkipsCallback(t *testing.T) {
	submitter := &recordingSubmitter{}
	engine, err := New(contactDefinition(),
		WithSchema(Schema{
			"name":  requireText("Name is required"),
			"email": requireText("Email is required"),
		}),
		WithSubmit(submitter.submit),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.SetFieldValue("email", model.Text("ada@example.com")); err != nil {
		t.Fatalf("set value: %v", err)
	}

	err = engine.Submit(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if submitter.calls != 0 {
		t.Fatalf("submit callback must not be called, got %d calls", submitter.calls)
	}

	state := engine.State()
	if diff := cmp.Diff(map[string]string{"name": "Name is required"}, state.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if state.IsSubmitting {
		t.Fatalf("isSubmitting must end false")
	}
	if state.SubmitError != "" {
		t.Fatalf("validation failure must not set submit error, got %q", state.SubmitError)
	}
}

func TestEngine_SubmitSuccessPassesFlatValues(t *testing.T) {
	submitter := &recordingSubmitter{}
	engine, err := New(contactDefinition(), WithSubmit(submitter.submit))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_ = engine.SetFieldValue("name", model.Text("Ada"))
	_ = engine.SetFieldValue("email", model.Text("ada@example.com"))

	if err := engine.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := map[string]any{
		"name":      "Ada",
		"email":     "ada@example.com",
		"role":      "dev",
		"subscribe": true,
	}
	if diff := cmp.Diff(want, submitter.values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	state := engine.State()
	if !state.IsSubmitted || state.IsSubmitting {
		t.Fatalf("unexpected flags: submitted=%v submitting=%v", state.IsSubmitted, state.IsSubmitting)
	}
}

func TestEngine_SubmitCallbackErrorKeepsValues(t *testing.T) {
	submitter := &recordingSubmitter{err: errors.New("X")}
	engine, err := New(contactDefinition(), WithSubmit(submitter.submit))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_ = engine.SetFieldValue("name", model.Text("Grace"))

	err = engine.Submit(context.Background())
	if err == nil || !errors.Is(err, submitter.err) {
		t.Fatalf("expected wrapped callback error, got %v", err)
	}

	state := engine.State()
	if state.SubmitError != "X" {
		t.Fatalf("expected submit error X, got %q", state.SubmitError)
	}
	if got := state.Fields["name"].Value.Text(); got != "Grace" {
		t.Fatalf("values must remain as entered, got %q", got)
	}
	if state.IsSubmitting || state.IsSubmitted {
		t.Fatalf("unexpected flags after failure: %#v", state)
	}
}

func TestEngine_SubmitErrorWithoutMessageUsesFallback(t *testing.T) {
	engine, err := New(contactDefinition(), WithSubmit(func(context.Context, map[string]any) error {
		return errors.New("  ")
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_ = engine.Submit(context.Background())
	if got := engine.State().SubmitError; got != DefaultSubmitErrorMessage {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestEngine_ConcurrentSubmitRejected(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	engine, err := New(contactDefinition(), WithSubmit(func(ctx context.Context, _ map[string]any) error {
		close(entered)
		<-release
		return nil
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- engine.Submit(context.Background()) }()
	<-entered

	if !engine.State().IsSubmitting {
		t.Fatalf("expected submitting state while callback is pending")
	}
	if err := engine.Submit(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestEngine_SubmitCallbackPanicSettles(t *testing.T) {
	calls := 0
	engine, err := New(contactDefinition(), WithSubmit(func(context.Context, map[string]any) error {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	err = engine.Submit(context.Background())
	if !errors.Is(err, ErrSubmitPanicked) {
		t.Fatalf("expected ErrSubmitPanicked, got %v", err)
	}
	state := engine.State()
	if state.IsSubmitting || state.IsSubmitted {
		t.Fatalf("unexpected flags after panic: submitting=%v submitted=%v", state.IsSubmitting, state.IsSubmitted)
	}
	if state.SubmitError != DefaultSubmitErrorMessage {
		t.Fatalf("submit error = %q, want %q", state.SubmitError, DefaultSubmitErrorMessage)
	}

	if err := engine.Submit(context.Background()); err != nil {
		t.Fatalf("submit after panic: %v", err)
	}
	if !engine.State().IsSubmitted {
		t.Fatalf("expected second submit to succeed")
	}
}

func TestEngine_ResetDuringPendingSubmit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	engine, err := New(contactDefinition(), WithSubmit(func(ctx context.Context, _ map[string]any) error {
		entered <- struct{}{}
		<-release
		return nil
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_ = engine.SetFieldValue("name", model.Text("Ada"))

	done := make(chan error, 1)
	go func() { done <- engine.Submit(context.Background()) }()
	<-entered

	state := engine.Reset()
	if !state.IsSubmitting {
		t.Fatalf("reset must keep the pending submission")
	}
	if got := state.Fields["name"].Value.Text(); got != "" {
		t.Fatalf("name = %q, want reset value", got)
	}
	if err := engine.Submit(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress after reset, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	state = engine.State()
	if state.IsSubmitting || state.IsSubmitted || state.SubmitError != "" {
		t.Fatalf("stale completion leaked into reset form: %#v", state)
	}

	if err := engine.Submit(context.Background()); err != nil {
		t.Fatalf("submit after settle: %v", err)
	}
	if !engine.State().IsSubmitted {
		t.Fatalf("expected fresh submission to complete")
	}
}

func TestEngine_ResetRestoresInitialValues(t *testing.T) {
	engine, err := New(contactDefinition(),
		WithInitialValues(map[string]model.Value{"name": model.Text("Initial")}),
		WithSchema(Schema{"email": requireText("Email is required")}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_ = engine.SetFieldValue("name", model.Text("Changed"))
	_ = engine.SetFieldValue("subscribe", model.Bool(false))
	_ = engine.Submit(context.Background())

	state := engine.Reset()
	for _, name := range state.Order {
		field := state.Fields[name]
		if field.Touched || field.Error != "" {
			t.Fatalf("field %s not reset: %#v", name, field)
		}
	}
	if got := state.Fields["name"].Value.Text(); got != "Initial" {
		t.Fatalf("expected initial value restored, got %q", got)
	}
	if got := state.Fields["subscribe"].Value; !got.Equal(model.Bool(true)) {
		t.Fatalf("expected checkbox default restored as bool, got %#v", got)
	}
	if got := state.Fields["role"].Value.Text(); got != "dev" {
		t.Fatalf("expected select default restored, got %q", got)
	}
}

func TestEngine_BlurFieldValidates(t *testing.T) {
	engine, err := New(contactDefinition(), WithSchema(Schema{"name": requireText("Name is required")}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	msg, err := engine.BlurField("name")
	if err != nil {
		t.Fatalf("blur: %v", err)
	}
	if msg != "Name is required" {
		t.Fatalf("unexpected message %q", msg)
	}
	field := engine.State().Fields["name"]
	if !field.Touched || field.Error != "Name is required" {
		t.Fatalf("unexpected field after blur: %#v", field)
	}

	_ = engine.SetFieldValue("name", model.Text("Ada"))
	if got := engine.State().Fields["name"].Error; got != "" {
		t.Fatalf("SetFieldValue must clear error, got %q", got)
	}
}

func TestEngine_ValidateFieldWithoutValidatorIsValid(t *testing.T) {
	engine, err := New(contactDefinition())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if msg := engine.ValidateField("email", model.Text("")); msg != "" {
		t.Fatalf("expected valid, got %q", msg)
	}
}

func TestEngine_UnknownFieldErrors(t *testing.T) {
	engine, err := New(contactDefinition())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.SetFieldValue("nope", model.Text("x")); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := New(contactDefinition(), WithSchema(Schema{"nope": requireText("x")})); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected schema with unknown field to fail, got %v", err)
	}
}

func TestEngine_ListenersObserveTransitions(t *testing.T) {
	engine, err := New(contactDefinition())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	var seen []bool
	unsubscribe := engine.Subscribe(func(s State) {
		seen = append(seen, s.IsSubmitting)
	})
	_ = engine.Submit(context.Background())
	unsubscribe()
	_ = engine.SetFieldValue("name", model.Text("ignored"))

	if diff := cmp.Diff([]bool{true, false}, seen); diff != "" {
		t.Fatalf("listener transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_CheckboxValueCoerced(t *testing.T) {
	engine, err := New(contactDefinition())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_ = engine.SetFieldValue("subscribe", model.Text("on"))
	if got := engine.State().Values()["subscribe"]; got != true {
		t.Fatalf("expected bool true, got %#v", got)
	}
}
