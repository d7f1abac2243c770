package openapi

import (
	"context"
	_ "embed"

	"github.com/goliatone/go-showcase/pkg/model"
)

//go:embed docs/feedback.yaml
var feedbackDocument []byte

// FeedbackOperationID names the operation of the bundled feedback document.
const FeedbackOperationID = "feedback"

// FeedbackDocument returns the bundled OpenAPI document.
func FeedbackDocument() []byte {
	return append([]byte(nil), feedbackDocument...)
}

// Feedback builds the bundled feedback form.
func Feedback(ctx context.Context) (model.FormDefinition, error) {
	return FromDocument(ctx, feedbackDocument, FeedbackOperationID)
}
