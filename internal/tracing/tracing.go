package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/aivrasol/aiva")

// TraceSend wraps one provider send in a span carrying the provider name,
// model identifier, and the number of conversation messages forwarded.
func TraceSend(
	ctx context.Context,
	provider string,
	modelID string,
	messageCount int,
	fn func(context.Context) (string, error),
) (string, error) {
	ctx, span := tracer.Start(ctx, "chat.send "+provider, trace.WithAttributes(
		attribute.String("chat.provider", provider),
		attribute.String("chat.model_id", modelID),
		attribute.Int("chat.message_count", messageCount),
	))
	defer span.End()

	reply, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("chat.reply_length", len(reply)))
	return reply, nil
}
