package logger

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel/trace"
)

// Printf logs through the standard logger and prefixes the line with the
// trace and span ids carried by ctx, if any.
func Printf(ctx context.Context, format string, args ...any) {
	log.Print(prefix(ctx) + fmt.Sprintf(format, args...))
}

func prefix(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return fmt.Sprintf("trace_id=%s span_id=%s ", sc.TraceID(), sc.SpanID())
}
