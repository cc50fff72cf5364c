package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracer_Disabled(t *testing.T) {
	p, err := InitTracer(Config{ServiceName: "fieldbench-test"})
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	defer p.Shutdown(context.Background())

	ctx, span := p.StartSpan(context.Background(), "battery.run", attribute.Int("iterations", 10))
	SetError(ctx, errors.New("workload panicked"))
	span.End()
}

func TestNoop(t *testing.T) {
	p := Noop()
	_, span := p.StartSpan(context.Background(), "battery.group")
	if span.SpanContext().IsValid() {
		t.Error("noop span should not carry a valid span context")
	}
	span.End()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
