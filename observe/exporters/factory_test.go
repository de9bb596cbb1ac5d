package exporters

import (
	"context"
	"testing"
)

func TestNewTracingExporter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		exporter string
		wantErr  bool
	}{
		{"none", "none", false},
		{"empty defaults to none", "", false},
		{"stdout", "stdout", false},
		{"otlp without endpoint", "otlp", true},
		{"jaeger without endpoint", "jaeger", true},
		{"unknown", "zipkin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := NewTracingExporter(ctx, tt.exporter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTracingExporter(%q) error = %v, wantErr %v", tt.exporter, err, tt.wantErr)
			}
			if !tt.wantErr && exp == nil {
				t.Errorf("NewTracingExporter(%q) returned nil exporter", tt.exporter)
			}
		})
	}
}

func TestNewTracingExporter_OTLPWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	exp, err := NewTracingExporter(context.Background(), "otlp")
	if err != nil {
		t.Fatalf("NewTracingExporter(otlp) error = %v", err)
	}
	if exp == nil {
		t.Fatal("NewTracingExporter(otlp) returned nil exporter")
	}
}

func TestNewMetricsReader(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		exporter string
		wantErr  bool
	}{
		{"none", "none", false},
		{"empty defaults to none", "", false},
		{"stdout", "stdout", false},
		{"prometheus", "prometheus", false},
		{"otlp without endpoint", "otlp", true},
		{"unknown", "statsd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewMetricsReader(ctx, tt.exporter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMetricsReader(%q) error = %v, wantErr %v", tt.exporter, err, tt.wantErr)
			}
			if !tt.wantErr && reader == nil {
				t.Errorf("NewMetricsReader(%q) returned nil reader", tt.exporter)
			}
			if reader != nil {
				_ = reader.Shutdown(ctx)
			}
		})
	}
}
