package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type entrypointConfig struct {
	Port int `env:"MAGNATE_ENTRYPOINT_TEST_PORT" envDefault:"8080"`
}

func TestParseConfigNilTarget(t *testing.T) {
	if err := ParseConfig[entrypointConfig](nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestParseConfigFromArgs(t *testing.T) {
	t.Setenv("MAGNATE_ENTRYPOINT_TEST_PORT", "9999")

	var cfg entrypointConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "listen port")

	if err := ParseConfigFromArgs(&cfg, fs, []string{"-port", "7777"}); err != nil {
		t.Fatalf("ParseConfigFromArgs: %v", err)
	}
	if cfg.Port != 7777 {
		t.Fatalf("cfg.Port = %d, want flag override 7777", cfg.Port)
	}
}

func TestParseArgsNilFlagSet(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected error for nil flag set")
	}
}

func TestRunWithTelemetryRequiresService(t *testing.T) {
	err := RunWithTelemetry(context.Background(), "  ", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for empty service name")
	}
}

func TestRunWithTelemetryRequiresRun(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "magnate", nil); err == nil {
		t.Fatal("expected error for nil run function")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	t.Setenv("MAGNATE_OTEL_ENDPOINT", "")

	want := errors.New("listener closed")
	err := RunWithTelemetry(context.Background(), "magnate", func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
