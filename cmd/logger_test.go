package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLogger(t *testing.T) {
	defer func(old string) { *logLevel = old }(*logLevel)

	*logLevel = "info"
	var buf bytes.Buffer
	log, err := NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("hidden")
	log.Info().Str("account", "a1").Msg("shown")
	if got := buf.String(); strings.Contains(got, "hidden") || !strings.Contains(got, "shown") || !strings.Contains(got, "account=") {
		t.Errorf("NewLogger() output = %q", got)
	}

	*logLevel = "loud"
	if _, err := NewLogger(&buf); err == nil {
		t.Error("NewLogger() with an unknown level: want an error")
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), NewWithWriter(&buf))
	log := FromContext(ctx)
	log.Info().Msg("test")
	if buf.Len() == 0 {
		t.Error("expected log output from the logger in the context")
	}

	if FromContext(context.Background()).GetLevel() != zerolog.WarnLevel {
		t.Error("default logger should report warnings")
	}
}
