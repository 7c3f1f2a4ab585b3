package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   log.Level
		debug   bool
		wantLog bool
	}{
		{log.InfoLevel, false, true},
		{log.InfoLevel, true, false},
		{log.DebugLevel, true, true},
		{log.WarnLevel, false, false},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := newLogger(&buf, tt.level)
		if tt.debug {
			logger.Debug("loaded inventory", "nodes", 3)
		} else {
			logger.Info("loaded inventory", "nodes", 3)
		}
		if got := buf.Len() > 0; got != tt.wantLog {
			t.Errorf("level %v debug=%v: logged = %v, want %v", tt.level, tt.debug, got, tt.wantLog)
		}
		if tt.wantLog && !strings.Contains(buf.String(), "nodes=3") {
			t.Errorf("structured field missing from %q", buf.String())
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Mapped 3 nodes into 3 instances")

	out := buf.String()
	if !strings.Contains(out, "Mapped 3 nodes into 3 instances (") {
		t.Errorf("progress output %q should carry message and duration", out)
	}
	if !strings.Contains(out, "ms)") {
		t.Errorf("duration should be rounded to milliseconds: %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
}
