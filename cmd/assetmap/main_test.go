package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/matzehuels/assetmap/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), exitInterrupted},
		{"duplicate node", apperrors.New(apperrors.ErrCodeDuplicateNode, "node %q repeated", "A"), exitInvalidInput},
		{"bad format", fmt.Errorf("flags: %w", apperrors.New(apperrors.ErrCodeInvalidFormat, "gif")), exitInvalidInput},
		{"missing file", apperrors.New(apperrors.ErrCodeFileNotFound, "inventory.json"), exitError},
		{"plain", errors.New("graphviz failed"), exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
