package logger_test

import (
	"testing"

	"github.com/docviewer/viewer/internal/logger"
)

func TestNew(t *testing.T) {
	var cases = []struct {
		name      string
		env       string
		level     string
		expectErr bool
	}{
		{"Production logger", "prod", "", false},
		{"Development logger with level override", "dev", "debug", false},
		{"Unknown environment", "staging", "", true},
		{"Invalid level", "prod", "loud", true},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			l, err := logger.New(tcase.env, tcase.level)
			if tcase.expectErr {
				if err == nil {
					t.Errorf("Expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if l == nil {
				t.Errorf("Expected a logger, got nil")
			}
		})
	}
}
