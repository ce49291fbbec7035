package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/featurebasedb/planopt/logger"
)

func TestStandardLogger(t *testing.T) {
	tests := []struct {
		name   string
		log    func(l logger.Logger)
		want   string
		unwant string
	}{
		{
			name:   "info",
			log:    func(l logger.Logger) { l.Infof("hello %d", 1) },
			want:   "INFO:  hello 1",
			unwant: "",
		},
		{
			name:   "warn",
			log:    func(l logger.Logger) { l.Warnf("uh oh") },
			want:   "WARN:  uh oh",
			unwant: "",
		},
		{
			name:   "debug-suppressed",
			log:    func(l logger.Logger) { l.Debugf("noisy") },
			want:   "",
			unwant: "noisy",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := logger.NewStandardLogger(&buf)
			test.log(l)
			got := buf.String()
			if test.want != "" && !strings.Contains(got, test.want) {
				t.Fatalf("expected log to contain '%s', got '%s'", test.want, got)
			}
			if test.unwant != "" && strings.Contains(got, test.unwant) {
				t.Fatalf("expected log to not contain '%s', got '%s'", test.unwant, got)
			}
		})
	}
}

func TestVerboseLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewVerboseLogger(&buf)
	l.Debugf("noisy")
	if !strings.Contains(buf.String(), "DEBUG: noisy") {
		t.Fatalf("expected debug output, got '%s'", buf.String())
	}
}

func TestBufferLogger(t *testing.T) {
	l := logger.NewBufferLogger()
	l.Warnf("batch '%s' did not converge", "mv-rewrite")
	b, err := l.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "batch 'mv-rewrite' did not converge") {
		t.Fatalf("unexpected buffer contents '%s'", string(b))
	}
}
