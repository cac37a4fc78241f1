package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name    string
		faces   int
		skipped int
		cached  bool
		want    []string
		notWant []string
	}{
		{"fresh export", 42, 3, false, []string{"42 faces", "3 hidden", "fresh"}, nil},
		{"cached outline", 0, 0, true, []string{"cached"}, []string{"faces", "hidden"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			printStats(tt.faces, tt.skipped, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output = %q, want %q", buf.String(), w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(buf.String(), w) {
					t.Errorf("output = %q, should not contain %q", buf.String(), w)
				}
			}
		})
	}
}

func TestPrintKeyValue(t *testing.T) {
	buf := captureStdout(t)
	printKeyValue("Scale", "1:50")
	if !strings.Contains(buf.String(), "Scale") || !strings.Contains(buf.String(), "1:50") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", apperrors.New(apperrors.ErrCodeInvalidScale, `"1:0" is not a valid scale`), `"1:0" is not a valid scale`},
		{"plain", errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("PrintError() = %q, want %q", buf.String(), tt.want)
			}
			if strings.Contains(buf.String(), "INVALID_SCALE") {
				t.Errorf("PrintError() = %q, should hide the code", buf.String())
			}
		})
	}
}
