//go:build glpk

package lpformat

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestGLPKEncoders(t *testing.T) {
	if !slices.Contains(Writers(), WriterGLPK) {
		t.Fatalf("Writers() = %v, missing %q", Writers(), WriterGLPK)
	}

	tests := []struct {
		format string
		want   []string
	}{
		{FormatLP, []string{"Minimize", "Subject To", "End"}},
		{FormatMPS, []string{"ROWS", "COLUMNS", "RHS", "ENDATA"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := Lookup(WriterGLPK, tt.format)
			if err != nil {
				t.Fatalf("Lookup(glpk, %s) error = %v", tt.format, err)
			}
			var buf bytes.Buffer
			if err := e.Encode(&buf, smallModel()); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("glpk %s output missing %q:\n%s", tt.format, want, buf.String())
				}
			}
		})
	}
}
