//go:build !glpk

package lpformat

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/mmcf/pkg/errors"
)

func TestGLPKUnavailable(t *testing.T) {
	if slices.Contains(Writers(), WriterGLPK) {
		t.Errorf("Writers() = %v, glpk registered without the build tag", Writers())
	}
	_, err := Lookup(WriterGLPK, FormatLP)
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("Lookup(glpk) error = %v, want %s", err, errs.ErrCodeUnsupported)
	}
}
