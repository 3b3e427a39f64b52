package lpformat

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/model"
)

// Writer and format names.
const (
	WriterNative = "native"
	WriterGLPK   = "glpk"

	FormatLP  = "lp"
	FormatMPS = "mps"
)

// Encoder writes a model in a solver input format.
type Encoder interface {
	Encode(w io.Writer, m *model.Model) error
}

// EncoderFunc adapts a function to [Encoder].
type EncoderFunc func(w io.Writer, m *model.Model) error

// Encode calls f(w, m).
func (f EncoderFunc) Encode(w io.Writer, m *model.Model) error { return f(w, m) }

type key struct{ writer, format string }

var (
	mu       sync.RWMutex
	encoders = map[key]Encoder{
		{WriterNative, FormatLP}:  EncoderFunc(WriteLP),
		{WriterNative, FormatMPS}: EncoderFunc(WriteMPS),
	}
)

// Register makes an encoder available under writer and format, replacing
// any previous registration.
func Register(writer, format string, e Encoder) {
	mu.Lock()
	defer mu.Unlock()
	encoders[key{writer, format}] = e
}

// Lookup returns the encoder for writer and format. An empty writer selects
// [WriterNative].
func Lookup(writer, format string) (Encoder, error) {
	if writer == "" {
		writer = WriterNative
	}
	mu.RLock()
	defer mu.RUnlock()
	if e, ok := encoders[key{writer, format}]; ok {
		return e, nil
	}
	if writer == WriterGLPK {
		return nil, errs.New(errs.ErrCodeUnsupported, "writer %q is not available (build with -tags glpk)", writer)
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "no %s encoder for format %q", writer, format)
}

// Writers returns the registered writer names in sorted order.
func Writers() []string {
	mu.RLock()
	defer mu.RUnlock()
	var out []string
	for k := range encoders {
		if !slices.Contains(out, k.writer) {
			out = append(out, k.writer)
		}
	}
	slices.Sort(out)
	return out
}

var sanitizer = strings.NewReplacer(
	"-", "_", "+", "_", "[", "_", "]", "_", " ", "_", ">", "_", "/", "_",
)

// Sanitize replaces characters LP readers reject in names.
func Sanitize(name string) string { return sanitizer.Replace(name) }

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}
