package lpformat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/mmcf/pkg/model"
)

const (
	dummyName  = "__dummy"
	maxLineLen = 255
)

// WriteLP writes m in CPLEX LP format.
//
//	\* name *\
//	Minimize
//	OBJ: 3 f0_(0_1)@0 + 2 f1_(0_2)@0
//	Subject To
//	CAP_0_0_1: f0_(0_1)@0 + f0_(0_1)@1 <= 5
//	...
//	End
//
// Variables have the LP default bounds [0, +inf), so only the __dummy column
// appears in the Bounds section, and only when an expression was empty.
func WriteLP(w io.Writer, m *model.Model) error {
	bw := bufio.NewWriter(w)
	lw := &lpWriter{w: bw, m: m}

	fmt.Fprintf(bw, "\\* %s *\\\n", Sanitize(m.Name))
	if m.Sense == model.Maximize {
		bw.WriteString("Maximize\n")
	} else {
		bw.WriteString("Minimize\n")
	}
	lw.row("OBJ", m.Objective, "")

	bw.WriteString("Subject To\n")
	for _, c := range m.Constraints {
		lw.row(Sanitize(c.Name), c.Expr, c.Op.String()+" "+formatFloat(c.RHS))
	}

	if lw.dummy {
		bw.WriteString("Bounds\n")
		fmt.Fprintf(bw, "%s = 0\n", dummyName)
	}
	bw.WriteString("End\n")
	return bw.Flush()
}

type lpWriter struct {
	w     *bufio.Writer
	m     *model.Model
	dummy bool
}

// row writes "name: expr tail", wrapping before a term when the line would
// exceed maxLineLen.
func (lw *lpWriter) row(name string, e model.Expr, tail string) {
	var line strings.Builder
	line.WriteString(name)
	line.WriteString(":")

	emit := func(tok string) {
		if line.Len()+1+len(tok) > maxLineLen {
			lw.w.WriteString(line.String())
			lw.w.WriteString("\n")
			line.Reset()
		} else {
			line.WriteString(" ")
		}
		line.WriteString(tok)
	}

	if len(e) == 0 {
		lw.dummy = true
		emit("0 " + dummyName)
	}
	for i, t := range e {
		emit(term(i == 0, t.Coef, Sanitize(lw.m.Variables[t.Var].Name)))
	}
	if tail != "" {
		emit(tail)
	}
	lw.w.WriteString(line.String())
	lw.w.WriteString("\n")
}

// term renders one signed term: "x", "- x", "+ 2.5 x", "- 3 x".
func term(first bool, coef float64, name string) string {
	var sign string
	switch {
	case coef < 0:
		sign, coef = "- ", -coef
	case !first:
		sign = "+ "
	}
	if coef == 1 {
		return sign + name
	}
	return sign + formatFloat(coef) + " " + name
}
