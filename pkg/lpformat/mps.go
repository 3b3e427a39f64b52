package lpformat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/mmcf/pkg/model"
)

// WriteMPS writes m in free MPS format. Rows are named as in the model, the
// objective row is OBJ, the right-hand side vector is RHS. Columns appear in
// variable order; a column with no nonzero is listed with a zero objective
// coefficient so that it is still declared.
func WriteMPS(w io.Writer, m *model.Model) error {
	bw := bufio.NewWriter(w)

	type entry struct {
		row  string
		coef float64
	}
	columns := make([][]entry, len(m.Variables))
	for _, t := range m.Objective {
		columns[t.Var] = append(columns[t.Var], entry{"OBJ", t.Coef})
	}
	for _, c := range m.Constraints {
		name := Sanitize(c.Name)
		for _, t := range c.Expr {
			columns[t.Var] = append(columns[t.Var], entry{name, t.Coef})
		}
	}

	fmt.Fprintf(bw, "NAME %s\n", Sanitize(m.Name))
	if m.Sense == model.Maximize {
		bw.WriteString("OBJSENSE\n    MAX\n")
	}

	bw.WriteString("ROWS\n")
	bw.WriteString(" N  OBJ\n")
	for _, c := range m.Constraints {
		fmt.Fprintf(bw, " %s  %s\n", rowType(c.Op), Sanitize(c.Name))
	}

	bw.WriteString("COLUMNS\n")
	for i, v := range m.Variables {
		name := Sanitize(v.Name)
		if len(columns[i]) == 0 {
			fmt.Fprintf(bw, "    %s  OBJ  0\n", name)
			continue
		}
		for _, e := range columns[i] {
			fmt.Fprintf(bw, "    %s  %s  %s\n", name, e.row, formatFloat(e.coef))
		}
	}

	bw.WriteString("RHS\n")
	for _, c := range m.Constraints {
		if c.RHS != 0 {
			fmt.Fprintf(bw, "    RHS  %s  %s\n", Sanitize(c.Name), formatFloat(c.RHS))
		}
	}

	bw.WriteString("ENDATA\n")
	return bw.Flush()
}

func rowType(op model.Op) string {
	switch op {
	case model.GE:
		return "G"
	case model.EQ:
		return "E"
	default:
		return "L"
	}
}
