//go:build glpk

package lpformat

import (
	"io"
	"os"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"

	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/model"
)

func init() {
	Register(WriterGLPK, FormatLP, EncoderFunc(func(w io.Writer, m *model.Model) error {
		return writeGLPK(w, m, func(p *glpk.Prob, path string) error {
			return p.WriteLP(nil, path)
		})
	}))
	Register(WriterGLPK, FormatMPS, EncoderFunc(func(w io.Writer, m *model.Model) error {
		return writeGLPK(w, m, func(p *glpk.Prob, path string) error {
			return p.WriteMPS(glpk.MPS_FILE, nil, path)
		})
	}))
}

// writeGLPK loads m into a GLPK problem, lets write produce a file and
// copies that file to w. GLPK only writes to paths.
func writeGLPK(w io.Writer, m *model.Model, write func(*glpk.Prob, string) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p := toGLPK(m)
	defer p.Delete()

	f, err := os.CreateTemp("", "mmcf-*.glpk")
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create temporary file")
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := write(p, path); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "glpk write")
	}

	f, err = os.Open(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func toGLPK(m *model.Model) *glpk.Prob {
	p := glpk.New()
	p.SetProbName(Sanitize(m.Name))
	p.SetObjName("OBJ")
	if m.Sense == model.Maximize {
		p.SetObjDir(glpk.MAX)
	} else {
		p.SetObjDir(glpk.MIN)
	}

	// GLPK indices are 1-based.
	if n := len(m.Variables); n > 0 {
		p.AddCols(n)
	}
	for j, v := range m.Variables {
		p.SetColName(j+1, Sanitize(v.Name))
		p.SetColBnds(j+1, glpk.LO, 0, 0)
	}
	for _, t := range m.Objective {
		p.SetObjCoef(t.Var+1, t.Coef)
	}

	if n := len(m.Constraints); n > 0 {
		p.AddRows(n)
	}
	for i, c := range m.Constraints {
		row := i + 1
		p.SetRowName(row, Sanitize(c.Name))
		switch c.Op {
		case model.GE:
			p.SetRowBnds(row, glpk.LO, c.RHS, 0)
		case model.EQ:
			p.SetRowBnds(row, glpk.FX, c.RHS, c.RHS)
		default:
			p.SetRowBnds(row, glpk.UP, 0, c.RHS)
		}

		ind := make([]int32, len(c.Expr)+1)
		val := make([]float64, len(c.Expr)+1)
		for k, t := range c.Expr {
			ind[k+1] = int32(t.Var + 1)
			val[k+1] = t.Coef
		}
		p.SetMatRow(row, ind, val)
	}
	return p
}
