// Package model builds linear programs over a normalized
// [network.Network].
//
// A [Model] is solver-agnostic: an objective sense, an objective expression,
// a list of named linear constraints and the continuous, non-negative
// variables they reference. Package lpformat turns a Model into LP or MPS
// text.
//
// Two formulations are provided:
//
//   - [BuildMMCF]: one flow variable per valid (arc, commodity) pair, hard
//     capacities, exact flow conservation and cost minimization.
//   - [BuildPenalized]: flow variables per vertex pair and commodity,
//     capacities softened by per-pair violation variables whose sum is
//     minimized, and bounded (rather than exact) demand satisfaction.
package model

import (
	"fmt"
	"strings"
)

// Sense is the optimization direction.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Op is the relation of a constraint's expression to its right-hand side.
type Op int

const (
	LE Op = iota // <=
	GE           // >=
	EQ           // ==
)

func (op Op) String() string {
	switch op {
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "<="
	}
}

// Variable is a continuous decision variable with lower bound 0 and no upper
// bound.
type Variable struct {
	Name string
}

// Term is a coefficient applied to a variable.
type Term struct {
	Var  int // index into Model.Variables
	Coef float64
}

// Expr is a linear expression. Terms keep insertion order.
type Expr []Term

// Constraint is a named linear row: Expr Op RHS.
type Constraint struct {
	Name string
	Expr Expr
	Op   Op
	RHS  float64
}

// Model is a linear program.
type Model struct {
	Name        string
	Sense       Sense
	Objective   Expr
	Constraints []Constraint
	Variables   []Variable

	byName map[string]int
}

// New creates an empty model.
func New(name string, sense Sense) *Model {
	return &Model{Name: name, Sense: sense, byName: make(map[string]int)}
}

// Var returns the index of the variable called name, adding it if needed.
func (m *Model) Var(name string) int {
	if i, ok := m.byName[name]; ok {
		return i
	}
	i := len(m.Variables)
	m.Variables = append(m.Variables, Variable{Name: name})
	m.byName[name] = i
	return i
}

// Lookup returns the index of an existing variable.
func (m *Model) Lookup(name string) (int, bool) {
	i, ok := m.byName[name]
	return i, ok
}

// AddConstraint appends a constraint.
func (m *Model) AddConstraint(name string, e Expr, op Op, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Expr: e, Op: op, RHS: rhs})
}

// Constraint returns the constraint called name.
func (m *Model) Constraint(name string) (Constraint, bool) {
	for _, c := range m.Constraints {
		if c.Name == name {
			return c, true
		}
	}
	return Constraint{}, false
}

// Format renders e with variable names, e.g. "2 x + y - z". It is meant
// for logs and tests; use package lpformat for solver input.
func (m *Model) Format(e Expr) string {
	if len(e) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range e {
		coef := t.Coef
		switch {
		case i == 0 && coef < 0:
			b.WriteString("-")
			coef = -coef
		case i > 0 && coef < 0:
			b.WriteString(" - ")
			coef = -coef
		case i > 0:
			b.WriteString(" + ")
		}
		if coef != 1 {
			fmt.Fprintf(&b, "%g ", coef)
		}
		b.WriteString(m.Variables[t.Var].Name)
	}
	return b.String()
}

// Stats summarizes a model's size.
type Stats struct {
	Variables   int
	Constraints int
	Nonzeros    int
}

// Stats counts variables, constraints and constraint matrix nonzeros.
func (m *Model) Stats() Stats {
	s := Stats{Variables: len(m.Variables), Constraints: len(m.Constraints)}
	for _, c := range m.Constraints {
		s.Nonzeros += len(c.Expr)
	}
	return s
}
