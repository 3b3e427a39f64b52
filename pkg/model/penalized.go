package model

import (
	"fmt"

	"github.com/matzehuels/mmcf/pkg/network"
)

// BuildPenalized builds the soft-capacity model.
//
// Flow is tracked per vertex pair and commodity, so parallel arcs share a
// variable f_(u-v)@c; a pair gets a variable for c when any arc between the
// two vertices is valid for c. Each vertex pair also gets a non-negative
// violation variable v_(u-v), and every arc's capacity row reads
// Σ_c f(u,v,c) - v(u,v) <= capacity. The objective minimizes the total
// violation.
//
// Interior vertices conserve flow exactly. The aggregated target of a
// commodity must receive at least DemandScale times its demand, and the
// aggregated source may send at most its supply. Zero-demand endpoints and
// empty rows are omitted.
func BuildPenalized(net *network.Network, opts Options) *Model {
	m := New(opts.name(), Minimize)

	type pair = [2]int
	flows := make(map[[3]int]int)
	violations := make(map[pair]int)

	for _, a := range net.Arcs() {
		p := pair{a.From, a.To}
		if _, ok := violations[p]; !ok {
			violations[p] = m.Var(fmt.Sprintf("v_(%d-%d)", a.From, a.To))
			m.Objective = append(m.Objective, Term{Var: violations[p], Coef: 1})
		}
		for c := 0; c < net.Commodities(); c++ {
			k := [3]int{a.From, a.To, c}
			if _, ok := flows[k]; ok || !net.IsValid(a.ID, c) {
				continue
			}
			flows[k] = m.Var(fmt.Sprintf("f_(%d-%d)@%d", a.From, a.To, c))
		}
	}

	for _, a := range net.Arcs() {
		var e Expr
		for c := 0; c < net.Commodities(); c++ {
			if f, ok := flows[[3]int{a.From, a.To, c}]; ok {
				e = append(e, Term{Var: f, Coef: 1})
			}
		}
		e = append(e, Term{Var: violations[pair{a.From, a.To}], Coef: -1})
		m.AddConstraint(CapacityName(a), e, LE, a.Capacity)
	}

	idx := net.Index()
	inflow := func(v, c int) Expr {
		var b exprBuilder
		for _, u := range idx.In(v) {
			if f, ok := flows[[3]int{u, v, c}]; ok {
				b.add(f, 1)
			}
		}
		return b.expr()
	}
	outflow := func(v, c int) Expr {
		var b exprBuilder
		for _, w := range idx.Out(v) {
			if f, ok := flows[[3]int{v, w, c}]; ok {
				b.add(f, 1)
			}
		}
		return b.expr()
	}

	endpoint := func(v, c int) bool { return net.IsSource(v, c) || net.IsTarget(v, c) }

	for c := 0; c < net.Commodities(); c++ {
		for _, v := range idx.Vertices() {
			if endpoint(v, c) {
				continue
			}
			var b exprBuilder
			for _, t := range outflow(v, c) {
				b.add(t.Var, t.Coef)
			}
			for _, t := range inflow(v, c) {
				b.add(t.Var, -t.Coef)
			}
			if e := b.expr(); len(e) > 0 {
				m.AddConstraint(ConservationName(v, c), e, EQ, 0)
			}
		}
	}

	for _, v := range idx.Vertices() {
		for c := 0; c < net.Commodities(); c++ {
			if d := net.Demand(v, c); net.IsTarget(v, c) && d != 0 {
				m.AddConstraint(demandName(v, c), inflow(v, c), GE, opts.scale()*d)
			}
		}
	}

	for _, v := range idx.Vertices() {
		for c := 0; c < net.Commodities(); c++ {
			if d := net.Demand(v, c); net.IsSource(v, c) && d != 0 {
				m.AddConstraint(supplyName(v, c), outflow(v, c), LE, -d)
			}
		}
	}
	return m
}

func demandName(v, c int) string { return fmt.Sprintf("DEM_%d_%d", v, c) }

func supplyName(v, c int) string { return fmt.Sprintf("SUP_%d_%d", v, c) }
