package model

import (
	"fmt"

	"github.com/matzehuels/mmcf/pkg/network"
)

// Options configures model construction.
type Options struct {
	// Name is the model name written to the LP header. Default "mmcf".
	Name string
	// DemandScale multiplies target demands in [BuildPenalized]. Default 1.
	DemandScale float64
}

func (o Options) name() string {
	if o.Name == "" {
		return "mmcf"
	}
	return o.Name
}

func (o Options) scale() float64 {
	if o.DemandScale == 0 {
		return 1
	}
	return o.DemandScale
}

// FlowName is the name of the flow variable of a valid arc in [BuildMMCF].
func FlowName(va network.ValidArc) string {
	return fmt.Sprintf("f%d_(%d-%d)@%d", va.Arc, va.From, va.To, va.Commodity)
}

// CapacityName is the name of the capacity row of an arc.
func CapacityName(a network.Arc) string {
	return fmt.Sprintf("CAP[%d]%d_%d", a.ID, a.From, a.To)
}

// ConservationName is the name of the flow conservation row of vertex v and
// commodity c.
func ConservationName(v, c int) string {
	return fmt.Sprintf("KIR_%d_%d", v, c)
}

// BuildMMCF builds the cost-minimizing multi-commodity flow model.
//
// Variables exist only for valid arcs. The objective sums cost times flow,
// leaving out zero-cost terms. Every arc gets a capacity row bounding the
// total flow of the commodities valid on it. Every indexed vertex gets, per
// commodity, a conservation row inflow - outflow == demand, where demand is
// the aggregated endpoint demand (0 at interior vertices). Endpoints with a
// zero aggregated demand, and rows that would read 0 == 0, are omitted.
func BuildMMCF(net *network.Network, opts Options) *Model {
	m := New(opts.name(), Minimize)

	flows := make(map[[2]int]int, len(net.ValidArcs()))
	for _, va := range net.ValidArcs() {
		flows[[2]int{va.Arc, va.Commodity}] = m.Var(FlowName(va))
	}

	for _, va := range net.ValidArcs() {
		cost, _ := net.Costs().CostOf(va.Arc, va.Commodity)
		if cost == 0 {
			continue
		}
		m.Objective = append(m.Objective, Term{Var: flows[[2]int{va.Arc, va.Commodity}], Coef: cost})
	}

	for _, a := range net.Arcs() {
		var e Expr
		for c := 0; c < net.Commodities(); c++ {
			if net.IsValid(a.ID, c) {
				e = append(e, Term{Var: flows[[2]int{a.ID, c}], Coef: 1})
			}
		}
		m.AddConstraint(CapacityName(a), e, LE, a.Capacity)
	}

	idx := net.Index()
	for _, v := range idx.Vertices() {
		for c := 0; c < net.Commodities(); c++ {
			demand := net.Demand(v, c)
			if demand == 0 && (net.IsSource(v, c) || net.IsTarget(v, c)) {
				continue
			}

			var b exprBuilder
			for _, u := range idx.In(v) {
				for _, id := range idx.Arcs(u, v) {
					if net.IsValid(id, c) {
						b.add(flows[[2]int{id, c}], 1)
					}
				}
			}
			for _, w := range idx.Out(v) {
				for _, id := range idx.Arcs(v, w) {
					if net.IsValid(id, c) {
						b.add(flows[[2]int{id, c}], -1)
					}
				}
			}

			e := b.expr()
			if len(e) == 0 && demand == 0 {
				continue
			}
			m.AddConstraint(ConservationName(v, c), e, EQ, demand)
		}
	}
	return m
}

// exprBuilder accumulates terms, merging repeated variables and dropping
// terms that cancel out.
type exprBuilder struct {
	terms Expr
	pos   map[int]int
}

func (b *exprBuilder) add(v int, coef float64) {
	if b.pos == nil {
		b.pos = make(map[int]int)
	}
	if i, ok := b.pos[v]; ok {
		b.terms[i].Coef += coef
		return
	}
	b.pos[v] = len(b.terms)
	b.terms = append(b.terms, Term{Var: v, Coef: coef})
}

func (b *exprBuilder) expr() Expr {
	out := b.terms[:0:0]
	for _, t := range b.terms {
		if t.Coef != 0 {
			out = append(out, t)
		}
	}
	return out
}
