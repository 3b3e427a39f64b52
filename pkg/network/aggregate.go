package network

import (
	"math"

	errs "github.com/matzehuels/mmcf/pkg/errors"
)

// Policy decides what [Aggregate] does when a commodity's total supply and
// total demand differ.
type Policy string

const (
	// PolicyCap balances both endpoints to the smaller magnitude and records
	// the imbalance.
	PolicyCap Policy = "cap"
	// PolicyFail rejects the instance with ErrCodeImbalancedSupplyDemand.
	PolicyFail Policy = "fail"
)

// ParsePolicy converts a policy name. The empty string selects [PolicyCap].
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyCap:
		return PolicyCap, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidPolicy, "invalid policy: %q (must be 'cap' or 'fail')", s)
	}
}

// Aggregate rewrites inst so that every commodity has exactly one source and
// one target vertex.
//
// Demand entries are visited in table order. For a positive entry the
// commodity's target vertex is allocated on first use (taking the next free
// vertex id) and a zero-cost arc from the entry's vertex to the target is
// appended with capacity equal to the demand. Negative entries are handled
// symmetrically with a source vertex and an arc from the source. Entries that
// sit on a vertex which already is the commodity's endpoint are folded into
// that endpoint without new arcs, so aggregating an aggregated instance is a
// no-op.
//
// Commodities without any supply or without any demand receive a zero-demand
// endpoint for the missing role. Finally each commodity is balanced: both
// endpoints carry min(|Σ supply|, |Σ demand|), the source negated.
//
// The returned imbalances list every commodity whose totals differed beyond
// rounding. Under
// [PolicyFail] the first such commodity is returned as an error instead.
// inst itself is not modified.
func Aggregate(inst Instance, policy Policy) (Instance, []Imbalance, error) {
	out := inst.Clone()
	out.Demands = nil
	// Endpoint totals are recomputed from the demand table.
	for _, role := range []map[int]Endpoint{out.Sources, out.Targets} {
		for c, ep := range role {
			ep.Demand = 0
			role[c] = ep
		}
	}

	for _, d := range inst.Demands {
		if d.Amount == 0 {
			continue
		}
		if d.Commodity < 0 || d.Commodity >= inst.Commodities {
			return Instance{}, nil, errs.New(errs.ErrCodeInvalidInput,
				"demand at vertex %d references unknown commodity %d", d.Vertex, d.Commodity)
		}

		if d.Amount > 0 {
			out.absorb(out.Targets, d, func(target int) Arc {
				return Arc{From: d.Vertex, To: target}
			})
		} else {
			out.absorb(out.Sources, d, func(source int) Arc {
				return Arc{From: source, To: d.Vertex}
			})
		}
	}

	for c := 0; c < out.Commodities; c++ {
		out.endpoint(out.Sources, c)
		out.endpoint(out.Targets, c)
	}

	var imbalances []Imbalance
	for c := 0; c < out.Commodities; c++ {
		src, tgt := out.Sources[c], out.Targets[c]
		supply, demand := math.Abs(src.Demand), math.Abs(tgt.Demand)
		if !sameTotal(supply, demand) {
			im := Imbalance{Commodity: c, Supply: supply, Demand: demand}
			if policy == PolicyFail {
				return Instance{}, nil, errs.New(errs.ErrCodeImbalancedSupplyDemand,
					"commodity %d: supply %g does not match demand %g", c, supply, demand)
			}
			imbalances = append(imbalances, im)
		}

		balanced := min(supply, demand)
		src.Demand, tgt.Demand = -balanced, balanced
		out.Sources[c], out.Targets[c] = src, tgt
	}

	for c := 0; c < out.Commodities; c++ {
		out.Demands = append(out.Demands,
			Demand{Vertex: out.Sources[c].Vertex, Commodity: c, Amount: out.Sources[c].Demand},
			Demand{Vertex: out.Targets[c].Vertex, Commodity: c, Amount: out.Targets[c].Demand},
		)
	}
	return out, imbalances, nil
}

// sameTotal compares supply and demand totals up to a relative tolerance of
// 1e-9, absorbing the rounding of summed decimal amounts.
func sameTotal(supply, demand float64) bool {
	return math.Abs(supply-demand) <= 1e-9*max(1, supply, demand)
}

// absorb adds demand entry d to the commodity's endpoint in role, allocating
// the endpoint and a bridging arc as needed. bridge builds the arc between
// the endpoint vertex and d.Vertex.
func (inst *Instance) absorb(role map[int]Endpoint, d Demand, bridge func(endpoint int) Arc) {
	ep, ok := role[d.Commodity]
	if ok && ep.Vertex == d.Vertex {
		// Already aggregated.
		ep.Demand += d.Amount
		role[d.Commodity] = ep
		return
	}
	if !ok {
		ep = Endpoint{Vertex: inst.Nodes}
		inst.Nodes++
	}

	arc := bridge(ep.Vertex)
	arc.ID = len(inst.Arcs)
	arc.Capacity = math.Abs(d.Amount)
	arc.Cost = Scalar(0)
	inst.Arcs = append(inst.Arcs, arc)

	ep.Demand += d.Amount
	role[d.Commodity] = ep
}

// endpoint allocates a zero-demand endpoint for commodity c if role lacks one.
func (inst *Instance) endpoint(role map[int]Endpoint, c int) {
	if _, ok := role[c]; ok {
		return
	}
	role[c] = Endpoint{Vertex: inst.Nodes}
	inst.Nodes++
}
