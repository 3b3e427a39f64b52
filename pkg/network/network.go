package network

import (
	"math"

	errs "github.com/matzehuels/mmcf/pkg/errors"
)

// Network is a normalized MMCF instance: single source and target per
// commodity, indexed adjacency, resolved costs and valid arcs.
//
// The zero value is not usable; build one with [New].
type Network struct {
	nodes       int
	commodities int
	arcs        []Arc
	sources     map[int]Endpoint
	targets     map[int]Endpoint
	index       *Index
	costs       *CostTable
	valid       *ValidSet
	imbalances  []Imbalance
	normalized  Instance
}

// New validates inst, aggregates it under policy and indexes the result.
func New(inst Instance, policy Policy) (*Network, error) {
	if err := Validate(inst); err != nil {
		return nil, err
	}

	agg, imbalances, err := Aggregate(inst, policy)
	if err != nil {
		return nil, err
	}

	costs := NewCostTable(agg.Arcs)
	return &Network{
		nodes:       agg.Nodes,
		commodities: agg.Commodities,
		arcs:        agg.Arcs,
		sources:     agg.Sources,
		targets:     agg.Targets,
		index:       NewIndex(agg.Arcs),
		costs:       costs,
		valid:       ValidArcs(agg.Arcs, agg.Commodities, costs),
		imbalances:  imbalances,
		normalized:  agg,
	}, nil
}

// Validate checks the structural invariants of an instance: non-negative
// counts, arc ids matching positions, vertices in range, finite non-negative
// capacities, commodity ids in range and pre-assigned endpoints in range,
// with a commodity's source and target on distinct vertices.
func Validate(inst Instance) error {
	if inst.Nodes < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "negative node count %d", inst.Nodes)
	}
	if inst.Commodities < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "negative commodity count %d", inst.Commodities)
	}

	vertex := func(v int) bool { return v >= 0 && v < inst.Nodes }
	for i, a := range inst.Arcs {
		if a.ID != i {
			return errs.New(errs.ErrCodeInvalidInput, "arc at position %d has id %d", i, a.ID)
		}
		if !vertex(a.From) || !vertex(a.To) {
			return errs.New(errs.ErrCodeInvalidInput, "%s: vertex out of range [0, %d)", a, inst.Nodes)
		}
		if a.Capacity < 0 || math.IsNaN(a.Capacity) || math.IsInf(a.Capacity, 0) {
			return errs.New(errs.ErrCodeInvalidInput, "%s: capacity %g must be finite and non-negative", a, a.Capacity)
		}
		for _, c := range a.Cost.Commodities() {
			if c < 0 || c >= inst.Commodities {
				return errs.New(errs.ErrCodeInvalidInput, "%s: cost references unknown commodity %d", a, c)
			}
		}
	}

	for _, d := range inst.Demands {
		if !vertex(d.Vertex) {
			return errs.New(errs.ErrCodeInvalidInput, "demand vertex %d out of range [0, %d)", d.Vertex, inst.Nodes)
		}
		if d.Commodity < 0 || d.Commodity >= inst.Commodities {
			return errs.New(errs.ErrCodeInvalidInput, "demand at vertex %d references unknown commodity %d", d.Vertex, d.Commodity)
		}
	}

	for role, eps := range map[string]map[int]Endpoint{"source": inst.Sources, "target": inst.Targets} {
		for c, ep := range eps {
			if c < 0 || c >= inst.Commodities {
				return errs.New(errs.ErrCodeInvalidInput, "%s of unknown commodity %d", role, c)
			}
			if !vertex(ep.Vertex) {
				return errs.New(errs.ErrCodeInvalidInput, "%s of commodity %d: vertex %d out of range [0, %d)", role, c, ep.Vertex, inst.Nodes)
			}
		}
	}
	for c, src := range inst.Sources {
		if tgt, ok := inst.Targets[c]; ok && tgt.Vertex == src.Vertex {
			return errs.New(errs.ErrCodeInvalidInput, "commodity %d: source and target share vertex %d", c, src.Vertex)
		}
	}
	return nil
}

// NodeCount returns the number of vertices including aggregated endpoints.
func (n *Network) NodeCount() int { return n.nodes }

// ArcCount returns the number of arcs including bridging arcs.
func (n *Network) ArcCount() int { return len(n.arcs) }

// Commodities returns the number of commodities.
func (n *Network) Commodities() int { return n.commodities }

// Arcs returns all arcs in ID order. The slice must not be modified.
func (n *Network) Arcs() []Arc { return n.arcs }

// Index returns the adjacency index.
func (n *Network) Index() *Index { return n.index }

// Costs returns the cost table.
func (n *Network) Costs() *CostTable { return n.costs }

// Source returns the aggregated source of commodity c.
func (n *Network) Source(c int) Endpoint { return n.sources[c] }

// Target returns the aggregated target of commodity c.
func (n *Network) Target(c int) Endpoint { return n.targets[c] }

// IsSource reports whether v is the aggregated source of commodity c.
func (n *Network) IsSource(v, c int) bool {
	ep, ok := n.sources[c]
	return ok && ep.Vertex == v
}

// IsTarget reports whether v is the aggregated target of commodity c.
func (n *Network) IsTarget(v, c int) bool {
	ep, ok := n.targets[c]
	return ok && ep.Vertex == v
}

// Demand returns the aggregated demand of commodity c at v: the target's
// positive demand, the source's negative demand, or 0 elsewhere.
func (n *Network) Demand(v, c int) float64 {
	switch {
	case n.IsTarget(v, c):
		return n.targets[c].Demand
	case n.IsSource(v, c):
		return n.sources[c].Demand
	default:
		return 0
	}
}

// IsValid reports whether commodity c may flow on arc.
func (n *Network) IsValid(arc, c int) bool { return n.valid.Contains(arc, c) }

// ValidArcs returns the valid (arc, commodity) pairs.
func (n *Network) ValidArcs() []ValidArc { return n.valid.All() }

// Imbalances returns the commodities whose supply and demand were capped.
func (n *Network) Imbalances() []Imbalance { return n.imbalances }

// Instance returns the normalized instance the network was built from.
// Aggregating it again yields the same network.
func (n *Network) Instance() Instance { return n.normalized.Clone() }
