package network

import "fmt"

// Arc is a directed, capacitated arc. ID is the arc's position in the
// instance's arc list.
type Arc struct {
	ID       int
	From     int
	To       int
	Capacity float64
	Cost     Cost
}

func (a Arc) String() string {
	return fmt.Sprintf("arc %d (%d->%d)", a.ID, a.From, a.To)
}

// Demand is a signed demand of one commodity at one vertex. Negative amounts
// are supplied by the vertex, positive amounts are consumed by it.
type Demand struct {
	Vertex    int
	Commodity int
	Amount    float64
}

// DemandTable lists demand entries in input order. Pairs that do not appear
// have zero demand.
type DemandTable []Demand

// Of returns the summed demand of commodity at vertex.
func (t DemandTable) Of(vertex, commodity int) float64 {
	var total float64
	for _, d := range t {
		if d.Vertex == vertex && d.Commodity == commodity {
			total += d.Amount
		}
	}
	return total
}

// Endpoint is an aggregated source or target of one commodity.
type Endpoint struct {
	Vertex int
	Demand float64
}

// ValidArc is an (arc, commodity) pair that carries a flow variable.
type ValidArc struct {
	Arc       int
	From      int
	To        int
	Commodity int
}

// Instance is an MMCF problem instance.
//
// Sources and Targets are empty for raw input and populated by [Aggregate].
type Instance struct {
	Nodes       int
	Commodities int
	Arcs        []Arc
	Demands     DemandTable
	Sources     map[int]Endpoint
	Targets     map[int]Endpoint
}

// Clone returns a deep copy of the instance.
func (inst Instance) Clone() Instance {
	out := Instance{
		Nodes:       inst.Nodes,
		Commodities: inst.Commodities,
		Arcs:        make([]Arc, len(inst.Arcs)),
		Demands:     append(DemandTable(nil), inst.Demands...),
		Sources:     make(map[int]Endpoint, len(inst.Sources)),
		Targets:     make(map[int]Endpoint, len(inst.Targets)),
	}
	for i, a := range inst.Arcs {
		a.Cost = a.Cost.clone()
		out.Arcs[i] = a
	}
	for c, e := range inst.Sources {
		out.Sources[c] = e
	}
	for c, e := range inst.Targets {
		out.Targets[c] = e
	}
	return out
}

// Imbalance records a commodity whose total supply and total demand differ.
// Supply and Demand are both magnitudes.
type Imbalance struct {
	Commodity int
	Supply    float64
	Demand    float64
}

// Balanced is the flow value the commodity was capped to.
func (im Imbalance) Balanced() float64 {
	return min(im.Supply, im.Demand)
}
