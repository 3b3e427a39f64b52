package network

import "github.com/rhartert/sparsesets"

// ValidSet is the set of (arc, commodity) pairs whose cost resolves.
// Membership is kept in a sparse set over the dense key arc*K+commodity;
// iteration follows arc ID then commodity order.
type ValidSet struct {
	commodities int
	size        int
	members     *sparsesets.Set
	ordered     []ValidArc
}

// ValidArcs consults costs for every arc and commodity and collects the
// pairs that resolve.
func ValidArcs(arcs []Arc, commodities int, costs *CostTable) *ValidSet {
	maxID := -1
	for _, a := range arcs {
		maxID = max(maxID, a.ID)
	}
	size := (maxID + 1) * commodities
	s := &ValidSet{
		commodities: commodities,
		size:        size,
		members:     sparsesets.New(size),
	}
	for _, a := range arcs {
		for c := 0; c < commodities; c++ {
			if _, ok := costs.CostOf(a.ID, c); !ok {
				continue
			}
			s.members.Insert(s.key(a.ID, c))
			s.ordered = append(s.ordered, ValidArc{Arc: a.ID, From: a.From, To: a.To, Commodity: c})
		}
	}
	return s
}

func (s *ValidSet) key(arc, commodity int) int {
	return arc*s.commodities + commodity
}

// Contains reports whether commodity may flow on arc.
func (s *ValidSet) Contains(arc, commodity int) bool {
	if arc < 0 || commodity < 0 || commodity >= s.commodities {
		return false
	}
	k := s.key(arc, commodity)
	if k >= s.size {
		return false
	}
	return s.members.Contains(k)
}

// All returns the valid pairs in arc ID, then commodity, order.
func (s *ValidSet) All() []ValidArc { return s.ordered }

// Len returns the number of valid pairs.
func (s *ValidSet) Len() int { return len(s.ordered) }
