package network

import (
	"maps"
	"slices"
)

// Cost is the per-unit cost of an arc. It is either a scalar shared by every
// commodity or a mapping from commodity to cost. The zero value is a scalar
// cost of 0.
type Cost struct {
	scalar       float64
	perCommodity map[int]float64
}

// Scalar returns a cost shared by all commodities.
func Scalar(v float64) Cost {
	return Cost{scalar: v}
}

// PerCommodity returns a cost that only the listed commodities can use.
// An empty mapping makes the arc unusable for every commodity.
func PerCommodity(costs map[int]float64) Cost {
	m := make(map[int]float64, len(costs))
	maps.Copy(m, costs)
	return Cost{perCommodity: m}
}

// IsUnified reports whether the cost is a single scalar.
func (c Cost) IsUnified() bool {
	return c.perCommodity == nil
}

// Value returns the scalar cost and true, or 0 and false for a
// per-commodity cost.
func (c Cost) Value() (float64, bool) {
	if !c.IsUnified() {
		return 0, false
	}
	return c.scalar, true
}

// Resolve returns the cost of commodity on this arc. The second result is
// false when the commodity cannot use the arc.
func (c Cost) Resolve(commodity int) (float64, bool) {
	if c.IsUnified() {
		return c.scalar, true
	}
	v, ok := c.perCommodity[commodity]
	return v, ok
}

// Commodities returns the commodities of a per-commodity cost in ascending
// order, or nil for a scalar cost.
func (c Cost) Commodities() []int {
	if c.IsUnified() {
		return nil
	}
	return slices.Sorted(maps.Keys(c.perCommodity))
}

// Mapping returns a copy of a per-commodity cost mapping, or nil for a
// scalar cost.
func (c Cost) Mapping() map[int]float64 {
	if c.IsUnified() {
		return nil
	}
	return maps.Clone(c.perCommodity)
}

func (c Cost) clone() Cost {
	if c.IsUnified() {
		return c
	}
	return PerCommodity(c.perCommodity)
}

// CostTable resolves costs by arc id.
type CostTable struct {
	costs map[int]Cost
}

// NewCostTable indexes the cost of every arc by its ID.
func NewCostTable(arcs []Arc) *CostTable {
	t := &CostTable{costs: make(map[int]Cost, len(arcs))}
	for _, a := range arcs {
		t.costs[a.ID] = a.Cost
	}
	return t
}

// CostOf returns the cost of commodity on arc. It returns false for unknown
// arcs and for commodities the arc's cost mapping does not list; callers must
// treat that as "not part of the model", never as a zero cost.
func (t *CostTable) CostOf(arc, commodity int) (float64, bool) {
	c, ok := t.costs[arc]
	if !ok {
		return 0, false
	}
	return c.Resolve(commodity)
}
