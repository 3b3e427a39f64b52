package pipeline

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/mmcf/pkg/network"
)

// NetworkStats summarizes a normalized network.
type NetworkStats struct {
	Nodes         int     `json:"nodes"`
	Arcs          int     `json:"arcs"`
	Commodities   int     `json:"commodities"`
	ValidArcs     int     `json:"valid_arcs"`
	PerCommodity  int     `json:"per_commodity_arcs"`
	TotalCapacity float64 `json:"total_capacity"`
	MaxCapacity   float64 `json:"max_capacity"`
	TotalDemand   float64 `json:"total_demand"`
	MaxDemand     float64 `json:"max_demand"`
	Imbalanced    int     `json:"imbalanced"`
}

// Summarize computes [NetworkStats] for net. Demand totals use the balanced
// target amounts.
func Summarize(net *network.Network) NetworkStats {
	s := NetworkStats{
		Nodes:       net.NodeCount(),
		Arcs:        net.ArcCount(),
		Commodities: net.Commodities(),
		ValidArcs:   len(net.ValidArcs()),
		Imbalanced:  len(net.Imbalances()),
	}

	capacities := make([]float64, 0, net.ArcCount())
	for _, a := range net.Arcs() {
		capacities = append(capacities, a.Capacity)
		if !a.Cost.IsUnified() {
			s.PerCommodity++
		}
	}
	demands := make([]float64, 0, net.Commodities())
	for c := 0; c < net.Commodities(); c++ {
		demands = append(demands, net.Target(c).Demand)
	}

	if len(capacities) > 0 {
		s.TotalCapacity = floats.Sum(capacities)
		s.MaxCapacity = floats.Max(capacities)
	}
	if len(demands) > 0 {
		s.TotalDemand = floats.Sum(demands)
		s.MaxDemand = floats.Max(demands)
	}
	return s
}
