package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/mmcf/pkg/network"
)

// Normalize validates inst and aggregates it under the policy in opts.
func Normalize(inst network.Instance, opts Options) (*network.Network, error) {
	policy, err := network.ParsePolicy(opts.Policy)
	if err != nil {
		return nil, err
	}
	return network.New(inst, policy)
}

// logImbalances warns once per capped commodity.
func logImbalances(logger *log.Logger, imbalances []network.Imbalance) {
	for _, im := range imbalances {
		logger.Warn("capped imbalanced commodity",
			"commodity", im.Commodity,
			"supply", im.Supply,
			"demand", im.Demand,
			"balanced", min(im.Supply, im.Demand))
	}
}
