package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mmcf/pkg/network"
	"github.com/matzehuels/mmcf/pkg/pipeline"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	policy      string
	json        bool
	interactive bool
	noCache     bool
}

// commodityReport describes one commodity of a normalized network.
type commodityReport struct {
	Commodity int     `json:"commodity"`
	Source    int     `json:"source"`
	Target    int     `json:"target"`
	Flow      float64 `json:"flow"`
	ValidArcs int     `json:"valid_arcs"`
	Capped    bool    `json:"capped"`
}

type imbalanceReport struct {
	Commodity int     `json:"commodity"`
	Supply    float64 `json:"supply"`
	Demand    float64 `json:"demand"`
	Balanced  float64 `json:"balanced"`
}

// report is the output of inspect, shared with the server's inspect route.
type report struct {
	Network     pipeline.NetworkStats `json:"network"`
	Commodities []commodityReport     `json:"commodities"`
	Imbalances  []imbalanceReport     `json:"imbalances,omitempty"`
}

func newReport(net *network.Network, imbalances []network.Imbalance) report {
	r := report{
		Network:     pipeline.Summarize(net),
		Commodities: make([]commodityReport, net.Commodities()),
	}
	r.Network.Imbalanced = len(imbalances)

	for c := range r.Commodities {
		r.Commodities[c] = commodityReport{
			Commodity: c,
			Source:    net.Source(c).Vertex,
			Target:    net.Target(c).Vertex,
			Flow:      net.Target(c).Demand,
		}
	}
	for _, va := range net.ValidArcs() {
		r.Commodities[va.Commodity].ValidArcs++
	}
	for _, im := range imbalances {
		r.Imbalances = append(r.Imbalances, imbalanceReport{
			Commodity: im.Commodity,
			Supply:    im.Supply,
			Demand:    im.Demand,
			Balanced:  im.Balanced(),
		})
		if im.Commodity >= 0 && im.Commodity < len(r.Commodities) {
			r.Commodities[im.Commodity].Capped = true
		}
	}
	return r
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var o inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <instance.json>",
		Short: "Summarize the normalized network of an instance",
		Long: `Inspect loads and normalizes an instance and prints network sizes, the
aggregated source and target of every commodity, and any commodity whose
supply and demand had to be capped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Policy != "" && !cmd.Flags().Changed("policy") {
				o.policy = c.Config.Policy
			}
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], o)
		},
	}

	cmd.Flags().StringVar(&o.policy, "policy", pipeline.DefaultPolicy, "imbalanced supply/demand: cap, fail")
	cmd.Flags().BoolVar(&o.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "browse commodities and their arcs")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	fixedValues(cmd, map[string][]string{"policy": pipeline.Policies})

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, o inspectOpts) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.Options{Policy: o.policy, Logger: loggerFromContext(ctx)}
	net, imbalances, err := runner.Normalize(ctx, data, opts)
	if err != nil {
		return err
	}
	r := newReport(net, imbalances)

	if o.interactive {
		_, err := tea.NewProgram(newCommodityListModel(r, commodityArcs(net)), tea.WithContext(ctx)).Run()
		return err
	}
	if o.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	if w != os.Stdout {
		return writeReportText(w, r)
	}
	printReport(input, r)
	return nil
}

// printReport renders r with the CLI styles.
func printReport(input string, r report) {
	fmt.Println(StyleTitle.Render(input))
	printKeyValue("Nodes", strconv.Itoa(r.Network.Nodes))
	printKeyValue("Arcs", strconv.Itoa(r.Network.Arcs))
	printKeyValue("Commodities", strconv.Itoa(r.Network.Commodities))
	printKeyValue("Flow arcs", strconv.Itoa(r.Network.ValidArcs))
	printKeyValue("Capacity", fmt.Sprintf("%g total, %g max", r.Network.TotalCapacity, r.Network.MaxCapacity))
	printKeyValue("Demand", fmt.Sprintf("%g total, %g max", r.Network.TotalDemand, r.Network.MaxDemand))

	for _, cr := range r.Commodities {
		printDetail("commodity %d: %d → %d, flow %g, %d arcs", cr.Commodity, cr.Source, cr.Target, cr.Flow, cr.ValidArcs)
	}
	for _, im := range r.Imbalances {
		printWarning("commodity %d capped to %g (supply %g, demand %g)", im.Commodity, im.Balanced, im.Supply, im.Demand)
	}
}

// writeReportText writes an unstyled report, used when output is redirected
// by the caller.
func writeReportText(w io.Writer, r report) error {
	fmt.Fprintf(w, "nodes %d\narcs %d\ncommodities %d\nflow_arcs %d\n",
		r.Network.Nodes, r.Network.Arcs, r.Network.Commodities, r.Network.ValidArcs)
	for _, cr := range r.Commodities {
		fmt.Fprintf(w, "commodity %d %d %d %g %d\n", cr.Commodity, cr.Source, cr.Target, cr.Flow, cr.ValidArcs)
	}
	for _, im := range r.Imbalances {
		if _, err := fmt.Fprintf(w, "capped %d %g %g %g\n", im.Commodity, im.Supply, im.Demand, im.Balanced); err != nil {
			return err
		}
	}
	return nil
}
