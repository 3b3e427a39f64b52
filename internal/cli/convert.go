package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/lpformat"
	"github.com/matzehuels/mmcf/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output  string // output path; "-" writes to stdout
	noCache bool   // bypass the artifact cache
	opts    pipeline.Options
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var o convertOpts

	cmd := &cobra.Command{
		Use:   "convert <instance.json>",
		Short: "Convert an instance to an LP, MPS or network file",
		Long: `Convert an MMCF instance to solver input.

Without -o the output is written to the current directory, named after the
input file with the extension of the chosen type. The file is only created
when the conversion succeeds.

Examples:
  mmcf convert net.json                      # writes net.lp
  mmcf convert net.json -t mps -o model.mps  # free MPS
  mmcf convert net.json -t network           # plain text network (scalar costs only)
  mmcf convert net.json --model penalized --demand-scale 0.9`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("demand-scale") {
				if err := errs.ValidatePositive("demand_scale", o.opts.DemandScale); err != nil {
					return err
				}
			}
			c.Config.applyTo(cmd.Flags(), &o.opts)
			return c.runConvert(cmd.Context(), args[0], o)
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default <input stem>.<type>, - for stdout)")
	cmd.Flags().StringVarP(&o.opts.Format, "type", "t", pipeline.DefaultFormat, "output type: "+strings.Join(pipeline.Formats, ", "))
	cmd.Flags().StringVar(&o.opts.Model, "model", pipeline.DefaultModel, "model formulation: "+strings.Join(pipeline.Models, ", "))
	cmd.Flags().StringVar(&o.opts.Policy, "policy", pipeline.DefaultPolicy, "imbalanced supply/demand: "+strings.Join(pipeline.Policies, ", "))
	cmd.Flags().Float64Var(&o.opts.DemandScale, "demand-scale", pipeline.DefaultDemandScale, "target demand multiplier (penalized model)")
	cmd.Flags().StringVar(&o.opts.Writer, "writer", pipeline.DefaultWriter, "LP/MPS writer: "+strings.Join(lpformat.Writers(), ", "))
	cmd.Flags().StringVar(&o.opts.Name, "name", "", "model name (default <input stem>)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.opts.Refresh, "refresh", false, "recompute and overwrite cached results")

	fixedValues(cmd, map[string][]string{
		"type":   pipeline.Formats,
		"model":  pipeline.Models,
		"policy": pipeline.Policies,
		"writer": lpformat.Writers(),
	})
	_ = cmd.MarkFlagFilename("output", "lp", "mps", "network", "json")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input string, o convertOpts) error {
	logger := loggerFromContext(ctx)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	if o.opts.Name == "" {
		o.opts.Name = stem(input)
	}
	o.opts.Logger = logger
	if err := o.opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	output := o.output
	if output == "" {
		output = defaultOutput(input, o.opts.Format)
	}

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spinner *Spinner
	if logger.GetLevel() > log.DebugLevel && output != "-" {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", filepath.Base(input)))
		spinner.Start()
	}
	res, err := runner.Execute(ctx, data, o.opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := os.Stdout.Write(res.Artifact)
		return err
	}
	if err := os.WriteFile(output, res.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done(fmt.Sprintf("Converted %s", filepath.Base(input)))

	printSuccess("Wrote %s output", o.opts.Format)
	printFile(output)
	printStats(res.Stats, res.CacheInfo.ArtifactHit)
	for _, im := range res.Imbalances {
		printWarning("commodity %d capped: supply %g, demand %g", im.Commodity, im.Supply, im.Demand)
	}
	if cmd := solveHint(o.opts.Format, output); cmd != "" {
		printNextStep("Solve with", cmd)
	}
	return nil
}

// readInput reads an instance file, reporting a missing file with
// ErrCodeFileNotFound.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// stem returns the file name of path without directory and extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// defaultOutput names the output after the input stem, in the working
// directory.
func defaultOutput(input, format string) string {
	return stem(input) + "." + pipeline.Extension(format)
}

func solveHint(format, path string) string {
	switch format {
	case pipeline.FormatLP:
		return "glpsol --lp " + path
	case pipeline.FormatMPS:
		return "glpsol --freemps " + path
	}
	return ""
}
