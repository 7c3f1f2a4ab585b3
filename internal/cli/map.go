package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/inventory"
	"github.com/matzehuels/assetmap/pkg/io"
	"github.com/matzehuels/assetmap/pkg/pipeline"
)

// mapOpts holds options for the map command.
type mapOpts struct {
	output  string
	routing string
	pass    string
	summary bool
}

// mapCommand creates the map command for turning an inventory into graph elements.
func (c *CLI) mapCommand() *cobra.Command {
	var opts mapOpts

	cmd := &cobra.Command{
		Use:   "map [inventory]",
		Short: "Map an inventory into compound graph elements",
		Long: `Map an inventory file (JSON, TOML or HCL) into compound graph elements.

Assets that belong to several systems or groups are duplicated into each
container, and relationships are re-routed onto the duplicates. The elements
are written as JSON to stdout, or to the file given with -o.`,
		Example: `  assetmap map inventory.json
  assetmap map inventory.hcl -o elements.json --routing all-pairs
  assetmap map inventory.toml --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMap(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.routing, "routing", "", "edge routing: first or all-pairs (default from config)")
	cmd.Flags().StringVar(&opts.pass, "pass", "", "pin the pass token used in identifiers")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a compound summary table instead of JSON")

	return cmd
}

// runMap loads the inventory, maps it, and writes the elements.
func (c *CLI) runMap(ctx context.Context, input string, opts mapOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ctx = withLogger(ctx, c.Logger)

	inv, err := loadInventory(ctx, input)
	if err != nil {
		return err
	}

	// Mapping output is never cached, so the runner needs no store.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Map(ctx, inv, pipeline.Options{
		Routing: routingOrDefault(opts.routing, cfg),
		Pass:    opts.pass,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Mapped %d nodes into %d instances", len(inv.Nodes), len(res.Instances)))

	if opts.summary {
		fmt.Println(summaryTable(res))
		printStats(res.Stats(), false)
		printDiagnostics(res)
		return nil
	}

	elems := graph.FromResult(res)
	if opts.output == "" {
		return graph.WriteElements(elems, os.Stdout)
	}
	if err := graph.WriteElementsFile(elems, opts.output); err != nil {
		return err
	}

	printSuccess("Mapped %s", input)
	printStats(res.Stats(), false)
	printFile(opts.output)
	printDiagnostics(res)
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, input))
	return nil
}

// loadInventory reads and decodes an inventory file.
func loadInventory(ctx context.Context, path string) (inventory.Inventory, error) {
	logger := loggerFromContext(ctx)
	inv, err := io.ImportFile(path)
	if err != nil {
		return inventory.Inventory{}, err
	}
	logger.Debug("loaded inventory", "path", path, "nodes", len(inv.Nodes), "edges", len(inv.Edges))
	return inv, nil
}
