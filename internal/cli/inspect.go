package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a mapping.
func (c *CLI) inspectCommand() *cobra.Command {
	var routing string

	cmd := &cobra.Command{
		Use:   "inspect [inventory]",
		Short: "Browse the compounds and instances of an inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], routing)
		},
	}

	cmd.Flags().StringVar(&routing, "routing", "", "edge routing: first or all-pairs (default from config)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, routing string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ctx = withLogger(ctx, c.Logger)

	inv, err := loadInventory(ctx, input)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	res, err := runner.Map(ctx, inv, pipeline.Options{
		Routing: routingOrDefault(routing, cfg),
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewInspectModel(res), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
