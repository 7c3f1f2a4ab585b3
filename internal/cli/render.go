package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/config"
	"github.com/matzehuels/assetmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: "json", "dot", "svg", "pdf", "png"
	detailed bool     // show identifiers, memberships and classifications
	rankDir  string   // graphviz rank direction
	scale    float64  // PNG scale factor
	routing  string   // edge routing strategy
	pass     string   // pinned pass token
	refresh  bool     // bypass cached artifacts
}

// renderCommand creates the render command for generating pictures.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [inventory]",
		Short: "Render an inventory as a compound graph picture",
		Long: `Render an inventory file as a node-link diagram with nested systems and groups.

Pictures are drawn with Graphviz. PDF and PNG output additionally need
rsvg-convert on the PATH. Rendered pictures are cached by mapping content,
so re-rendering an unchanged inventory is served from the cache.`,
		Example: `  assetmap render inventory.json
  assetmap render inventory.hcl -f svg,png -o out/inventory
  assetmap render inventory.toml -f dot --detailed --rankdir LR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (default: input name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output formats: json, dot, svg, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show identifiers, memberships and classifications")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", pipeline.DefaultRankDir, "layout direction: TB, LR, BT, RL")
	cmd.Flags().Float64VarP(&opts.scale, "scale", "z", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.routing, "routing", "", "edge routing: first or all-pairs (default from config)")
	cmd.Flags().StringVar(&opts.pass, "pass", "", "pin the pass token used in identifiers")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached pictures")

	return cmd
}

// runRender maps the inventory and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ctx = withLogger(ctx, c.Logger)

	inv, err := loadInventory(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()
	result, err := runner.Execute(ctx, inv, c.pipelineOptions(cfg, opts))
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.formats, basePath(opts.output, input))
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.Stats, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	printDiagnostics(result.Mapping)
	return nil
}

// pipelineOptions merges flags with configured defaults.
func (c *CLI) pipelineOptions(cfg *config.Config, opts renderOpts) pipeline.Options {
	return pipeline.Options{
		Routing:  routingOrDefault(opts.routing, cfg),
		Pass:     opts.pass,
		Formats:  opts.formats,
		Detailed: opts.detailed,
		RankDir:  strings.ToUpper(opts.rankDir),
		Scale:    opts.scale,
		Refresh:  opts.refresh,
		TTL:      cfg.Cache.TTL.Duration,
		Logger:   c.Logger,
	}
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes base.<format> for each format, in flag order.
// Writing JSON next to a .json input would clobber it, so that case gets
// an ".elements" infix.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	var paths []string
	seen := make(map[string]bool, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok || seen[format] {
			continue
		}
		seen[format] = true

		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".elements.json"
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
