package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/render"
	"github.com/matzehuels/assetmap/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
// The DOT source and SVG are produced at most once and shared between
// the formats derived from them.
func Render(ctx context.Context, elems []graph.Element, opts Options) (map[string][]byte, error) {
	var (
		dot string
		svg []byte
	)
	toDOT := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(elems, nodelink.Options{Detailed: opts.Detailed, RankDir: opts.RankDir})
		}
		return dot
	}
	toSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, toDOT())
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalElements(elems)
		case FormatDOT:
			data = []byte(toDOT())
		case FormatSVG:
			data, err = toSVG()
		case FormatPDF:
			if data, err = toSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = toSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
