package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// RenderSVG lays out a DOT graph and renders it to SVG. The Graphviz engine
// is embedded, so no external dot binary is needed.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG lays out a DOT graph and renders it to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse generated DOT: %w", err)
	}
	defer graph.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, graph, format, &out); err != nil {
		return nil, fmt.Errorf("lay out graph: %w", err)
	}
	return out.Bytes(), nil
}
