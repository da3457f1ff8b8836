package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"progressring/internal/config"
	"progressring/internal/demo"
	"progressring/internal/metrics"
	"progressring/internal/ring"
)

const labelSize = 14

type renderOptions struct {
	outDir    string
	scale     float64
	update    bool
	noText    bool
	textColor string
	metrics   bool
}

func newRenderCmd(opts *options) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every ring to a PNG file",
		Long: `Render each configured ring to <out-dir>/<name>.png with its label or
percentage drawn in the centre.

Examples:
  ringctl render --out-dir shots
  ringctl render --update --scale 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			m := metrics.NewRingMetrics(nil)
			paths, err := renderBoard(cfg, ro, opts.log(), m)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if ro.metrics {
				return m.Registry().WritePrometheus(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&ro.outDir, "out-dir", "o", ".", "directory for PNG files")
	cmd.Flags().Float64Var(&ro.scale, "scale", 1, "device pixels per logical pixel")
	cmd.Flags().BoolVarP(&ro.update, "update", "u", false, "apply the Update actions first")
	cmd.Flags().BoolVar(&ro.noText, "no-text", false, "omit the centre text")
	cmd.Flags().BoolVar(&ro.metrics, "metrics", false, "print render metrics after the file list")
	cmd.Flags().StringVar(&ro.textColor, "text-color", "#202124", "centre text colour (#rrggbb)")
	return cmd
}

func renderBoard(cfg *config.Config, ro *renderOptions, log *slog.Logger, m *metrics.RingMetrics) ([]string, error) {
	ink, err := ring.ParseColor(ro.textColor)
	if err != nil {
		return nil, fmt.Errorf("text color: %w", err)
	}

	board, err := demo.NewBoard(cfg, ro.scale, log, demo.WithMetrics(m))
	if err != nil {
		return nil, err
	}
	defer board.Close()

	if err := board.DrawAll(); err != nil {
		return nil, err
	}
	if ro.update {
		if err := board.ApplyUpdates(); err != nil {
			return nil, err
		}
	}

	var font *text.FontSource
	if !ro.noText {
		font, err = text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		defer font.Close()
	}

	if err := os.MkdirAll(ro.outDir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(board.Rings()))
	for _, r := range board.Rings() {
		if font != nil {
			if err := drawLabel(r, font, ink, ro.scale); err != nil {
				return paths, fmt.Errorf("%s: %w", r.Name, err)
			}
		}
		path := filepath.Join(ro.outDir, filepath.Base(r.Name)+".png")
		if err := writePNG(r, path); err != nil {
			return paths, fmt.Errorf("%s: %w", r.Name, err)
		}
		log.Info("ring rendered", slog.String("ring", r.Name), slog.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// drawLabel writes the ring's text centred over its last frame.
func drawLabel(r *demo.Ring, font *text.FontSource, ink ring.Color, scale float64) error {
	mid := float64(r.Surface.Pixels()) / 2
	return r.Surface.Overlay(func(dc *gg.Context) error {
		dc.SetFont(font.Face(labelSize * scale))
		dc.SetRGB(ink.R, ink.G, ink.B)
		dc.DrawStringAnchored(r.Bar.Text(), mid, mid, 0.5, 0.5)
		return nil
	})
}

func writePNG(r *demo.Ring, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Surface.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
