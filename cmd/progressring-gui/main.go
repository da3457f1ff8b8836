// progressring-gui shows the configured progress rings in a window with an
// Update button.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"progressring/cmd/progressring-gui/internal/theme"
	"progressring/cmd/progressring-gui/internal/ui"
	"progressring/internal/config"
	"progressring/internal/demo"
	"progressring/internal/logging"
	"progressring/internal/metrics"
)

func main() {
	go func() {
		w := new(app.Window)
		if err := loop(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window) error {
	loader := config.NewLoader("", nil)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	logging.SetDefault(logger)
	guiLog := logger.WithComponent("gui")
	guiLog.Info("starting",
		slog.String("config", loader.Path()),
		slog.String("log_level", logging.LevelString(logger.Level())),
	)

	m := metrics.NewRingMetrics(nil)
	board, err := demo.NewBoard(cfg, 1, guiLog, demo.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("build rings: %w", err)
	}
	defer func() { board.Close() }()

	t := theme.NewTheme(material.NewTheme())
	minW, minH := board.MinSize(int(t.Config.ButtonHeight + t.Config.Spacing))
	w.Option(
		app.Title(cfg.Window.Title),
		app.Size(unit.Dp(max(cfg.Window.Width, minW)), unit.Dp(max(cfg.Window.Height, minH))),
	)

	reloads := make(chan *config.Config, 1)
	loader.OnChange(func(c *config.Config) {
		select {
		case <-reloads:
		default:
		}
		reloads <- c
		w.Invalidate()
	})
	if err := loader.Watch(); err != nil {
		guiLog.Warn("config hot reload disabled", slog.String("error", err.Error()))
	}
	defer loader.Close()

	reloadErrs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case err := <-loader.Errors():
				select {
				case <-reloadErrs:
				default:
				}
				reloadErrs <- err
				w.Invalidate()
			case <-done:
				return
			}
		}
	}()

	window := ui.NewWindow(t, board, guiLog)
	drawn := false

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			guiLog.Debug("window closed",
				slog.Uint64("frames", m.FramesTotal.Value()),
				slog.Uint64("frame_errors", m.FrameErrorsTotal.Value()),
				slog.Uint64("updates", m.UpdatesTotal.Value()),
				slog.Float64("frame_seconds", m.FrameDuration.Sum()),
			)
			return e.Err
		case app.FrameEvent:
			select {
			case c := <-reloads:
				if next, err := demo.NewBoard(c, float64(e.Metric.PxPerDp), guiLog, demo.WithMetrics(m)); err != nil {
					guiLog.Error("reload rejected", slog.String("error", err.Error()))
					window.SetStatus(err.Error())
				} else {
					board.Close()
					board = next
					window.SetBoard(board)
					window.SetStatus("")
					drawn = false
				}
			default:
			}
			select {
			case err := <-reloadErrs:
				window.SetStatus(err.Error())
			default:
			}

			// a change of pixel density resizes every drawing area
			if err := board.Rescale(float64(e.Metric.PxPerDp)); err != nil {
				guiLog.Error("redraw failed", slog.String("error", err.Error()))
			}
			if !drawn {
				if err := board.DrawAll(); err != nil {
					guiLog.Error("draw failed", slog.String("error", err.Error()))
				}
				drawn = true
			}

			gtx := app.NewContext(&ops, e)
			window.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	lc, err := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.FilePath)
	if err != nil {
		return nil, fmt.Errorf("logging config: %w", err)
	}
	lc.Component = "progressring-gui"
	return logging.New(lc)
}
