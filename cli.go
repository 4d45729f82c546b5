package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svgcss/catalog"
	"svgcss/clipboard"
	"svgcss/controller"
	"svgcss/model"
	"svgcss/raster"
)

var errInvalidSVG = errors.New("input is not valid SVG")

// systemClipboard is what convert --copy and paste talk to.
var systemClipboard controller.Clipboard = clipboard.System{}

// termListener prints notifications to the terminal. Views are rendered by
// the commands themselves.
type termListener struct {
	w    io.Writer
	last model.Notification
}

func (l *termListener) ViewChanged(model.View) {}

func (l *termListener) Notify(n model.Notification) {
	l.last = n
	if n.Error {
		fmt.Fprintf(l.w, "error: %s\n", n.Message)
		return
	}
	fmt.Fprintln(l.w, n.Message)
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newCLIController(ctx context.Context, cmd *cobra.Command, logger *zap.Logger, tmux bool) (*controller.Controller, *termListener) {
	osc := clipboard.NewOSC52(cmd.ErrOrStderr())
	osc.Tmux = tmux
	l := &termListener{w: cmd.ErrOrStderr()}
	return controller.New(ctx, controller.Config{
		Clipboard: systemClipboard,
		Fallback:  osc,
		Listener:  l,
		Logger:    logger,
	}), l
}

func newConvertCmd() *cobra.Command {
	var (
		repeat, position string
		copyOut, tmux    bool
	)
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert an SVG file (or stdin) to a CSS background declaration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			opts, err := model.ParseOptions(repeat, position)
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			ctrl, _ := newCLIController(cmd.Context(), cmd, logger, tmux)
			ctrl.SetOptions(opts)
			view := ctrl.SetSource(src)

			switch view.Result {
			case model.ResultEmpty:
				return errors.New("no input")
			case model.ResultInvalid:
				fmt.Fprintln(cmd.OutOrStdout(), view.CSSText)
				return errInvalidSVG
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.CSSText)

			if copyOut && !ctrl.RequestCopy(cmd.Context()) {
				return errors.New(controller.MsgCopyFailed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&repeat, "repeat", string(model.NoRepeat), "background-repeat value")
	cmd.Flags().StringVar(&position, "position", string(model.CenterCenter), "background-position value")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the CSS to the clipboard")
	cmd.Flags().BoolVar(&tmux, "tmux", false, "Wrap the terminal copy sequence for tmux")
	return cmd
}

func newPasteCmd() *cobra.Command {
	var repeat, position string
	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Convert the SVG currently on the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			opts, err := model.ParseOptions(repeat, position)
			if err != nil {
				return err
			}

			ctrl, l := newCLIController(cmd.Context(), cmd, logger, false)
			ctrl.SetOptions(opts)
			view := ctrl.RequestPasteOrClear(cmd.Context())
			if l.last.Error {
				return errors.New(l.last.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.CSSText)
			if view.Result == model.ResultInvalid {
				return errInvalidSVG
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&repeat, "repeat", string(model.NoRepeat), "background-repeat value")
	cmd.Flags().StringVar(&position, "position", string(model.CenterCenter), "background-position value")
	return cmd
}

func newPNGCmd() *cobra.Command {
	var (
		out  string
		size int
	)
	cmd := &cobra.Command{
		Use:   "png [file]",
		Short: "Render an SVG file, data URI or CSS declaration (or stdin) to a PNG thumbnail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if !cmd.Flags().Changed("size") {
				size = cfg.PreviewSize
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			img, err := raster.PNG(raster.Source(src), size)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(img)
				return err
			}
			if err := os.WriteFile(out, img, 0o644); err != nil {
				return err
			}
			logger.Info("wrote png", zap.String("path", out), zap.Int("size", size))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&size, "size", raster.DefaultSize, "Edge length in pixels")
	return cmd
}

func newExamplesCmd() *cobra.Command {
	var showSVG bool
	cmd := &cobra.Command{
		Use:   "examples [name]",
		Short: "List the example SVGs, or print one as CSS",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cat, err := catalog.Load(cfg.CatalogFile)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, ex := range cat.List() {
					fmt.Fprintf(tw, "%s\t%s\n", ex.Name, ex.Label)
				}
				return tw.Flush()
			}

			ex, ok := cat.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown example %q", args[0])
			}
			if showSVG {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(ex.SVG))
				return nil
			}
			ctrl, _ := newCLIController(cmd.Context(), cmd, logger, false)
			fmt.Fprintln(cmd.OutOrStdout(), ctrl.SetSource(ex.SVG).CSSText)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSVG, "svg", false, "Print the SVG source instead of CSS")
	return cmd
}
