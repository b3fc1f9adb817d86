package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/graphview"
	"github.com/phanxgames/graphview/graphjson"
	"github.com/phanxgames/graphview/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

type options struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:     "graphview",
		Short:   "Interactive node-link graph viewer",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			if err := setupLogging(o.logLevel); err != nil {
				return err
			}
			cfg, err := config.Load(o.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			o.cfg = cfg
			if cfg.File != "" {
				status(cmd.ErrOrStderr(), subtle, "config", "%s", cfg.File)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "config file (default ./"+config.DefaultFile+")")
	pf.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	config.RegisterFlags(pf)
	_ = root.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("bg-style", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"dots", "flat"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newViewCmd(o), newSnapshotCmd(o))
	return root
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("--log-level %q: %w", level, err)
	}
	graphview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadDocument reads a graph file and applies its background color unless
// the user set one explicitly.
func loadDocument(cmd *cobra.Command, o *options, path string) (*graphjson.Document, graphview.CanvasOptions, error) {
	doc, err := graphjson.Load(path)
	if err != nil {
		return nil, graphview.CanvasOptions{}, err
	}
	opts := o.cfg.CanvasOptions()
	if doc.Background != "" && !cmd.Flags().Changed("bg-color") {
		c, err := graphview.ParseColor(doc.Background)
		if err != nil {
			status(cmd.ErrOrStderr(), warn, "warn", "ignoring document background: %v", err)
		} else {
			opts.Background.Color = c
		}
	}
	status(cmd.ErrOrStderr(), brand, "loaded", "%s (%d nodes, %d edges)",
		path, doc.Graph.NodeCount(), doc.Graph.EdgeCount())
	return doc, opts, nil
}
