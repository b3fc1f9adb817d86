package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/graphview"
	"github.com/phanxgames/graphview/gpu"
	"github.com/phanxgames/graphview/graphjson"
)

func newViewCmd(o *options) *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Open a graph document in a window",
		Long: `Open a graph document in a window.

Drag empty space to pan, drag a node to move it, scroll to zoom. Click
selects, shift/ctrl/cmd-click adds to the selection. F fits the graph,
Escape clears the selection, +/- zoom about the center.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, opts, err := loadDocument(cmd, o, path)
			if err != nil {
				return err
			}

			app, err := gpu.NewApp(doc.Graph, opts)
			if err != nil {
				return err
			}

			if script != "" {
				data, err := os.ReadFile(script)
				if err != nil {
					return err
				}
				runner, err := graphview.LoadTestScript(data)
				if err != nil {
					return err
				}
				app.Canvas().SetTestRunner(runner)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if o.cfg.Watch {
				err := watchFile(ctx, path, reloadDelay, func() {
					next, err := graphjson.Load(path)
					if err != nil {
						status(cmd.ErrOrStderr(), warn, "reload", "%v", err)
						return
					}
					if !app.Post(func(c *graphview.Canvas) { c.SetGraph(next.Graph) }) {
						return
					}
					status(cmd.ErrOrStderr(), good, "reload", "%s (%d nodes)", path, next.Graph.NodeCount())
				})
				if err != nil {
					return err
				}
				status(cmd.ErrOrStderr(), subtle, "watch", "%s", path)
			}

			return gpu.Run(app, gpu.RunConfig{
				Title:     o.cfg.Title,
				Width:     o.cfg.Width,
				Height:    o.cfg.Height,
				Resizable: true,
			})
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "JSON input script to replay")
	return cmd
}
