package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/graphview"
	"github.com/phanxgames/graphview/raster"
)

// maxScriptUpdates bounds a scripted snapshot run.
const maxScriptUpdates = 10000

func newSnapshotCmd(o *options) *cobra.Command {
	var (
		out    string
		script string
		sel    []string
		expand []string
	)
	cmd := &cobra.Command{
		Use:   "snapshot FILE",
		Short: "Render a graph document to PNG without a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, opts, err := loadDocument(cmd, o, args[0])
			if err != nil {
				return err
			}

			var r *raster.Renderer
			c, err := graphview.NewCanvas(doc.Graph, raster.Factory(func(rr *raster.Renderer) { r = rr }), opts)
			if err != nil {
				return err
			}
			defer c.Close()
			c.FitToView()

			scene := c.Scene()
			for _, id := range sel {
				scene.SelectNode(id, true, true)
			}
			for _, id := range expand {
				scene.ExpandNode(id, true)
			}

			if script != "" {
				if err := runScript(c, script); err != nil {
					return err
				}
			}

			c.Frame()
			if err := r.SavePNG(out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			st := r.LastStats()
			status(cmd.ErrOrStderr(), good, "wrote", "%s (%d nodes, %d edges drawn)", out, st.Nodes, st.Edges)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "graph.png", "output PNG path")
	cmd.Flags().StringVar(&script, "script", "", "JSON input script to replay before rendering")
	cmd.Flags().StringSliceVar(&sel, "select", nil, "node ids to select")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "node ids to expand")
	return cmd
}

// runScript replays a test script headlessly at 60 updates per second.
func runScript(c *graphview.Canvas, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	runner, err := graphview.LoadTestScript(data)
	if err != nil {
		return err
	}
	c.SetTestRunner(runner)
	for i := 0; i < maxScriptUpdates; i++ {
		if runner.Done() && c.PendingInput() == 0 {
			return nil
		}
		c.Update(1.0 / 60)
		c.Frame()
	}
	return errors.New("script did not finish")
}
