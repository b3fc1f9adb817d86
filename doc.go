// Package graphview is the core of an interactive 2D node-link diagram
// viewer: camera, picking, pointer interaction, scene state and a
// dirty-flag draw loop. Drawing itself is delegated to a [Renderer]
// backend; see the gpu package for Ebitengine and the raster package for
// headless software rendering.
//
// # Quick start
//
// The gpu package wraps everything in a window:
//
//	doc, _ := graphjson.Load("graph.json")
//	app, _ := gpu.NewApp(doc.Graph, graphview.CanvasOptions{Width: 1280, Height: 800})
//	gpu.Run(app, gpu.RunConfig{Title: "graph", Width: 1280, Height: 800})
//
// For headless use, build a [Canvas] with a renderer factory (or nil) and
// feed it [PointerEvent] values:
//
//	c, _ := graphview.NewCanvas(g, raster.Factory(nil), graphview.CanvasOptions{})
//	c.FitToView()
//	c.HandlePointer(graphview.PointerEvent{Action: graphview.PointerDown, X: 400, Y: 300})
//	c.Frame()
//
// # Coordinates
//
// World space is y-up with nodes positioned by their center. Screen space
// is y-down pixels with the origin at the top-left of the viewport. The
// [Camera] maps between them:
//
//	sx = w/2 + zoom*(x - cx)
//	sy = h/2 - zoom*(y - cy)
//
// # Components
//
// A [Canvas] owns one of each and shares nothing with other canvases:
//
//   - [Camera] holds center and zoom and caches the view matrix.
//   - [SpatialIndex] answers point and visibility queries over node bounds.
//     Later nodes win overlapping hits, matching paint order.
//   - [InteractionMachine] turns pointer events into semantic
//     [InteractionEvent] values on an [EventBus].
//   - [Scene] is the single mutable source of truth. Every mutation marks
//     the draw loop dirty.
//   - [DrawLoop] renders at most once per frame and only when dirty.
//
// # Logging
//
// The package logs through [log/slog]. Nothing is logged until a logger is
// installed with [SetLogger].
package graphview
