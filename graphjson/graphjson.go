// Package graphjson loads graph documents in the viewer's JSON interchange
// format:
//
//	{
//	  "graph": {
//	    "nodes": [{"id": "a", "position": {"x": 0, "y": 0}, "labels": [{"Person": "#f00"}], ...}],
//	    "relationships": [{"id": "r", "fromId": "a", "toId": "b", "type": {"knows": "#888"}}]
//	  },
//	  "background": "#f5f5f5"
//	}
//
// Node properties and edge type maps keep the key order of the document.
// Ids may be strings or numbers.
package graphjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/graphview"
)

// Document is a decoded graph file.
type Document struct {
	Graph      *graphview.Graph
	Background string
}

type rawDocument struct {
	Graph *struct {
		Nodes         []rawNode `json:"nodes"`
		Relationships []rawEdge `json:"relationships"`
	} `json:"graph"`
	Background string `json:"background"`
}

type rawNode struct {
	ID       json.RawMessage `json:"id"`
	Position *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Color      string          `json:"color"`
	Caption    string          `json:"caption"`
	Labels     []orderedObject `json:"labels"`
	Properties orderedObject   `json:"properties"`
}

type rawEdge struct {
	ID     json.RawMessage `json:"id"`
	Type   orderedObject   `json:"type"`
	Weight *float64        `json:"weight"`
	FromID json.RawMessage `json:"fromId"`
	ToID   json.RawMessage `json:"toId"`
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphjson: %w", err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("graphjson: %s: %w", path, err)
	}
	return doc, nil
}

// Decode reads one document from r. Duplicate or empty ids are errors.
// Edges whose endpoints are missing are kept and logged as a warning.
func Decode(r io.Reader) (*Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if raw.Graph == nil {
		return nil, errors.New(`decode: missing "graph" object`)
	}

	g := graphview.NewGraph()
	for i, rn := range raw.Graph.Nodes {
		n, err := rn.node()
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	for i, re := range raw.Graph.Relationships {
		e, err := re.edge()
		if err != nil {
			return nil, fmt.Errorf("relationship %d: %w", i, err)
		}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("relationship %d: %w", i, err)
		}
	}

	if err := g.Validate(); err != nil {
		graphview.Logger().Warn("graph has dangling edges", "error", err)
	}
	return &Document{Graph: g, Background: raw.Background}, nil
}

func (rn rawNode) node() (*graphview.GraphNode, error) {
	id, err := parseID(rn.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	n := &graphview.GraphNode{
		ID:      id,
		Width:   rn.Width,
		Height:  rn.Height,
		Color:   rn.Color,
		Caption: rn.Caption,
	}
	if rn.Position != nil {
		n.Position = graphview.Vec2{X: rn.Position.X, Y: rn.Position.Y}
	}
	for _, obj := range rn.Labels {
		for _, m := range obj {
			var c string
			if err := json.Unmarshal(m.Value, &c); err != nil {
				return nil, fmt.Errorf("label %q: %w", m.Key, err)
			}
			n.Labels = append(n.Labels, graphview.Label{Text: m.Key, Color: c})
		}
	}
	for _, m := range rn.Properties {
		var v any
		if err := json.Unmarshal(m.Value, &v); err != nil {
			return nil, fmt.Errorf("property %q: %w", m.Key, err)
		}
		n.Properties = append(n.Properties, graphview.Property{Key: m.Key, Value: v})
	}
	return n, nil
}

func (re rawEdge) edge() (*graphview.GraphEdge, error) {
	id, err := parseID(re.ID)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	from, err := parseID(re.FromID)
	if err != nil {
		return nil, fmt.Errorf("fromId: %w", err)
	}
	to, err := parseID(re.ToID)
	if err != nil {
		return nil, fmt.Errorf("toId: %w", err)
	}
	e := &graphview.GraphEdge{ID: id, FromID: from, ToID: to}
	if re.Weight != nil {
		e.Weight = *re.Weight
	}
	for _, m := range re.Type {
		var c string
		if err := json.Unmarshal(m.Value, &c); err != nil {
			return nil, fmt.Errorf("type %q: %w", m.Key, err)
		}
		e.Types = append(e.Types, graphview.EdgeType{Name: m.Key, Color: c})
	}
	return e, nil
}

// parseID accepts a JSON string or number. A missing or null id yields "",
// which the graph rejects with ErrEmptyID.
func parseID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("want string or number, got %s", raw)
	}
	return n.String(), nil
}
