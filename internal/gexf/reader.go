package gexf

import (
	"encoding/xml"
	"fmt"
	"io"
)

// The decoder resolves the viz prefix to its namespace, so viz elements are
// matched by local name on the way in.
type rawDocument struct {
	XMLName xml.Name   `xml:"gexf"`
	Xmlns   string     `xml:"xmlns,attr"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Version string     `xml:"version,attr"`
	Meta    *Meta      `xml:"meta"`
	Graph   rawGraph   `xml:"graph"`
}

type rawGraph struct {
	Mode            string       `xml:"mode,attr"`
	DefaultEdgeType string       `xml:"defaultedgetype,attr"`
	Attributes      []Attributes `xml:"attributes"`
	Nodes           struct {
		Count int       `xml:"count,attr"`
		Nodes []rawNode `xml:"node"`
	} `xml:"nodes"`
	Edges struct {
		Count int       `xml:"count,attr"`
		Edges []rawEdge `xml:"edge"`
	} `xml:"edges"`
}

type rawNode struct {
	ID        string     `xml:"id,attr"`
	Label     string     `xml:"label,attr"`
	Color     *Color     `xml:"color"`
	Size      *Size      `xml:"size"`
	AttValues *AttValues `xml:"attvalues"`
}

type rawEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Color  *Color `xml:"color"`
}

// Read parses a GEXF document.
func Read(r io.Reader) (*Document, error) {
	var raw rawDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse GEXF: %w", err)
	}

	doc := &Document{
		Xmlns:   raw.Xmlns,
		Version: raw.Version,
		Meta:    raw.Meta,
		Graph: Graph{
			Mode:            raw.Graph.Mode,
			DefaultEdgeType: raw.Graph.DefaultEdgeType,
			Attributes:      raw.Graph.Attributes,
		},
	}
	for _, a := range raw.Attrs {
		if a.Name.Space == "xmlns" && a.Name.Local == "viz" {
			doc.XmlnsViz = a.Value
		}
	}

	doc.Graph.Nodes.Count = raw.Graph.Nodes.Count
	for _, n := range raw.Graph.Nodes.Nodes {
		doc.Graph.Nodes.Nodes = append(doc.Graph.Nodes.Nodes, Node(n))
	}
	doc.Graph.Edges.Count = raw.Graph.Edges.Count
	for _, e := range raw.Graph.Edges.Edges {
		doc.Graph.Edges.Edges = append(doc.Graph.Edges.Edges, Edge(e))
	}

	return doc, nil
}
