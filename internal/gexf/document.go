// Package gexf writes contact graphs in the Graph Exchange XML Format 1.3
// (https://gexf.net) with the viz extension, ready for import into Gephi.
package gexf

import "encoding/xml"

const (
	Namespace    = "http://gexf.net/1.3"
	VizNamespace = "http://gexf.net/1.3/viz"
	Version      = "1.3"

	ModeStatic = "static"

	EdgeTypeDirected   = "directed"
	EdgeTypeUndirected = "undirected"
)

// Node attribute ids. The first three match the layout Gephi projects built
// from earlier exports expect.
const (
	AttrID          = "0"
	AttrName        = "1"
	AttrPhone       = "2"
	AttrCategory    = "3"
	AttrOccurrences = "4"
	AttrCommunity   = "5"
)

type Document struct {
	XMLName  xml.Name `xml:"gexf"`
	Xmlns    string   `xml:"xmlns,attr"`
	XmlnsViz string   `xml:"xmlns:viz,attr"`
	Version  string   `xml:"version,attr"`
	Meta     *Meta    `xml:"meta,omitempty"`
	Graph    Graph    `xml:"graph"`
}

type Meta struct {
	Creator     string `xml:"creator,omitempty"`
	Description string `xml:"description,omitempty"`
}

type Graph struct {
	Mode            string       `xml:"mode,attr"`
	DefaultEdgeType string       `xml:"defaultedgetype,attr"`
	Attributes      []Attributes `xml:"attributes"`
	Nodes           Nodes        `xml:"nodes"`
	Edges           Edges        `xml:"edges"`
}

type Attributes struct {
	Class      string      `xml:"class,attr"`
	Attributes []Attribute `xml:"attribute"`
}

type Attribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type Nodes struct {
	Count int    `xml:"count,attr"`
	Nodes []Node `xml:"node"`
}

type Node struct {
	ID        string     `xml:"id,attr"`
	Label     string     `xml:"label,attr"`
	Color     *Color     `xml:"viz:color"`
	Size      *Size      `xml:"viz:size"`
	AttValues *AttValues `xml:"attvalues"`
}

type Edges struct {
	Count int    `xml:"count,attr"`
	Edges []Edge `xml:"edge"`
}

type Edge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Color  *Color `xml:"viz:color"`
}

type Color struct {
	R   uint8  `xml:"r,attr"`
	G   uint8  `xml:"g,attr"`
	B   uint8  `xml:"b,attr"`
	Hex string `xml:"hex,attr"`
}

type Size struct {
	Value float64 `xml:"value,attr"`
}

type AttValues struct {
	Values []AttValue `xml:"attvalue"`
}

type AttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

// Value returns the attvalue for attribute id.
func (n Node) Value(id string) (string, bool) {
	if n.AttValues == nil {
		return "", false
	}
	for _, v := range n.AttValues.Values {
		if v.For == id {
			return v.Value, true
		}
	}
	return "", false
}
