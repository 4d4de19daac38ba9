package gexf

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agenthands/contactgraph/internal/core/model"
)

// Style is how one node category is drawn.
type Style struct {
	Color *Color
	// Label overrides the node label; empty uses the person's name.
	Label string
	// Mask shortens the phone attribute to its first MaskPrefix characters.
	Mask bool
}

// SizeOptions scales viz:size with the number of contacts of a node.
type SizeOptions struct {
	Enabled bool
	Base    float64
	Step    float64
	Max     float64
}

type Options struct {
	EdgeType    string
	Creator     string
	Description string
	Styles      map[model.Category]Style
	EdgeColor   *Color
	MaskPrefix  int
	MaskSuffix  string
	Size        SizeOptions
}

// DefaultOptions is the stock Gephi palette:
// purple registered users, yellow frequent contacts, dark grey masked
// infrequent contacts and black edges.
func DefaultOptions() Options {
	return Options{
		EdgeType: EdgeTypeUndirected,
		Creator:  "contactgraph",
		Styles: map[model.Category]Style{
			model.CategoryRegistered: {Color: MustParseColor("#ce54ff")},
			model.CategoryFrequent:   {Color: MustParseColor("#ffff00"), Label: "???"},
			model.CategoryInfrequent: {Color: MustParseColor("#333333"), Label: "???", Mask: true},
		},
		EdgeColor:  MustParseColor("#000"),
		MaskPrefix: 5,
		MaskSuffix: "...",
		Size:       SizeOptions{Base: 10, Step: 1, Max: 50},
	}
}

// Mask keeps the first prefix characters of phone and appends suffix.
func Mask(phone string, prefix int, suffix string) string {
	r := []rune(phone)
	if prefix < len(r) {
		r = r[:prefix]
	}
	return string(r) + suffix
}

// NewDocument lays g out as a GEXF document. Output order follows the graph
// order, so equal graphs give equal documents.
func NewDocument(g *model.Graph, opts Options) (*Document, error) {
	edgeType := opts.EdgeType
	if edgeType == "" {
		edgeType = EdgeTypeUndirected
	}
	if edgeType != EdgeTypeDirected && edgeType != EdgeTypeUndirected {
		return nil, fmt.Errorf("unsupported edge type: %s", edgeType)
	}

	withCommunities := g.HasCommunities()
	attrs := []Attribute{
		{ID: AttrID, Title: "id", Type: "string"},
		{ID: AttrName, Title: "name", Type: "string"},
		{ID: AttrPhone, Title: "phone", Type: "string"},
		{ID: AttrCategory, Title: "category", Type: "string"},
		{ID: AttrOccurrences, Title: "occurrences", Type: "integer"},
	}
	if withCommunities {
		attrs = append(attrs, Attribute{ID: AttrCommunity, Title: "community", Type: "integer"})
	}

	doc := &Document{
		Xmlns:    Namespace,
		XmlnsViz: VizNamespace,
		Version:  Version,
		Graph: Graph{
			Mode:            ModeStatic,
			DefaultEdgeType: edgeType,
			Attributes:      []Attributes{{Class: "node", Attributes: attrs}},
		},
	}
	if opts.Creator != "" || opts.Description != "" {
		doc.Meta = &Meta{Creator: opts.Creator, Description: opts.Description}
	}

	nodes := make([]Node, 0, len(g.Nodes))
	for _, p := range g.Nodes {
		style, ok := opts.Styles[p.Category]
		if !ok {
			return nil, fmt.Errorf("no style for category %q of node %s", p.Category, p.ID)
		}

		label := style.Label
		name := ""
		if p.Registered() {
			name = p.Name()
			if label == "" {
				label = name
			}
		}
		if label == "" {
			label = p.ID
		}

		phone := p.ID
		if style.Mask && opts.MaskPrefix > 0 {
			phone = Mask(p.ID, opts.MaskPrefix, opts.MaskSuffix)
		}

		values := []AttValue{
			{For: AttrID, Value: p.AccountID},
			{For: AttrName, Value: name},
			{For: AttrPhone, Value: phone},
			{For: AttrCategory, Value: string(p.Category)},
			{For: AttrOccurrences, Value: strconv.Itoa(p.Occurrences)},
		}
		if withCommunities {
			values = append(values, AttValue{For: AttrCommunity, Value: strconv.Itoa(p.Community)})
		}

		node := Node{
			ID:        p.ID,
			Label:     label,
			Color:     style.Color,
			AttValues: &AttValues{Values: values},
		}
		if opts.Size.Enabled {
			node.Size = &Size{Value: nodeSize(opts.Size, p.Contacts)}
		}
		nodes = append(nodes, node)
	}
	doc.Graph.Nodes = Nodes{Count: len(nodes), Nodes: nodes}

	edges := make([]Edge, 0, len(g.Edges))
	for i, e := range g.Edges {
		edges = append(edges, Edge{
			ID:     strconv.Itoa(i),
			Source: e.Source,
			Target: e.Target,
			Color:  opts.EdgeColor,
		})
	}
	doc.Graph.Edges = Edges{Count: len(edges), Edges: edges}

	return doc, nil
}

func nodeSize(opts SizeOptions, contacts int) float64 {
	size := opts.Base + opts.Step*float64(contacts)
	if opts.Max > 0 && size > opts.Max {
		size = opts.Max
	}
	return size
}

// Write encodes g as an indented GEXF document.
func Write(w io.Writer, g *model.Graph, opts Options) error {
	doc, err := NewDocument(g, opts)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode GEXF: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteFile writes g to path. The file is replaced atomically, so a failed
// run never leaves a truncated graph behind.
func WriteFile(path string, g *model.Graph, opts Options) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".contactgraph-*.gexf")
	if err != nil {
		return fmt.Errorf("failed to create output in '%s': %w", dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, g, opts); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write output '%s': %w", path, err)
	}
	return nil
}
