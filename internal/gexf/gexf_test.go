package gexf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/contactgraph/internal/core/model"
)

func testGraph() *model.Graph {
	nodes := []model.Person{
		{ID: "+15550001", Category: model.CategoryRegistered, AccountID: "101", DisplayName: "Alice & Co", Contacts: 2, Community: model.NoCommunity},
		{ID: "+15550003", Category: model.CategoryRegistered, Ziiname: "carol", Community: model.NoCommunity},
		{ID: "+15559001", Category: model.CategoryFrequent, Occurrences: 11, Contacts: 11, Community: model.NoCommunity},
		{ID: "+15559002", Category: model.CategoryInfrequent, Occurrences: 1, Contacts: 1, Community: model.NoCommunity},
	}
	edges := []model.ContactEdge{
		{Source: "+15550001", Target: "+15559001"},
		{Source: "+15550001", Target: "+15559002"},
	}
	return model.NewGraph(nodes, edges, 10)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testGraph(), DefaultOptions()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<gexf xmlns="http://gexf.net/1.3" xmlns:viz="http://gexf.net/1.3/viz" version="1.3">`)
	assert.Contains(t, out, `<graph mode="static" defaultedgetype="undirected">`)
	assert.Contains(t, out, `<viz:color r="206" g="84" b="255" hex="#ce54ff">`)
	assert.Contains(t, out, `label="Alice &amp; Co"`)
	assert.Contains(t, out, `<attvalue for="2" value="+1555..."></attvalue>`)
	assert.Contains(t, out, `<edge id="0" source="+15550001" target="+15559001">`)
	assert.NotContains(t, out, "viz:size")
	assert.NotContains(t, out, `title="community"`)
}

func TestWrite_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testGraph(), DefaultOptions()))

	doc, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, Namespace, doc.Xmlns)
	assert.Equal(t, VizNamespace, doc.XmlnsViz)
	assert.Equal(t, Version, doc.Version)
	require.NotNil(t, doc.Meta)
	assert.Equal(t, "contactgraph", doc.Meta.Creator)
	require.Len(t, doc.Graph.Attributes, 1)
	assert.Len(t, doc.Graph.Attributes[0].Attributes, 5)

	nodes := doc.Graph.Nodes.Nodes
	require.Len(t, nodes, 4)
	assert.Equal(t, 4, doc.Graph.Nodes.Count)

	alice := nodes[0]
	assert.Equal(t, "Alice & Co", alice.Label)
	require.NotNil(t, alice.Color)
	assert.Equal(t, "#ce54ff", alice.Color.Hex)
	id, _ := alice.Value(AttrID)
	assert.Equal(t, "101", id)
	phone, _ := alice.Value(AttrPhone)
	assert.Equal(t, "+15550001", phone)

	carol := nodes[1]
	assert.Equal(t, "carol", carol.Label)

	frequent := nodes[2]
	assert.Equal(t, "???", frequent.Label)
	assert.Equal(t, "#ffff00", frequent.Color.Hex)
	phone, _ = frequent.Value(AttrPhone)
	assert.Equal(t, "+15559001", phone)
	name, _ := frequent.Value(AttrName)
	assert.Empty(t, name)
	occ, _ := frequent.Value(AttrOccurrences)
	assert.Equal(t, "11", occ)

	infrequent := nodes[3]
	assert.Equal(t, "#333333", infrequent.Color.Hex)
	phone, _ = infrequent.Value(AttrPhone)
	assert.Equal(t, "+1555...", phone)
	category, _ := infrequent.Value(AttrCategory)
	assert.Equal(t, "infrequent", category)

	edges := doc.Graph.Edges.Edges
	require.Len(t, edges, 2)
	assert.Equal(t, "1", edges[1].ID)
	assert.Equal(t, "+15559002", edges[1].Target)
	assert.Equal(t, "#000000", edges[1].Color.Hex)
}

func TestWrite_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Write(&a, testGraph(), DefaultOptions()))
	require.NoError(t, Write(&b, testGraph(), DefaultOptions()))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWrite_CommunitiesAndSize(t *testing.T) {
	g := testGraph().WithCommunities(map[string]int{"+15550001": 0, "+15559001": 0, "+15559002": 0, "+15550003": 1})
	opts := DefaultOptions()
	opts.EdgeType = EdgeTypeDirected
	opts.Size.Enabled = true

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g, opts))

	doc, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, EdgeTypeDirected, doc.Graph.DefaultEdgeType)
	assert.Len(t, doc.Graph.Attributes[0].Attributes, 6)

	carol := doc.Graph.Nodes.Nodes[1]
	community, ok := carol.Value(AttrCommunity)
	require.True(t, ok)
	assert.Equal(t, "1", community)
	require.NotNil(t, carol.Size)
	assert.Equal(t, 10.0, carol.Size.Value)

	frequent := doc.Graph.Nodes.Nodes[2]
	assert.Equal(t, 21.0, frequent.Size.Value)
}

func TestNewDocument_Errors(t *testing.T) {
	opts := DefaultOptions()
	opts.EdgeType = "mutual"
	_, err := NewDocument(testGraph(), opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	delete(opts.Styles, model.CategoryFrequent)
	_, err = NewDocument(testGraph(), opts)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.gexf")

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, WriteFile(path, testGraph(), DefaultOptions()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := Read(f)
	require.NoError(t, err)
	assert.Len(t, doc.Graph.Nodes.Nodes, 4)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFile_MissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "graph.gexf"), testGraph(), DefaultOptions())
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "+1555...", Mask("+15550001", 5, "..."))
	assert.Equal(t, "123...", Mask("123", 5, "..."))
	assert.Equal(t, "", Mask("", 5, ""))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ce54ff", want: Color{R: 206, G: 84, B: 255, Hex: "#ce54ff"}},
		{in: "FFFF00", want: Color{R: 255, G: 255, B: 0, Hex: "#ffff00"}},
		{in: "#000", want: Color{Hex: "#000000"}},
		{in: "#12345", wantErr: true},
		{in: "purple", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}
