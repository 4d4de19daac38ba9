//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/agenthands/contactgraph/internal/config"
	"github.com/agenthands/contactgraph/internal/core"
	"github.com/agenthands/contactgraph/internal/driver"
)

func setup(t *testing.T) (*config.Config, *driver.MemgraphDriver) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	cfg, _, err := config.LoadOrDefault("../../config/config.toml")
	require.NoError(t, err)
	cfg.ApplyEnv()
	if os.Getenv("MEMGRAPH_URI") == "" {
		t.Skip("MEMGRAPH_URI not set")
	}

	cfg.Input.Path = "../../internal/core/extraction/testdata/contacts.json"
	cfg.Output.Path = filepath.Join(t.TempDir(), "graph.gexf")
	cfg.Memgraph.Enabled = true
	cfg.Memgraph.Prune = true
	cfg.Community.Algorithm = "components"

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close(context.Background()) })
	return cfg, d
}

func TestMemgraphExport(t *testing.T) {
	cfg, d := setup(t)
	ctx := context.Background()

	p, err := core.NewPipeline(cfg, d, zaptest.NewLogger(t))
	require.NoError(t, err)
	importID := uuid.New().String()
	p.UUIDGenerator = func() string { return importID }

	res, err := p.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.Export)

	result, err := d.ExecuteQuery(ctx, driver.CountImportQuery, map[string]interface{}{"import_id": importID})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	persons, _ := result.Records[0].Get("persons")
	edges, _ := result.Records[0].Get("edges")
	assert.Equal(t, int64(len(res.Graph.Nodes)), persons)
	assert.Equal(t, int64(len(res.Graph.Edges)), edges)

	// A second import replaces the first.
	second := uuid.New().String()
	p.UUIDGenerator = func() string { return second }
	_, err = p.Run(ctx)
	require.NoError(t, err)

	result, err = d.ExecuteQuery(ctx, driver.CountImportQuery, map[string]interface{}{"import_id": importID})
	require.NoError(t, err)
	persons, _ = result.Records[0].Get("persons")
	assert.Equal(t, int64(0), persons)
}
