package core

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/agenthands/contactgraph/internal/core/model"
	"github.com/agenthands/contactgraph/internal/driver"
)

const DefaultBatchSize = 1000

// Exporter copies a contact graph into Memgraph.
type Exporter struct {
	Driver    driver.GraphDriver
	BatchSize int
	Prune     bool
	Logger    *zap.Logger
	Now       func() time.Time
}

type ExportResult struct {
	Persons int
	Edges   int
	Pruned  int
}

func NewExporter(d driver.GraphDriver, batchSize int, prune bool, logger *zap.Logger) *Exporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		Driver:    d,
		BatchSize: batchSize,
		Prune:     prune,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Export upserts every person and contact edge, tagged with importID.
func (e *Exporter) Export(ctx context.Context, g *model.Graph, importID string) (ExportResult, error) {
	var res ExportResult

	if err := e.Driver.BuildIndices(ctx); err != nil {
		return res, fmt.Errorf("failed to build indices: %w", err)
	}

	importedAt := e.Now().UTC().Format(time.RFC3339)

	for start := 0; start < len(g.Nodes); start += e.BatchSize {
		end := min(start+e.BatchSize, len(g.Nodes))
		batch := make([]map[string]interface{}, 0, end-start)
		for _, n := range g.Nodes[start:end] {
			name := ""
			if n.Registered() {
				name = n.Name()
			}
			batch = append(batch, map[string]interface{}{
				"phone":       n.ID,
				"category":    string(n.Category),
				"account_id":  n.AccountID,
				"name":        name,
				"occurrences": n.Occurrences,
				"contacts":    n.Contacts,
				"community":   n.Community,
			})
		}

		params := map[string]interface{}{
			"nodes":       batch,
			"import_id":   importID,
			"imported_at": importedAt,
		}
		if _, err := e.Driver.ExecuteQuery(ctx, driver.SavePersonsQuery, params); err != nil {
			return res, fmt.Errorf("failed to save persons %d-%d: %w", start, end, err)
		}
		res.Persons += len(batch)
		e.Logger.Debug("Saved persons", zap.Int("saved", res.Persons), zap.Int("total", len(g.Nodes)))
	}

	for start := 0; start < len(g.Edges); start += e.BatchSize {
		end := min(start+e.BatchSize, len(g.Edges))
		batch := make([]map[string]interface{}, 0, end-start)
		for _, edge := range g.Edges[start:end] {
			batch = append(batch, map[string]interface{}{
				"source": edge.Source,
				"target": edge.Target,
			})
		}

		params := map[string]interface{}{
			"edges":       batch,
			"import_id":   importID,
			"imported_at": importedAt,
		}
		if _, err := e.Driver.ExecuteQuery(ctx, driver.SaveContactEdgesQuery, params); err != nil {
			return res, fmt.Errorf("failed to save contacts %d-%d: %w", start, end, err)
		}
		res.Edges += len(batch)
		e.Logger.Debug("Saved contacts", zap.Int("saved", res.Edges), zap.Int("total", len(g.Edges)))
	}

	if e.Prune {
		params := map[string]interface{}{"import_id": importID}
		for _, q := range []string{driver.DeleteStaleEdgesQuery, driver.DeleteStalePersonsQuery} {
			result, err := e.Driver.ExecuteQuery(ctx, q, params)
			if err != nil {
				return res, fmt.Errorf("failed to prune stale data: %w", err)
			}
			res.Pruned += deletedCount(result.Records)
		}
	}

	e.Logger.Info("Exported graph to Memgraph",
		zap.String("import_id", importID),
		zap.Int("persons", res.Persons),
		zap.Int("edges", res.Edges),
		zap.Int("pruned", res.Pruned),
	)
	return res, nil
}

func deletedCount(records []*neo4j.Record) int {
	total := 0
	for _, rec := range records {
		v, ok := rec.Get("deleted")
		if !ok {
			continue
		}
		if n, ok := v.(int64); ok {
			total += int(n)
		}
	}
	return total
}
