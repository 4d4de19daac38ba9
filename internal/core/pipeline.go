package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/contactgraph/internal/config"
	"github.com/agenthands/contactgraph/internal/core/community"
	"github.com/agenthands/contactgraph/internal/core/dedupe"
	"github.com/agenthands/contactgraph/internal/core/extraction"
	"github.com/agenthands/contactgraph/internal/core/model"
	"github.com/agenthands/contactgraph/internal/core/summary"
	"github.com/agenthands/contactgraph/internal/driver"
	"github.com/agenthands/contactgraph/internal/gexf"
)

// Pipeline is one conversion run: extract, build, detect communities,
// summarize, write GEXF and optionally export to Memgraph.
type Pipeline struct {
	InputPath  string
	OutputPath string

	Builder    *Builder
	Detector   community.CommunityDetector
	Summarizer *summary.Summarizer
	Options    gexf.Options
	Exporter   *Exporter
	Logger     *zap.Logger

	UUIDGenerator func() string
}

type Result struct {
	ImportID string
	Graph    *model.Graph
	Stats    summary.Stats
	Export   *ExportResult
	Duration time.Duration
}

// NewPipeline wires a pipeline from cfg. A nil driver disables the export.
func NewPipeline(cfg *config.Config, d driver.GraphDriver, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	detector, err := community.NewDetector(cfg.Community.Algorithm, cfg.Community.MaxIterations)
	if err != nil {
		return nil, err
	}

	mask := func(phone string) string {
		return gexf.Mask(phone, cfg.Graph.MaskPrefix, cfg.Graph.MaskSuffix)
	}
	if cfg.Graph.MaskPrefix == 0 {
		mask = nil
	}

	p := &Pipeline{
		InputPath:  cfg.Input.Path,
		OutputPath: cfg.Output.Path,
		Builder: NewBuilder(
			cfg.Graph.Threshold,
			dedupe.NewDeduplicator(cfg.Input.NormalizePhones),
			logger.Named("builder"),
		),
		Detector:   detector,
		Summarizer: summary.NewSummarizer(cfg.Summary.TopN, mask),
		Options:    opts,
		Logger:     logger,
		UUIDGenerator: func() string {
			return uuid.New().String()
		},
	}
	if d != nil {
		p.Exporter = NewExporter(d, cfg.Memgraph.BatchSize, cfg.Memgraph.Prune, logger.Named("export"))
	}
	return p, nil
}

// OptionsFromConfig translates the styling section of cfg into GEXF options.
func OptionsFromConfig(cfg *config.Config) (gexf.Options, error) {
	opts := gexf.DefaultOptions()
	opts.EdgeType = cfg.Output.EdgeType
	opts.Creator = cfg.Output.Creator
	opts.Description = cfg.Output.Description
	opts.MaskPrefix = cfg.Graph.MaskPrefix
	opts.MaskSuffix = cfg.Graph.MaskSuffix
	opts.Size = gexf.SizeOptions{
		Enabled: cfg.Size.Enabled,
		Base:    cfg.Size.Base,
		Step:    cfg.Size.Step,
		Max:     cfg.Size.Max,
	}

	colors := map[model.Category]string{
		model.CategoryRegistered: cfg.Colors.Registered,
		model.CategoryFrequent:   cfg.Colors.Frequent,
		model.CategoryInfrequent: cfg.Colors.Infrequent,
	}
	for category, hex := range colors {
		c, err := gexf.ParseColor(hex)
		if err != nil {
			return opts, fmt.Errorf("%s colour: %w", category, err)
		}
		style := opts.Styles[category]
		style.Color = c
		if category != model.CategoryRegistered {
			style.Label = cfg.Graph.UnknownLabel
		}
		opts.Styles[category] = style
	}

	edge, err := gexf.ParseColor(cfg.Colors.Edge)
	if err != nil {
		return opts, fmt.Errorf("edge colour: %w", err)
	}
	opts.EdgeColor = edge

	return opts, nil
}

// Convert builds the graph from records and assigns communities.
func (p *Pipeline) Convert(ctx context.Context, records []model.UserRecord) (*model.Graph, error) {
	g, err := p.Builder.Build(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.Detector == nil {
		return g, nil
	}

	communities, err := p.Detector.Detect(g.Nodes, g.Edges)
	if err != nil {
		return nil, fmt.Errorf("community detection failed: %w", err)
	}
	p.Logger.Info("Detected communities", zap.Int("count", len(communities)))
	return g.WithCommunities(community.Assign(communities)), nil
}

// Run executes the whole conversion.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{ImportID: p.UUIDGenerator()}
	log := p.Logger.With(zap.String("import_id", res.ImportID))

	log.Info("Reading users", zap.String("path", p.InputPath))
	records, err := extraction.ExtractFile(ctx, p.InputPath)
	if err != nil {
		return nil, err
	}
	log.Info("Read users", zap.Int("records", len(records)))

	g, err := p.Convert(ctx, records)
	if err != nil {
		return nil, err
	}
	res.Graph = g

	res.Stats = p.Summarizer.Summarize(g)
	res.Stats.Log(log)

	if err := gexf.WriteFile(p.OutputPath, g, p.Options); err != nil {
		return nil, err
	}
	log.Info("Wrote GEXF graph", zap.String("path", p.OutputPath))

	if p.Exporter != nil {
		exported, err := p.Exporter.Export(ctx, g, res.ImportID)
		if err != nil {
			return nil, fmt.Errorf("memgraph export failed: %w", err)
		}
		res.Export = &exported
	}

	res.Duration = time.Since(start)
	log.Info("Conversion finished", zap.Duration("duration", res.Duration))
	return res, nil
}
