package summary

import (
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agenthands/contactgraph/internal/core/model"
)

const DefaultTopN = 10

// Stats describes a built graph.
type Stats struct {
	Nodes      int                    `json:"nodes"`
	Edges      int                    `json:"edges"`
	ByCategory map[model.Category]int `json:"by_category"`
	// Registered users left without any unregistered contact.
	Isolated       int          `json:"isolated"`
	MaxOccurrences int          `json:"max_occurrences"`
	MeanOccurrence float64      `json:"mean_occurrences"`
	Communities    int          `json:"communities,omitempty"`
	Top            []TopContact `json:"top"`
}

// TopContact is one of the most shared unregistered phones.
type TopContact struct {
	Phone       string `json:"phone"`
	Occurrences int    `json:"occurrences"`
}

type Summarizer struct {
	TopN int
	// Mask shortens phones listed in Top; nil leaves them as is.
	Mask func(string) string
}

func NewSummarizer(topN int, mask func(string) string) *Summarizer {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Summarizer{
		TopN: topN,
		Mask: mask,
	}
}

func (s *Summarizer) Summarize(g *model.Graph) Stats {
	stats := Stats{
		Nodes:      len(g.Nodes),
		Edges:      len(g.Edges),
		ByCategory: make(map[model.Category]int, len(model.Categories)),
	}
	for _, c := range model.Categories {
		stats.ByCategory[c] = 0
	}

	var unregistered []model.Person
	total := 0
	communities := make(map[int]struct{})
	for _, n := range g.Nodes {
		stats.ByCategory[n.Category]++
		if n.Community != model.NoCommunity {
			communities[n.Community] = struct{}{}
		}
		if n.Registered() {
			if n.Contacts == 0 {
				stats.Isolated++
			}
			continue
		}
		unregistered = append(unregistered, n)
		total += n.Occurrences
		stats.MaxOccurrences = max(stats.MaxOccurrences, n.Occurrences)
	}
	stats.Communities = len(communities)
	if len(unregistered) > 0 {
		stats.MeanOccurrence = float64(total) / float64(len(unregistered))
	}

	slices.SortStableFunc(unregistered, func(a, b model.Person) int {
		if a.Occurrences != b.Occurrences {
			return b.Occurrences - a.Occurrences
		}
		return strings.Compare(a.ID, b.ID)
	})
	for _, n := range unregistered[:min(s.TopN, len(unregistered))] {
		phone := n.ID
		if s.Mask != nil {
			phone = s.Mask(phone)
		}
		stats.Top = append(stats.Top, TopContact{Phone: phone, Occurrences: n.Occurrences})
	}

	return stats
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("nodes", s.Nodes)
	enc.AddInt("edges", s.Edges)
	for _, c := range model.Categories {
		enc.AddInt(string(c), s.ByCategory[c])
	}
	enc.AddInt("isolated", s.Isolated)
	enc.AddInt("max_occurrences", s.MaxOccurrences)
	enc.AddFloat64("mean_occurrences", s.MeanOccurrence)
	if s.Communities > 0 {
		enc.AddInt("communities", s.Communities)
	}
	return nil
}

// Log writes the stats and the top contacts.
func (s Stats) Log(logger *zap.Logger) {
	logger.Info("Graph summary", zap.Object("stats", s))
	for i, t := range s.Top {
		logger.Debug("Top contact", zap.Int("rank", i+1), zap.String("phone", t.Phone), zap.Int("occurrences", t.Occurrences))
	}
}
