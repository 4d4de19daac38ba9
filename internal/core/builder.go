package core

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/agenthands/contactgraph/internal/core/common"
	"github.com/agenthands/contactgraph/internal/core/dedupe"
	"github.com/agenthands/contactgraph/internal/core/model"
)

// DefaultThreshold is the occurrence count an unregistered phone must
// exceed to be considered frequent.
const DefaultThreshold = 10

// Builder turns raw user records into the categorized contact graph.
type Builder struct {
	Threshold    int
	Deduplicator *dedupe.Deduplicator
	Logger       *zap.Logger
}

func NewBuilder(threshold int, deduplicator *dedupe.Deduplicator, logger *zap.Logger) *Builder {
	if deduplicator == nil {
		deduplicator = dedupe.NewDeduplicator(false)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		Threshold:    threshold,
		Deduplicator: deduplicator,
		Logger:       logger,
	}
}

type registeredUser struct {
	accountID   string
	displayName string
	ziiname     string
	contacts    []string
}

// Build runs the aggregation pass. The result does not depend on record
// order except for attribute conflicts between duplicate records, where the
// later non-empty value wins.
func (b *Builder) Build(records []model.UserRecord) (*model.Graph, error) {
	users, err := b.registeredUsers(records)
	if err != nil {
		return nil, err
	}
	phones := common.SortedKeys(users)

	occurrences := b.occurrences(users)
	contacts := b.nonRegisteredContacts(phones, users)

	b.Logger.Debug("Getting phones adjacency")
	var edges []model.ContactEdge
	for _, phone := range phones {
		for _, c := range contacts[phone] {
			edges = append(edges, model.ContactEdge{Source: phone, Target: c})
		}
	}
	slices.SortFunc(edges, func(a, b model.ContactEdge) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})

	nodes := make([]model.Person, 0, len(users))
	for _, phone := range phones {
		u := users[phone]
		nodes = append(nodes, model.Person{
			ID:          phone,
			Category:    model.CategoryRegistered,
			AccountID:   u.accountID,
			DisplayName: u.displayName,
			Ziiname:     u.ziiname,
			Occurrences: occurrences[phone],
			Contacts:    len(contacts[phone]),
			Community:   model.NoCommunity,
		})
	}
	for _, phone := range common.SortedKeys(occurrences) {
		if _, ok := users[phone]; ok {
			continue
		}
		n := occurrences[phone]
		nodes = append(nodes, model.Person{
			ID:          phone,
			Category:    b.Classify(n),
			Occurrences: n,
			Contacts:    n,
			Community:   model.NoCommunity,
		})
	}
	slices.SortFunc(nodes, func(a, b model.Person) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	b.Logger.Info("Built contact graph",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
		zap.Int("threshold", b.Threshold),
	)
	return model.NewGraph(nodes, edges, b.Threshold), nil
}

// Classify categorizes an unregistered phone by its occurrence count.
func (b *Builder) Classify(occurrences int) model.Category {
	if occurrences > b.Threshold {
		return model.CategoryFrequent
	}
	return model.CategoryInfrequent
}

func (b *Builder) registeredUsers(records []model.UserRecord) (map[string]*registeredUser, error) {
	b.Logger.Debug("Getting registered users")

	users := make(map[string]*registeredUser, len(records))
	for i, rec := range records {
		phone := b.Deduplicator.Phone(rec.PhoneNumber)
		if phone == "" {
			return nil, fmt.Errorf("record %d has no phone number", i)
		}

		u, ok := users[phone]
		if !ok {
			u = &registeredUser{}
			users[phone] = u
		} else {
			b.Logger.Debug("Merging duplicate user record", zap.String("phone", phone), zap.Int("index", i))
		}
		if v := rec.AccountID.String(); v != "" {
			u.accountID = v
		}
		if rec.DisplayName != "" {
			u.displayName = rec.DisplayName
		}
		if rec.Ziiname != "" {
			u.ziiname = rec.Ziiname
		}
		u.contacts = append(u.contacts, rec.ContactList...)
	}

	for phone, u := range users {
		u.contacts = without(b.Deduplicator.Unique(u.contacts), phone)
	}

	b.Logger.Info("Got registered users", zap.Int("count", len(users)))
	return users, nil
}

// occurrences counts, for every phone, the phone books it appears in.
// Registered phones are counted too, before they are dropped from contact
// lists.
func (b *Builder) occurrences(users map[string]*registeredUser) map[string]int {
	b.Logger.Debug("Getting connectivity degrees")

	counts := make(map[string]int)
	for _, u := range users {
		for _, c := range u.contacts {
			counts[c]++
		}
	}
	return counts
}

// nonRegisteredContacts strips registered users from every contact list.
func (b *Builder) nonRegisteredContacts(phones []string, users map[string]*registeredUser) map[string][]string {
	b.Logger.Debug("Getting users' non registered contacts")

	out := make(map[string][]string, len(users))
	total := 0
	for _, phone := range phones {
		var contacts []string
		for _, c := range users[phone].contacts {
			if _, registered := users[c]; registered {
				continue
			}
			contacts = append(contacts, c)
		}
		slices.Sort(contacts)
		out[phone] = contacts
		total += len(contacts)
	}

	b.Logger.Info("Got non registered contacts", zap.Int("count", total))
	return out
}

func without(phones []string, phone string) []string {
	return slices.DeleteFunc(phones, func(p string) bool { return p == phone })
}
