package model

import "fmt"

// Category classifies a node by registration and phone-book frequency.
type Category string

const (
	CategoryRegistered Category = "registered"
	CategoryFrequent   Category = "frequent"
	CategoryInfrequent Category = "infrequent"
)

// Categories lists every category in output order.
var Categories = []Category{CategoryRegistered, CategoryFrequent, CategoryInfrequent}

func (c Category) Valid() bool {
	switch c {
	case CategoryRegistered, CategoryFrequent, CategoryInfrequent:
		return true
	}
	return false
}

// NoCommunity marks a person whose community was not computed.
const NoCommunity = -1

type Person struct {
	ID          string   `json:"id"` // phone number
	Category    Category `json:"category"`
	AccountID   string   `json:"account_id,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Ziiname     string   `json:"ziiname,omitempty"`
	Occurrences int      `json:"occurrences"` // phone books containing this phone
	Contacts    int      `json:"contacts"`    // incident edges
	Community   int      `json:"community"`
}

func (p Person) Registered() bool {
	return p.Category == CategoryRegistered
}

// Name returns the best human readable name of a registered user.
func (p Person) Name() string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Ziiname != "":
		return p.Ziiname
	}
	return p.ID
}

func (p Person) String() string {
	return fmt.Sprintf("%s(%s)", p.ID, p.Category)
}
