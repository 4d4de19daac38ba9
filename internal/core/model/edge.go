package model

// ContactEdge links a registered user to a phone from their phone book.
// The pair is unordered; Source is always the registered endpoint.
type ContactEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Key identifies the edge regardless of endpoint order.
func (e ContactEdge) Key() [2]string {
	if e.Source < e.Target {
		return [2]string{e.Source, e.Target}
	}
	return [2]string{e.Target, e.Source}
}

// Less orders edges by source, then target.
func (e ContactEdge) Less(o ContactEdge) bool {
	if e.Source != o.Source {
		return e.Source < o.Source
	}
	return e.Target < o.Target
}
