package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockCall struct {
	Query  string
	Params map[string]interface{}
}

type MockDriver struct {
	Calls      []MockCall
	MockResult neo4j.EagerResult
	Err        error
	// FailOn makes ExecuteQuery fail only for this query.
	FailOn     string
	IndexErr   error
	IndexCalls int
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Calls = append(m.Calls, MockCall{Query: query, Params: params})
	if m.Err != nil && (m.FailOn == "" || m.FailOn == query) {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.IndexCalls++
	return m.IndexErr
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockDriver) callsFor(query string) []MockCall {
	var out []MockCall
	for _, c := range m.Calls {
		if c.Query == query {
			out = append(out, c)
		}
	}
	return out
}
