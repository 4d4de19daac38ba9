package extraction

import (
	"context"
	"io"

	"github.com/agenthands/contactgraph/internal/core/common"
	"github.com/agenthands/contactgraph/internal/core/model"
)

// JSONExtractor reads a JSON array of user objects:
//
//	[{"phoneNumber": "...", "accountId": 1, "displayName": "...",
//	  "ziiname": "...", "contactList": ["...", "..."]}]
type JSONExtractor struct{}

func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

func (e *JSONExtractor) Extract(ctx context.Context, r io.Reader) ([]model.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := common.DecodeJSON[[]model.UserRecord](r)
	if err != nil {
		return nil, err
	}

	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}
