package extraction

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/contactgraph/internal/core/model"
)

// CSV columns. phone_number and contact are required.
const (
	ColPhoneNumber = "phone_number"
	ColContact     = "contact"
	ColAccountID   = "account_id"
	ColDisplayName = "display_name"
	ColZiiname     = "ziiname"
)

// CSVExtractor reads one (user, contact) pair per row. Rows of the same
// user are merged into one record; a row with an empty contact registers the
// user without adding a contact.
type CSVExtractor struct {
	Comma rune
}

func NewCSVExtractor() *CSVExtractor {
	return &CSVExtractor{Comma: ','}
}

func (e *CSVExtractor) Extract(ctx context.Context, r io.Reader) ([]model.UserRecord, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if e.Comma != 0 {
		reader.Comma = e.Comma
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{ColPhoneNumber, ColContact} {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidRecord, required)
		}
	}

	var records []model.UserRecord
	byPhone := make(map[string]int)

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		phone := getField(row, colIndex, ColPhoneNumber)
		if phone == "" {
			return nil, fmt.Errorf("%w at line %d: %s is required", ErrInvalidRecord, line, ColPhoneNumber)
		}

		i, ok := byPhone[phone]
		if !ok {
			i = len(records)
			byPhone[phone] = i
			records = append(records, model.UserRecord{PhoneNumber: phone})
		}
		rec := &records[i]

		if v := getField(row, colIndex, ColAccountID); v != "" {
			rec.AccountID = model.FlexString(v)
		}
		if v := getField(row, colIndex, ColDisplayName); v != "" {
			rec.DisplayName = v
		}
		if v := getField(row, colIndex, ColZiiname); v != "" {
			rec.Ziiname = v
		}
		if v := getField(row, colIndex, ColContact); v != "" {
			rec.ContactList = append(rec.ContactList, v)
		}
	}

	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

func getField(row []string, colIndex map[string]int, name string) string {
	i, ok := colIndex[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
