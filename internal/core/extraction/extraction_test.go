package extraction

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/contactgraph/internal/core/model"
)

// Both fixtures describe the same three users.
func assertFixtureUsers(t *testing.T, records []model.UserRecord) {
	t.Helper()

	require.Len(t, records, 3)

	assert.Equal(t, "+15550001", records[0].PhoneNumber)
	assert.Equal(t, model.FlexString("101"), records[0].AccountID)
	assert.Equal(t, "Alice", records[0].DisplayName)
	assert.Equal(t, "alice", records[0].Ziiname)
	assert.Equal(t, []string{"+15550002", "+15559001", "+15559001", "+15559002"}, records[0].ContactList)

	assert.Equal(t, model.FlexString("acc-102"), records[1].AccountID)
	assert.Equal(t, []string{"+15550001", "+15559001"}, records[1].ContactList)

	assert.Equal(t, "+15550003", records[2].PhoneNumber)
	assert.Empty(t, records[2].AccountID)
	assert.Equal(t, "carol", records[2].Ziiname)
	assert.Empty(t, records[2].ContactList)
}

func TestExtractFile_JSON(t *testing.T) {
	records, err := ExtractFile(context.Background(), "testdata/contacts.json")
	require.NoError(t, err)
	assertFixtureUsers(t, records)
}

func TestExtractFile_CSV(t *testing.T) {
	records, err := ExtractFile(context.Background(), "testdata/contacts.csv")
	require.NoError(t, err)
	assertFixtureUsers(t, records)
}

func TestExtractFile_Errors(t *testing.T) {
	_, err := ExtractFile(context.Background(), "testdata/missing.json")
	assert.Error(t, err)

	_, err = ExtractFile(context.Background(), "testdata/contacts.xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJSONExtractor_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty array", `[]`, ErrEmptyInput},
		{"missing phone", `[{"displayName": "Alice", "contactList": []}]`, ErrInvalidRecord},
		{"bad account id", `[{"phoneNumber": "1", "accountId": true}]`, nil},
		{"not an array", `{"phoneNumber": "1"}`, nil},
		{"truncated", `[{"phoneNumber": "1"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSONExtractor().Extract(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestJSONExtractor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJSONExtractor().Extract(ctx, strings.NewReader(`[{"phoneNumber": "1"}]`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVExtractor_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty file", ``, ErrEmptyInput},
		{"header only", "phone_number,contact\n", ErrEmptyInput},
		{"missing contact column", "phone_number,display_name\n1,Alice\n", ErrInvalidRecord},
		{"missing phone", "phone_number,contact\n,2\n", ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVExtractor().Extract(context.Background(), strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCSVExtractor_Semicolon(t *testing.T) {
	ex := &CSVExtractor{Comma: ';'}
	records, err := ex.Extract(context.Background(), strings.NewReader("Phone_Number;Contact\n1;2\n1;3\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"2", "3"}, records[0].ContactList)
}
