package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserRecord is one registered user as exported by the upstream service.
type UserRecord struct {
	PhoneNumber string     `json:"phoneNumber" validate:"required"`
	AccountID   FlexString `json:"accountId"`
	DisplayName string     `json:"displayName"`
	Ziiname     string     `json:"ziiname"`
	ContactList []string   `json:"contactList"`
}

// FlexString accepts a JSON string or number. Account ids are exported as
// either, depending on the upstream version.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("account id must be a string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
