package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Identifiable is implemented by every stored content record.
type Identifiable interface {
	SetID(id string)
}

// DocumentID decodes a legacy identifier written either as a plain string
// or as an extended-JSON object such as {"$oid": "..."}.
type DocumentID string

// UnmarshalJSON implements json.Unmarshaler.
func (d *DocumentID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DocumentID(strings.TrimSpace(s))
		return nil
	case '{':
		var obj struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*d = DocumentID(strings.TrimSpace(obj.OID))
		return nil
	}
	return fmt.Errorf("document id: unsupported value %s", b)
}

type documentIdentity struct {
	ID       DocumentID `json:"id"`
	LegacyID DocumentID `json:"_id"`
}

// DecodeDocument unmarshals raw into dst and sets its canonical id from
// either "id" or "_id", preferring "id" when both are present.
func DecodeDocument(raw []byte, dst Identifiable) error {
	var identity documentIdentity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return fmt.Errorf("decode document identity: %w", err)
	}
	// dst's own "id" field would fail on an {"$oid"} object, so strip ids first.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	delete(fields, "id")
	delete(fields, "_id")
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	id := identity.ID
	if id == "" {
		id = identity.LegacyID
	}
	dst.SetID(string(id))
	return nil
}
