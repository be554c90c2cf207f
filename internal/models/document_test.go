package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocumentIdentity(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "canonical id", raw: `{"id":"abc","name":"Germany"}`, want: "abc"},
		{name: "legacy string id", raw: `{"_id":"def","name":"Germany"}`, want: "def"},
		{name: "legacy object id", raw: `{"_id":{"$oid":"5f1d"},"name":"Germany"}`, want: "5f1d"},
		{name: "id wins over _id", raw: `{"id":"abc","_id":"def","name":"Germany"}`, want: "abc"},
		{name: "no id", raw: `{"name":"Germany"}`, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var country Country
			require.NoError(t, DecodeDocument([]byte(tc.raw), &country))
			assert.Equal(t, tc.want, country.ID)
			assert.Equal(t, "Germany", country.Name)
		})
	}
}

func TestDecodeDocumentRejectsBadID(t *testing.T) {
	var country Country
	assert.Error(t, DecodeDocument([]byte(`{"_id":42}`), &country))
}

func TestMenuItemsScan(t *testing.T) {
	var items MenuItems
	require.NoError(t, items.Scan([]byte(`[{"id":"1","title":"Home","url":"/"}]`)))
	require.Len(t, items, 1)
	assert.Equal(t, "/", items[0].URL)

	require.NoError(t, items.Scan(nil))
	assert.NotNil(t, items)
	assert.Len(t, items, 0)

	value, err := MenuItems(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

func TestScholarshipHasTag(t *testing.T) {
	s := Scholarship{Tags: []string{"graduate", "stem"}}
	assert.True(t, s.HasTag("stem"))
	assert.False(t, s.HasTag("Stem"))
}
