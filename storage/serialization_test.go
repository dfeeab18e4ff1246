package storage

import (
	"testing"

	"github.com/poiesic/identisearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyDetailRoundTrip(t *testing.T) {
	detail := &core.PartyDetail{
		EntityKey:    "CUST-00000001",
		FullName:     "Avery Collins",
		TaxID:        "123-45-6789",
		TaxIDLast4:   "6789",
		Street:       "44 Juniper Ln",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "73301",
		EntityType:   "PERSON",
		CustomerType: "RETAIL",
	}

	data := MarshalPartyDetail(detail)
	require.NotEmpty(t, data)

	got, err := UnmarshalPartyDetail(data)
	require.NoError(t, err)
	assert.Equal(t, detail, got)
}

func TestPartyDetailRoundTrip_SparseRecord(t *testing.T) {
	detail := &core.PartyDetail{EntityKey: "CUST-00000002"}

	got, err := UnmarshalPartyDetail(MarshalPartyDetail(detail))
	require.NoError(t, err)
	assert.Equal(t, detail, got)
}

func TestUnmarshalPartyDetail_Corrupt(t *testing.T) {
	detail := &core.PartyDetail{EntityKey: "CUST-00000003", FullName: "Truncate Me"}
	data := MarshalPartyDetail(detail)

	_, err := UnmarshalPartyDetail(data[:len(data)/2])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
