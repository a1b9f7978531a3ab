package checkout

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsJSON = `[{"productId":"p1","name":"Tee","size":"M","price":120.5,"quantity":2}]`
const addressJSON = `{"fullname":"Ama Mensah","phone":"0244000000","region":"Greater Accra","city":"Accra","street":"12 High St"}`

func mustString(t *testing.T, v string) string {
	t.Helper()
	encoded, err := json.Marshal(v)
	require.NoError(t, err)
	return string(encoded)
}

func TestDecodePlainObject(t *testing.T) {
	raw := `{"userId":"u1","items":` + itemsJSON + `,"address":` + addressJSON + `}`

	details, err := Decode(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, "u1", details.BuyerID)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "p1", details.Items[0].ProductID)
	assert.Equal(t, 120.5, details.Items[0].UnitPrice)
	assert.Equal(t, 2, details.Items[0].Quantity)
	assert.Equal(t, "Accra", details.Address.City)
}

func TestDecodeStringEncodedFields(t *testing.T) {
	// The checkout client attaches items and address as JSON strings.
	raw := `{"userId":"u1","items":` + mustString(t, itemsJSON) + `,"address":` + mustString(t, addressJSON) + `}`

	details, err := Decode(json.RawMessage(raw))
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "Tee", details.Items[0].Name)
	assert.Equal(t, "Ama Mensah", details.Address.FullName)
}

func TestDecodeStringEncodedEnvelope(t *testing.T) {
	// The gateway sometimes round-trips the whole metadata object through a
	// string, so every layer may arrive encoded.
	inner := `{"userId":"u1","items":` + mustString(t, itemsJSON) + `,"address":` + mustString(t, addressJSON) + `}`
	raw := mustString(t, inner)

	details, err := Decode(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, "u1", details.BuyerID)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "M", details.Items[0].Size)
}

func TestDecodeMissingFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no userId", `{"items":` + itemsJSON + `,"address":` + addressJSON + `}`},
		{"no items", `{"userId":"u1","address":` + addressJSON + `}`},
		{"empty items", `{"userId":"u1","items":[],"address":` + addressJSON + `}`},
		{"no address", `{"userId":"u1","items":` + itemsJSON + `}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(json.RawMessage(tc.raw))
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, StageFields, decodeErr.Stage)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestDecodeStageReporting(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		stage Stage
	}{
		{"empty metadata", ``, StageEnvelope},
		{"null metadata", `null`, StageEnvelope},
		{"not an object", `[1,2]`, StageEnvelope},
		{"string of garbage", `"not json at all"`, StageEnvelope},
		{"broken items", `{"userId":"u1","items":"{{","address":` + addressJSON + `}`, StageItems},
		{"broken address", `{"userId":"u1","items":` + itemsJSON + `,"address":"%%"}`, StageAddress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(json.RawMessage(tc.raw))
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tc.stage, decodeErr.Stage)
		})
	}
}

func TestDecodeExtraMetadataKeysIgnored(t *testing.T) {
	raw := `{"userId":"u1","items":` + itemsJSON + `,"address":` + addressJSON + `,"custom_fields":[{"a":1}]}`

	details, err := Decode(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, "u1", details.BuyerID)
}

func TestUnwrapStringPassthrough(t *testing.T) {
	raw := json.RawMessage(`{"a":1}`)
	out, err := unwrapString(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}
