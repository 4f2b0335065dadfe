package types_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/n42chain/engineapi/types"
)

func TestPayloadStatusSyncingRoundTrip(t *testing.T) {
	full := `{"status":"SYNCING","latestValidHash":null,"validationError":null}`

	var status types.PayloadStatusV1
	require.NoError(t, json.Unmarshal([]byte(full), &status))
	require.True(t, status.IsSyncing())
	require.Nil(t, status.LatestValidHash)
	require.Nil(t, status.ValidationError)

	out, err := json.Marshal(status)
	require.NoError(t, err)
	require.Equal(t, full, string(out))

	// A document without the error key decodes the same and re-encodes
	// with all three keys present.
	short := `{"status":"SYNCING","latestValidHash":null}`
	var status2 types.PayloadStatusV1
	require.NoError(t, json.Unmarshal([]byte(short), &status2))
	require.True(t, status2.IsSyncing())

	out, err = json.Marshal(status2)
	require.NoError(t, err)
	require.Equal(t, full, string(out))
}

func TestPayloadStatusInvalidVector(t *testing.T) {
	s := `{"status":"INVALID","latestValidHash":null,"validationError":"Failed to decode block"}`

	status := types.InvalidStatus("Failed to decode block")
	out, err := json.Marshal(status)
	require.NoError(t, err)
	require.Equal(t, s, string(out))

	var back types.PayloadStatusV1
	require.NoError(t, json.Unmarshal([]byte(s), &back))
	require.Equal(t, status, back)
	require.True(t, back.IsInvalid())
	require.Equal(t, "INVALID: Failed to decode block", back.String())
}

func TestPayloadStatusWithLatestValidHash(t *testing.T) {
	h := common.HexToHash("0x5655011482546f16b2312ef18e9fad03d6a52b1be95401aea884b222477f9e64")
	status := types.NewPayloadStatus(types.StatusValid).WithLatestValidHash(h)
	require.True(t, status.IsValid())

	out, err := json.Marshal(status)
	require.NoError(t, err)
	require.Equal(t,
		`{"status":"VALID","latestValidHash":"0x5655011482546f16b2312ef18e9fad03d6a52b1be95401aea884b222477f9e64","validationError":null}`,
		string(out))

	var back types.PayloadStatusV1
	require.NoError(t, json.Unmarshal(out, &back))
	require.NotNil(t, back.LatestValidHash)
	require.Equal(t, h, *back.LatestValidHash)
	require.Equal(t, "VALID", back.String())
}
