package types_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/n42chain/engineapi/types"
)

func TestEnvelopeV3RoundTrip(t *testing.T) {
	response := `{"executionPayload":` + payloadV3Vector +
		`,"blockValue":"0x676756","blobsBundle":{"commitments":[],"proofs":[],"blobs":[]},"shouldOverrideBuilder":false}`

	var envelope types.ExecutionPayloadEnvelopeV3
	require.NoError(t, json.Unmarshal([]byte(response), &envelope))
	require.Equal(t, types.NewU256(0x676756), envelope.BlockValue)
	require.False(t, envelope.ShouldOverrideBuilder)
	require.Equal(t, 0, envelope.BlobsBundle.Len())

	out, err := json.Marshal(&envelope)
	require.NoError(t, err)
	require.Equal(t, response, string(out))
}

func TestEnvelopeV3MissingField(t *testing.T) {
	response := `{"executionPayload":` + payloadV3Vector + `,"blockValue":"0x0"}`

	var envelope types.ExecutionPayloadEnvelopeV3
	err := json.Unmarshal([]byte(response), &envelope)
	require.True(t, types.IsMissingField(err))
}

func TestEnvelopeV2PayloadField(t *testing.T) {
	// A V2 payload in the field.
	v2Doc := strings.TrimSuffix(payloadV1Vector, "}") + `,"withdrawals":[]}`
	response := `{"executionPayload":` + v2Doc + `,"blockValue":"0x1"}`

	var envelope types.ExecutionPayloadEnvelopeV2
	require.NoError(t, json.Unmarshal([]byte(response), &envelope))
	_, ok := envelope.ExecutionPayload.AsV2()
	require.True(t, ok)
	require.Equal(t, types.NewU256(1), envelope.BlockValue)

	out, err := json.Marshal(&envelope)
	require.NoError(t, err)
	require.Equal(t, response, string(out))

	// Reducing to V1 drops the withdrawals.
	v1 := envelope.IntoV1Payload()
	require.EqualValues(t, 1, v1.BlockNumber)

	// A V1 payload in the field.
	response = `{"executionPayload":` + payloadV1Vector + `,"blockValue":"0x1"}`
	require.NoError(t, json.Unmarshal([]byte(response), &envelope))
	_, ok = envelope.ExecutionPayload.AsV2()
	require.False(t, ok)

	out, err = json.Marshal(&envelope)
	require.NoError(t, err)
	require.Equal(t, response, string(out))
}

func TestEnvelopeV4RoundTrip(t *testing.T) {
	response := `{"executionPayload":` + payloadV3Vector +
		`,"blockValue":"0x0","blobsBundle":{"commitments":[],"proofs":[],"blobs":[]},"shouldOverrideBuilder":true,"executionRequests":["0x01","0x02ab"]}`

	var envelope types.ExecutionPayloadEnvelopeV4
	require.NoError(t, json.Unmarshal([]byte(response), &envelope))
	require.True(t, envelope.ShouldOverrideBuilder)
	require.Equal(t, []hexutil.Bytes{{0x01}, {0x02, 0xab}}, envelope.ExecutionRequests)

	out, err := json.Marshal(envelope)
	require.NoError(t, err)
	require.Equal(t, response, string(out))
}

func TestEnvelopeV4MissingRequests(t *testing.T) {
	response := `{"executionPayload":` + payloadV3Vector +
		`,"blockValue":"0x0","blobsBundle":{"commitments":[],"proofs":[],"blobs":[]},"shouldOverrideBuilder":false}`

	var envelope types.ExecutionPayloadEnvelopeV4
	err := json.Unmarshal([]byte(response), &envelope)
	require.True(t, types.IsMissingField(err))
}
