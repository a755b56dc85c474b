package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePayload_TableJoin(t *testing.T) {
	req := require.New(t)

	payload, err := decodePayload[TableJoinRequest](json.RawMessage(`{"name":"Alice"}`))
	req.NoError(err)
	req.Equal("Alice", payload.Name)
}

func TestDecodePayload_RejectsMissingFields(t *testing.T) {
	req := require.New(t)

	_, err := decodePayload[TableJoinRequest](json.RawMessage(`{}`))
	req.Error(err)

	_, err = decodePayload[SoloSpinRequest](json.RawMessage(`{"sessionId":""}`))
	req.Error(err)

	_, err = decodePayload[BetUpdateRequest](json.RawMessage(`{"name":"Alice","balance":10,"betsPlaced":-1}`))
	req.Error(err)
}

func TestDecodePayload_RejectsMalformedJSON(t *testing.T) {
	req := require.New(t)

	_, err := decodePayload[TableJoinRequest](json.RawMessage(`{"name":`))
	req.Error(err)

	_, err = decodePayload[TableJoinRequest](nil)
	req.Error(err)
}

func TestTranslate_UnknownEventIsSkipped(t *testing.T) {
	name, _ := translate(nil)
	require.Empty(t, name)
}

func TestEnvelope_RoundTrip(t *testing.T) {
	req := require.New(t)

	env, err := newEnvelope(EventError, ErrorReply{Message: "boom"})
	req.NoError(err)

	raw, err := json.Marshal(env)
	req.NoError(err)

	var decoded Envelope
	req.NoError(json.Unmarshal(raw, &decoded))
	req.Equal(EventError, decoded.Event)
	req.JSONEq(`{"message":"boom"}`, string(decoded.Data))
}
