package worker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadDigestEsDeterministico(t *testing.T) {
	payload := json.RawMessage(`{"presupuesto_id":"abc-123"}`)

	d1 := payloadDigest(payload)
	d2 := payloadDigest(payload)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 40) // sha1 hex

	otro := payloadDigest(json.RawMessage(`{"presupuesto_id":"abc-124"}`))
	assert.NotEqual(t, d1, otro)
}

func TestDLQEntryRoundTripPreservaPayload(t *testing.T) {
	entry := DLQEntry{
		OriginalQueue: QueuePDF,
		JobType:       "pdf",
		Payload:       json.RawMessage(`{"presupuesto_id":"abc-123","cliente_email":"a@b.com"}`),
		Reason:        "render failed",
		FailedAt:      "2026-08-29T12:00:00Z",
		Attempts:      3,
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded DLQEntry
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, entry.OriginalQueue, decoded.OriginalQueue)
	assert.Equal(t, entry.Attempts, decoded.Attempts)

	// The redrive counter keys off the payload digest: it must survive the
	// marshal cycle byte for byte.
	assert.Equal(t, payloadDigest(entry.Payload), payloadDigest(decoded.Payload))

	var p PDFJobPayload
	require.NoError(t, json.Unmarshal(decoded.Payload, &p))
	assert.Equal(t, "abc-123", p.PresupuestoID)
	require.NotNil(t, p.ClienteEmail)
	assert.Equal(t, "a@b.com", *p.ClienteEmail)
}
