package stripe

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test_secret"

func signedHeader(t *testing.T, payload []byte, timestamp int64) string {
	t.Helper()
	sig := hex.EncodeToString(ComputeSignature(timestamp, payload, testSecret))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, sig)
}

func TestConstructEvent_ValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","status":"succeeded"}}}`)
	header := signedHeader(t, payload, time.Now().Unix())

	event, err := ConstructEvent(payload, header, testSecret)

	assert.NoError(t, err)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Equal(t, "evt_1", event.ID)
}

func TestConstructEvent_MissingHeader(t *testing.T) {
	_, err := ConstructEvent([]byte(`{}`), "", testSecret)
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestConstructEvent_WrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"account.updated"}`)
	timestamp := time.Now().Unix()
	sig := hex.EncodeToString(ComputeSignature(timestamp, payload, "whsec_other"))
	header := fmt.Sprintf("t=%d,v1=%s", timestamp, sig)

	_, err := ConstructEvent(payload, header, testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_TamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	header := signedHeader(t, payload, time.Now().Unix())

	tampered := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","amount":999999}`)
	_, err := ConstructEvent(tampered, header, testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_StaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"account.updated"}`)
	header := signedHeader(t, payload, time.Now().Add(-10*time.Minute).Unix())

	_, err := ConstructEvent(payload, header, testSecret)
	assert.ErrorIs(t, err, ErrStaleSignature)
}

func TestConstructEvent_SecondValidSignatureAccepted(t *testing.T) {
	// Secret rotation: Stripe sends one v1 per active secret.
	payload := []byte(`{"id":"evt_1","type":"account.updated"}`)
	timestamp := time.Now().Unix()
	oldSig := hex.EncodeToString(ComputeSignature(timestamp, payload, "whsec_retired"))
	newSig := hex.EncodeToString(ComputeSignature(timestamp, payload, testSecret))
	header := fmt.Sprintf("t=%d,v1=%s,v1=%s", timestamp, oldSig, newSig)

	event, err := ConstructEvent(payload, header, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
}

func TestConstructEvent_GarbageHeader(t *testing.T) {
	_, err := ConstructEvent([]byte(`{}`), "not-a-signature-header", testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
