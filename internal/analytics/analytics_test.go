package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEventLatencyIsMilliseconds(t *testing.T) {
	e := Event{
		Name:          EventRoastGenerated,
		Persona:       "witty",
		Provider:      "cohere",
		MessageLength: 42,
		Latency:       1500 * time.Millisecond,
		Timestamp:     time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}

	payload, err := marshalEvent(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.EqualValues(t, 1500, decoded["latency_ms"])
	assert.Equal(t, "roast_generated", decoded["name"])
	assert.Equal(t, "witty", decoded["persona"])
}

func TestMarshalEventSubMillisecondLatency(t *testing.T) {
	payload, err := marshalEvent(Event{Name: EventFallbackServed, Latency: 900 * time.Microsecond})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.EqualValues(t, 0, decoded["latency_ms"])
}
