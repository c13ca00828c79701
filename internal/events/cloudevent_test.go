package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudEvent_Envelope(t *testing.T) {
	ce, err := NewCloudEvent("service-storefront", BookingCreated, BookingCreatedEvent{
		BookingID: "0192f0c8-7d1e-7c3a-9d2b-3f4e5a6b7c8d",
		ServiceID: "banho",
		PetSize:   "grande",
		Pickup:    true,
		Total:     decimal.NewFromInt(90),
		Currency:  "BRL",
	})
	require.NoError(t, err)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.NotEmpty(t, ce.ID)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, BookingCreated, parsed.Type)

	var evt BookingCreatedEvent
	require.NoError(t, parsed.ParseData(&evt))
	assert.Equal(t, "banho", evt.ServiceID)
	assert.True(t, evt.Total.Equal(decimal.NewFromInt(90)))
}

func TestParseCloudEvent_Malformed(t *testing.T) {
	_, err := ParseCloudEvent([]byte("not-json"))
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicStorefrontEvents, CloudEvent{}))
	assert.NoError(t, p.Close())
}
