package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckbox_UnmarshalParam(t *testing.T) {
	for _, in := range []string{"on", "ON", "true", "1", "yes"} {
		var c Checkbox
		require.NoError(t, c.UnmarshalParam(in), in)
		assert.True(t, bool(c), in)
	}
	for _, in := range []string{"", "off", "false", "0", "no"} {
		c := Checkbox(true)
		require.NoError(t, c.UnmarshalParam(in), in)
		assert.False(t, bool(c), in)
	}

	var c Checkbox
	assert.Error(t, c.UnmarshalParam("talvez"))
}

func TestCheckbox_UnmarshalJSON(t *testing.T) {
	var req CreateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"pickup":true}`), &req))
	assert.True(t, bool(req.Pickup))

	require.NoError(t, json.Unmarshal([]byte(`{"pickup":"on"}`), &req))
	assert.True(t, bool(req.Pickup))

	require.NoError(t, json.Unmarshal([]byte(`{"pickup":false}`), &req))
	assert.False(t, bool(req.Pickup))

	assert.Error(t, json.Unmarshal([]byte(`{"pickup":"talvez"}`), &req))
}
