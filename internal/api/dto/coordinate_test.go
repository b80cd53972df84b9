package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoordinate_Unmarshal(t *testing.T) {
	t.Parallel()

	type payload struct {
		Latitude Coordinate `json:"latitude"`
	}

	cases := []struct {
		name string
		json string
		want *float64
	}{
		{name: "number", json: `{"latitude": 6.9271}`, want: ptr(6.9271)},
		{name: "numeric string", json: `{"latitude": "6.9271"}`, want: ptr(6.9271)},
		{name: "negative", json: `{"latitude": -79.8612}`, want: ptr(-79.8612)},
		{name: "null", json: `{"latitude": null}`, want: nil},
		{name: "missing", json: `{}`, want: nil},
		{name: "empty string", json: `{"latitude": ""}`, want: nil},
		{name: "garbage string", json: `{"latitude": "not-a-number"}`, want: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tc.json), &p))
			got := p.Latitude.Value()
			if tc.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, *tc.want, *got)
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}
