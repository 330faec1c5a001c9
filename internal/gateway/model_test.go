package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreativeListShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"literal array", `{"creatives":["http://a/1.png","http://a/2.png"]}`, []string{"http://a/1.png", "http://a/2.png"}},
		{"encoded array string", `{"creatives":"[\"http://a/1.png\"]"}`, []string{"http://a/1.png"}},
		{"null", `{"creatives":null}`, []string{}},
		{"absent", `{}`, []string{}},
		{"malformed encoding recovers empty", `{"creatives":"[not json"}`, []string{}},
		{"unexpected shape recovers empty", `{"creatives":42}`, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var campaign Campaign
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &campaign))
			assert.Equal(t, CreativeList(tc.want), campaign.Creatives)
		})
	}
}

func TestCreativeListMarshalNeverNull(t *testing.T) {
	out, err := json.Marshal(Campaign{Name: "spring"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"creatives":[]`)
}

func TestTruncateDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-01T00:00:00Z", "2024-03-01"},
		{"2024-03-01T15:04:05", "2024-03-01"},
		{"2024-03-01 15:04:05", "2024-03-01"},
		{"2024-03-01", "2024-03-01"},
	}
	for _, tc := range cases {
		got, err := TruncateDate(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := TruncateDate("March 1st")
	assert.Error(t, err)
}
