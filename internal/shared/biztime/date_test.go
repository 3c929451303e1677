package biztime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-09-01","end":null}`), &payload))

	assert.Equal(t, "2024-09-01", payload.Start.String())
	assert.True(t, payload.End.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-09-01","end":null}`, string(out))
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"01/09/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240901`), &d))
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{name: "time", input: time.Date(2023, 5, 4, 13, 0, 0, 0, time.UTC), want: "2023-05-04"},
		{name: "bytes", input: []byte("2023-05-04"), want: "2023-05-04"},
		{name: "sqlite timestamp", input: "2023-05-04 00:00:00+00:00", want: "2023-05-04"},
		{name: "rfc3339", input: "2023-05-04T00:00:00Z", want: "2023-05-04"},
		{name: "null", input: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.input))
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDateValue(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustDate("2020-01-31").Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), v)
}

func TestDateBefore(t *testing.T) {
	assert.True(t, MustDate("2020-01-01").Before(MustDate("2020-01-02")))
	assert.False(t, MustDate("2020-01-02").Before(MustDate("2020-01-02")))
}
