package persist

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"serverlister/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func sampleRecords() []reconcile.ServerRecord {
	return []reconcile.ServerRecord{
		{
			Address:   "5.6.7.8:4321",
			FirstSeen: ts(1000),
			LastSeen:  ts(2000),
			Metadata:  map[string]string{"hostname": "Bravo"},
		},
		{
			Address:   "1.2.3.4:1234",
			FirstSeen: ts(500),
			LastSeen:  ts(1500),
			Status: &reconcile.ServerStatus{
				Name:       "Alpha",
				Map:        "dalian_plant",
				NumPlayers: 12,
				MaxPlayers: 64,
				Ping:       40,
				Raw:        map[string]string{"hostname": "Alpha"},
				ProbedAt:   ts(1500),
			},
		},
	}
}

// assertSameRecords compares records field by field using time.Equal.
func assertSameRecords(t *testing.T, want, got []reconcile.ServerRecord) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Address, got[i].Address)
		assert.True(t, want[i].FirstSeen.Equal(got[i].FirstSeen), "firstSeen of %s", want[i].Address)
		assert.True(t, want[i].LastSeen.Equal(got[i].LastSeen), "lastSeen of %s", want[i].Address)
		assert.Equal(t, want[i].Metadata, got[i].Metadata)
		if want[i].Status == nil {
			assert.Nil(t, got[i].Status)
			continue
		}
		require.NotNil(t, got[i].Status)
		ws, gs := *want[i].Status, *got[i].Status
		assert.True(t, ws.ProbedAt.Equal(gs.ProbedAt))
		ws.ProbedAt, gs.ProbedAt = time.Time{}, time.Time{}
		assert.Equal(t, ws, gs)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "bf2", sampleRecords(), ts(3000)))

	out := buf.String()
	assert.Contains(t, out, `"version": 1`)
	assert.Contains(t, out, `"game": "bf2"`)
	assert.Less(t, strings.Index(out, "1.2.3.4:1234"), strings.Index(out, "5.6.7.8:4321"), "servers sorted by address")

	got, err := Decode(&buf)
	require.NoError(t, err)

	want := sampleRecords()
	want[0], want[1] = want[1], want[0]
	assertSameRecords(t, want, got)
}

func TestEncode_DoesNotReorderInput(t *testing.T) {
	records := sampleRecords()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "bf2", records, ts(3000)))
	assert.Equal(t, "5.6.7.8:4321", records[0].Address)
}

func TestDecode_BareArray(t *testing.T) {
	in := `[{"address":"1.2.3.4:1234","firstSeen":"1970-01-01T00:16:40Z","lastSeen":"1970-01-01T00:33:20Z"}]`
	got, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].FirstSeen.Equal(ts(1000)))
	assert.True(t, got[0].LastSeen.Equal(ts(2000)))
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"version":99,"servers":[]}`))
	assert.ErrorContains(t, err, "unsupported server list version")
}
