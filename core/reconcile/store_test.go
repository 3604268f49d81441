package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func disc(addrs ...string) []Discovered {
	out := make([]Discovered, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, Discovered{Address: a})
	}
	return out
}

func TestStore_MergeIntoEmpty(t *testing.T) {
	s := NewStore()
	res := s.Merge(disc("1.2.3.4:1234", "5.6.7.8:4321"), ts(1000))

	assert.Equal(t, MergeResult{Added: 2}, res)
	require.Equal(t, 2, s.Len())
	for _, addr := range []string{"1.2.3.4:1234", "5.6.7.8:4321"} {
		rec, ok := s.Get(addr)
		require.True(t, ok, addr)
		assert.Equal(t, ts(1000), rec.FirstSeen)
		assert.Equal(t, ts(1000), rec.LastSeen)
	}
}

func TestStore_MergeRefreshesKnown(t *testing.T) {
	s := NewStoreFrom([]ServerRecord{{Address: "1.2.3.4:1234", FirstSeen: ts(500), LastSeen: ts(1000)}})
	res := s.Merge(disc("1.2.3.4:1234"), ts(2000))

	assert.Equal(t, MergeResult{Refreshed: 1}, res)
	rec, _ := s.Get("1.2.3.4:1234")
	assert.Equal(t, ts(2000), rec.LastSeen)
	assert.Equal(t, ts(500), rec.FirstSeen)
}

func TestStore_MergeLeavesMissingUntouched(t *testing.T) {
	s := NewStoreFrom([]ServerRecord{
		{Address: "1.1.1.1:1", FirstSeen: ts(100), LastSeen: ts(100)},
		{Address: "2.2.2.2:2", FirstSeen: ts(100), LastSeen: ts(100)},
	})
	s.Merge(disc("1.1.1.1:1"), ts(200))

	rec, _ := s.Get("2.2.2.2:2")
	assert.Equal(t, ts(100), rec.LastSeen)
}

func TestStore_MergeIdempotent(t *testing.T) {
	d := []Discovered{
		{Address: "1.2.3.4:1234", Metadata: map[string]string{"hostname": "a"}},
		{Address: "5.6.7.8:4321"},
	}
	once := NewStore()
	once.Merge(d, ts(1000))

	twice := NewStore()
	twice.Merge(d, ts(1000))
	res := twice.Merge(d, ts(1000))

	assert.Equal(t, MergeResult{Refreshed: 2}, res)
	assert.Equal(t, once.Records(), twice.Records())
}

func TestStore_MergeDuplicatesAndInvalid(t *testing.T) {
	s := NewStore()
	res := s.Merge([]Discovered{
		{Address: "1.2.3.4:1234"},
		{Address: "1.2.3.4:1234", Metadata: map[string]string{"k": "v"}},
		{Address: "bogus"},
		{Address: "1.2.3.4:0"},
	}, ts(10))

	assert.Equal(t, MergeResult{Added: 1, Invalid: 2}, res)
	rec, _ := s.Get("1.2.3.4:1234")
	assert.Equal(t, "v", rec.Metadata["k"])
}

func TestStore_MergeMetadata(t *testing.T) {
	s := NewStore()
	s.Merge([]Discovered{{Address: "1.2.3.4:1", Metadata: map[string]string{"hostname": "old"}}}, ts(1))
	s.Merge([]Discovered{{Address: "1.2.3.4:1"}}, ts(2))

	rec, _ := s.Get("1.2.3.4:1")
	assert.Equal(t, "old", rec.Metadata["hostname"], "empty metadata keeps the previous value")

	s.Merge([]Discovered{{Address: "1.2.3.4:1", Metadata: map[string]string{"hostname": "new"}}}, ts(3))
	rec, _ = s.Get("1.2.3.4:1")
	assert.Equal(t, "new", rec.Metadata["hostname"])
}

func TestStore_FirstSeenNeverChanges(t *testing.T) {
	s := NewStore()
	s.Merge(disc("9.9.9.9:9"), ts(100))
	for _, sec := range []int64{200, 50, 300} {
		s.Merge(disc("9.9.9.9:9"), ts(sec))
		s.ApplyProbe("9.9.9.9:9", &ServerStatus{Name: "x"}, ts(sec), true)
		rec, _ := s.Get("9.9.9.9:9")
		assert.Equal(t, ts(100), rec.FirstSeen)
		assert.False(t, rec.LastSeen.Before(rec.FirstSeen))
	}
}

func TestStore_Prune(t *testing.T) {
	records := []ServerRecord{
		{Address: "1.1.1.1:1", FirstSeen: ts(1000), LastSeen: ts(1000)},
		{Address: "2.2.2.2:2", FirstSeen: ts(1990), LastSeen: ts(1990)},
	}

	tests := []struct {
		name    string
		ttl     time.Duration
		removed int
		left    []string
	}{
		{"zero ttl removes everything older than now", 0, 2, []string{}},
		{"one hour keeps recent", time.Hour, 1, []string{"2.2.2.2:2"}},
		{"negative ttl acts as zero", -time.Hour, 2, []string{}},
		{"long ttl keeps all", 24 * time.Hour, 0, []string{"1.1.1.1:1", "2.2.2.2:2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStoreFrom(records)
			assert.Equal(t, tt.removed, s.Prune(tt.ttl, ts(5590)))
			assert.Equal(t, tt.left, s.Addresses())
		})
	}
}

func TestStore_PruneIdempotent(t *testing.T) {
	now := ts(100000)
	s := NewStoreFrom([]ServerRecord{
		{Address: "1.1.1.1:1", LastSeen: now.Add(-10 * time.Hour)},
		{Address: "2.2.2.2:2", LastSeen: now.Add(-10 * time.Second)},
	})

	assert.Equal(t, 1, s.Prune(time.Hour, now))
	assert.Equal(t, []string{"2.2.2.2:2"}, s.Addresses())
	assert.Equal(t, 0, s.Prune(time.Hour, now))
}

func TestStore_PruneKeepsTouchedNow(t *testing.T) {
	s := NewStoreFrom([]ServerRecord{{Address: "1.1.1.1:1", LastSeen: ts(10)}})
	s.Merge(disc("2.2.2.2:2"), ts(20))

	assert.Equal(t, 1, s.Prune(0, ts(20)))
	assert.Equal(t, []string{"2.2.2.2:2"}, s.Addresses())
}

func TestNewStoreFrom_Folding(t *testing.T) {
	s := NewStoreFrom([]ServerRecord{
		{Address: "Host.Example:27900", FirstSeen: ts(200), LastSeen: ts(300)},
		{Address: "host.example:27900", FirstSeen: ts(100), LastSeen: ts(250), Metadata: map[string]string{"a": "1"}},
		{Address: "not-an-address", FirstSeen: ts(1), LastSeen: ts(1)},
		{Address: "3.3.3.3:3", FirstSeen: ts(500), LastSeen: ts(400)},
		{Address: "4.4.4.4:4", LastSeen: ts(700)},
	})

	require.Equal(t, 3, s.Len())

	rec, ok := s.Get("host.example:27900")
	require.True(t, ok)
	assert.Equal(t, ts(100), rec.FirstSeen)
	assert.Equal(t, ts(300), rec.LastSeen)
	assert.Nil(t, rec.Metadata, "metadata follows the most recent record")

	rec, _ = s.Get("3.3.3.3:3")
	assert.Equal(t, ts(500), rec.LastSeen, "lastSeen is raised to firstSeen")

	rec, _ = s.Get("4.4.4.4:4")
	assert.Equal(t, ts(700), rec.FirstSeen)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Merge([]Discovered{{Address: "1.1.1.1:1", Metadata: map[string]string{"k": "v"}}}, ts(1))

	rec, _ := s.Get("1.1.1.1:1")
	rec.Metadata["k"] = "changed"

	again, _ := s.Get("1.1.1.1:1")
	assert.Equal(t, "v", again.Metadata["k"])
}

func TestStore_ProbeUpdates(t *testing.T) {
	s := NewStoreFrom([]ServerRecord{{Address: "1.1.1.1:1", FirstSeen: ts(10), LastSeen: ts(10)}})

	assert.True(t, s.ApplyProbe("1.1.1.1:1", &ServerStatus{Name: "srv", NumPlayers: 3}, ts(50), false))
	rec, _ := s.Get("1.1.1.1:1")
	assert.Equal(t, ts(10), rec.LastSeen)
	require.NotNil(t, rec.Status)
	assert.Equal(t, 3, rec.Status.NumPlayers)

	assert.True(t, s.ApplyProbe("1.1.1.1:1", &ServerStatus{Name: "srv"}, ts(60), true))
	rec, _ = s.Get("1.1.1.1:1")
	assert.Equal(t, ts(60), rec.LastSeen)

	assert.True(t, s.MarkUnreachable("1.1.1.1:1"))
	rec, _ = s.Get("1.1.1.1:1")
	assert.Nil(t, rec.Status)
	assert.Equal(t, ts(60), rec.LastSeen)

	assert.False(t, s.ApplyProbe("9.9.9.9:9", &ServerStatus{}, ts(1), true))
	assert.False(t, s.MarkUnreachable("9.9.9.9:9"))
}

func TestNewStoreFrom_CountsDropped(t *testing.T) {
	s := NewStoreFrom([]ServerRecord{
		{Address: "1.1.1.1:1", LastSeen: ts(1)},
		{Address: "no-port", LastSeen: ts(1)},
		{Address: "2.2.2.2:99999", LastSeen: ts(1)},
	})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Dropped())
	assert.Equal(t, 0, NewStore().Dropped())
}
