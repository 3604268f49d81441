package reconcile

import (
	"context"
	"errors"
	"sync"

	"serverlister/core/games"
)

type fakeDiscoverer struct {
	mu      sync.Mutex
	results map[string][]Discovered
	errs    map[string]error
	calls   []string
}

func (f *fakeDiscoverer) Discover(_ context.Context, _ games.Game, p games.Project, filter string) ([]Discovered, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p.Name+"|"+filter)
	if err := f.errs[p.Name]; err != nil {
		return nil, err
	}
	return f.results[p.Name], nil
}

type fakeProber struct {
	fn func(ctx context.Context, address string) (*ServerStatus, error)
}

func (f *fakeProber) Probe(ctx context.Context, _ games.Game, address string) (*ServerStatus, error) {
	return f.fn(ctx, address)
}

type memoryBackend struct {
	records []ServerRecord
	found   bool
	loadErr error
	saveErr error
	saved   []ServerRecord
	saves   int
}

func (m *memoryBackend) Load(context.Context) ([]ServerRecord, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	return m.records, m.found, nil
}

func (m *memoryBackend) Save(_ context.Context, records []ServerRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = records
	return nil
}

var errToolFailed = errors.New("exit status 1")
