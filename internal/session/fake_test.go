package session

import (
	"context"
	"sync"

	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// fakeStore is an in-memory provider.Provider that counts calls.
type fakeStore struct {
	mu sync.Mutex

	secrets []models.SecretSummary
	values  map[string]string
	listErr error
	getErr  map[string]error

	listCalls int
	getCalls  map[string]int
	holds     map[string]*hold
}

// hold parks the next GetSecretValue of one id after it has read the value.
type hold struct {
	started chan struct{}
	release chan struct{}
}

var _ provider.Provider = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		values:   make(map[string]string),
		getErr:   make(map[string]error),
		getCalls: make(map[string]int),
		holds:    make(map[string]*hold),
	}
}

func (f *fakeStore) Name() string { return "fake" }

func (f *fakeStore) ListSecrets(ctx context.Context) ([]models.SecretSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.SecretSummary(nil), f.secrets...), nil
}

func (f *fakeStore) GetSecretValue(ctx context.Context, id string) (string, error) {
	f.mu.Lock()
	f.getCalls[id]++
	h := f.holds[id]
	delete(f.holds, id)
	err, failed := f.getErr[id]
	v, ok := f.values[id]
	f.mu.Unlock()

	if h != nil {
		close(h.started)
		<-h.release
	}

	if failed {
		return "", err
	}
	if !ok {
		return "", &provider.NotFoundError{Provider: "fake", ID: id}
	}
	return v, nil
}

// hold blocks the next fetch of id until release is closed. started is
// closed once the fetch has read its value.
func (f *fakeStore) hold(id string) (started <-chan struct{}, release chan<- struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := &hold{started: make(chan struct{}), release: make(chan struct{})}
	f.holds[id] = h
	return h.started, h.release
}

func (f *fakeStore) calls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls[id]
}

func (f *fakeStore) set(id, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[id] = value
}
