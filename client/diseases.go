package client

import (
	"context"
	"errors"
	"sync"

	"github.com/treenow/treenowbackend/models"
)

// ErrSuperseded is returned for a lookup replaced by a newer selection.
var ErrSuperseded = errors.New("treenow: request superseded by a newer selection")

// DiseaseFetcher loads the diseases of the currently selected tree. Selecting
// another tree cancels the request in flight, so a slow answer for an old
// tree is never shown for the new one.
type DiseaseFetcher struct {
	client *Client

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewDiseaseFetcher(c *Client) *DiseaseFetcher {
	return &DiseaseFetcher{client: c}
}

func (f *DiseaseFetcher) Select(ctx context.Context, treeID string) ([]models.DiseaseView, error) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.seq++
	mine := f.seq
	f.cancel = cancel
	f.mu.Unlock()

	diseases, err := f.client.DiseasesByTree(ctx, treeID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if mine != f.seq {
		return nil, ErrSuperseded
	}
	f.cancel = nil
	cancel()
	if err != nil {
		return nil, err
	}
	return diseases, nil
}
