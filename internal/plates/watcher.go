package plates

import (
	"context"
	"fmt"
	"time"
)

// MinWatchInterval is the shortest reload interval a Watcher accepts.
const MinWatchInterval = time.Millisecond

// Watcher reloads a plate source on a fixed interval.
type Watcher struct {
	Loader *Loader
	ticker *time.Ticker
}

func NewWatcher(loader *Loader, interval time.Duration) (*Watcher, error) {
	if interval < MinWatchInterval {
		return nil, fmt.Errorf("watch interval %s is shorter than %s", interval, MinWatchInterval)
	}
	return &Watcher{
		Loader: loader,
		ticker: time.NewTicker(interval),
	}, nil
}

func (watcher *Watcher) Sample(ctx context.Context) ListView {
	plates, err := watcher.Loader.Load(ctx)
	return Present(plates, err)
}

// Watch samples once immediately, then on every tick until ctx is done.
func (watcher *Watcher) Watch(ctx context.Context, onSample func(ListView)) error {
	onSample(watcher.Sample(ctx))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-watcher.ticker.C:
			onSample(watcher.Sample(ctx))
		}
	}
}

func (watcher *Watcher) Close() {
	watcher.ticker.Stop()
}
