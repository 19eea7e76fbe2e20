package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
)

const (
	defaultWorkers = 1
	channelBuffer  = 64
)

// Dispatcher fans per-client work out to a fixed set of workers using
// consistent hashing on the client id, so a client never appears on two
// workers within the same run.
type Dispatcher struct {
	workers int
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used, which keeps processing sequential.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{workers: numWorkers, log: log}
}

// Run processes every client with work and returns once all workers drained.
func (d *Dispatcher) Run(ctx context.Context, clients []*domain.Client, work func(context.Context, *domain.Client)) {
	if len(clients) == 0 {
		return
	}
	n := d.workers
	if n > len(clients) {
		n = len(clients)
	}

	shards := make([]chan *domain.Client, n)
	var wg sync.WaitGroup
	for i := range shards {
		shards[i] = make(chan *domain.Client, channelBuffer)
		wg.Add(1)
		go func(id int, ch <-chan *domain.Client) {
			defer wg.Done()
			d.runWorker(ctx, id, ch, work)
		}(i, shards[i])
	}

	for _, c := range clients {
		shards[shardIndex(c.ID, n)] <- c
	}
	for _, ch := range shards {
		close(ch)
	}
	wg.Wait()
}

// shardIndex maps a client id deterministically to a worker index.
func shardIndex(clientID string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32() % uint32(n))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Client, work func(context.Context, *domain.Client)) {
	for c := range ch {
		d.process(ctx, id, c, work)
	}
}

// process runs work for a single client; a panic is logged and does not stop
// the worker.
func (d *Dispatcher) process(ctx context.Context, id int, c *domain.Client, work func(context.Context, *domain.Client)) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("client_id", c.ID).
				Str("worker_id", strconv.Itoa(id)).
				Msg("client processing panicked")
		}
	}()
	work(ctx, c)
}
