package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type mirrorJob struct {
	key     string
	content []byte
}

// Dispatcher copies collections accepted by the remote tier into the local
// fallback store. Jobs are sharded by key so writes to one key stay ordered.
type Dispatcher struct {
	workers []chan mirrorJob
	local   ports.FallbackStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, local ports.FallbackStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan mirrorJob, numWorkers),
		local:   local,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan mirrorJob, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules content to be stored under key. When the worker's
// buffer is full the job is dropped; the next successful write mirrors the
// whole collection again.
func (d *Dispatcher) Enqueue(key string, content []byte) {
	idx := d.shardIndex(key)
	select {
	case d.workers[idx] <- mirrorJob{key: key, content: content}:
		metrics.MirrorQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.MirrorJobsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("key", key).Int("worker_id", idx).Msg("mirror queue full, job dropped")
	}
}

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan mirrorJob) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.MirrorQueueDepth.WithLabelValues(label).Dec()
			if err := d.local.Set(ctx, job.key, job.content); err != nil {
				metrics.MirrorJobsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("key", job.key).
					Int("worker_id", id).
					Msg("mirror to fallback failed")
				continue
			}
			metrics.MirrorJobsTotal.WithLabelValues("ok").Inc()
		}
	}
}
