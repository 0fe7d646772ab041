package bfs

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/katalvlaran/tonality/core"
)

// queueItem pairs a vertex with its BFS depth.
type queueItem[K comparable] struct {
	id    K
	depth int
}

// walker encapsulates mutable BFS state.
type walker[K comparable] struct {
	graph *core.Graph[K]
	opts  Options
	ctx   context.Context
	queue *linkedlistqueue.Queue
	res   *Result[K]
}

// BFS runs breadth-first search on g from start over outgoing edges.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, or the context error on cancellation.
func BFS[K comparable](g *core.Graph[K], start K, opts ...Option) (*Result[K], error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	w := &walker[K]{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: linkedlistqueue.New(),
		res: &Result[K]{
			Start:  start,
			Order:  make([]K, 0, n),
			Depth:  make(map[K]int, n),
			Parent: make(map[K]K, n),
		},
	}

	w.res.Depth[start] = 0
	w.queue.Enqueue(queueItem[K]{id: start})

	return w.res, w.loop()
}

// loop processes the queue until empty or cancelled.
func (w *walker[K]) loop() error {
	for !w.queue.Empty() {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		v, _ := w.queue.Dequeue()
		item := v.(queueItem[K])
		w.res.Order = append(w.res.Order, item.id)
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors enqueues every unseen target of a passable edge of item,
// in edge insertion order.
func (w *walker[K]) enqueueNeighbors(item queueItem[K]) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	edges, err := w.graph.Neighbors(item.id)
	if err != nil {
		return fmt.Errorf("bfs: neighbors of %v: %w", item.id, err)
	}
	for _, e := range edges {
		if e.Weight > w.opts.MaxWeight {
			continue
		}
		if _, seen := w.res.Depth[e.To]; seen {
			continue
		}
		w.res.Depth[e.To] = next
		w.res.Parent[e.To] = item.id
		w.queue.Enqueue(queueItem[K]{id: e.To, depth: next})
	}

	return nil
}
