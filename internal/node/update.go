package node

// UpdateRequester is the orchestrator's sink for invalidation notices.
type UpdateRequester interface {
	RequestUpdate(n *Node)
}

// UpdateFunc adapts a function to UpdateRequester.
type UpdateFunc func(n *Node)

func (f UpdateFunc) RequestUpdate(n *Node) { f(n) }

// UpdateQueue collects dirty nodes until the orchestrator drains them. A node
// is queued at most once between drains. It never blocks.
type UpdateQueue struct {
	pending []*Node
	queued  map[string]struct{}
}

// NewUpdateQueue returns an empty queue.
func NewUpdateQueue() *UpdateQueue {
	return &UpdateQueue{queued: make(map[string]struct{})}
}

func (q *UpdateQueue) RequestUpdate(n *Node) {
	if _, ok := q.queued[n.ID()]; ok {
		return
	}
	q.queued[n.ID()] = struct{}{}
	q.pending = append(q.pending, n)
}

// Len returns the number of queued nodes.
func (q *UpdateQueue) Len() int { return len(q.pending) }

// Drain returns the queued nodes in request order and empties the queue.
func (q *UpdateQueue) Drain() []*Node {
	out := q.pending
	q.pending = nil
	clear(q.queued)
	return out
}
