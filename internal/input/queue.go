package input

import "sync/atomic"

// Queue carries commands from input goroutines to the game loop.
// Push never blocks; when the buffer is full the command is dropped and
// counted.
type Queue struct {
	ch      chan Command
	dropped atomic.Uint64
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{ch: make(chan Command, size)}
}

// Push enqueues cmd. Safe for concurrent use.
func (q *Queue) Push(cmd Command) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Drain removes up to max queued commands (all when max <= 0) and appends
// them to buf. Game loop only.
func (q *Queue) Drain(buf []Command, max int) []Command {
	for i := 0; max <= 0 || i < max; i++ {
		select {
		case cmd := <-q.ch:
			buf = append(buf, cmd)
		default:
			return buf
		}
	}
	return buf
}

// Len is the number of queued commands.
func (q *Queue) Len() int { return len(q.ch) }

// Dropped is the number of commands lost to a full buffer.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }
