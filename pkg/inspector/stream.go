package inspector

import (
	"context"
	"iter"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

// Stream is a lazy, single-pass sequence of messages.
//
// Work happens only as messages are pulled. Once the stream is exhausted or
// closed it yields nothing more; closing it early releases whatever the
// producer holds, such as the open data file.
type Stream struct {
	ctx  context.Context
	next func() (core.InspectorMessage, bool)
	stop func()
	done bool
	err  error
}

func newStream(ctx context.Context, seq iter.Seq[core.InspectorMessage]) *Stream {
	next, stop := iter.Pull(seq)
	return &Stream{ctx: ctx, next: next, stop: stop}
}

// Next returns the next message. The second result is false once the
// stream is exhausted, closed or its context is done.
func (s *Stream) Next() (core.InspectorMessage, bool) {
	if s.done {
		return core.InspectorMessage{}, false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		s.Close()
		return core.InspectorMessage{}, false
	}
	m, ok := s.next()
	if !ok {
		s.Close()
	}
	return m, ok
}

// All returns an iterator over the remaining messages. Breaking out of the
// loop leaves the stream open; call Close to release it.
func (s *Stream) All() iter.Seq[core.InspectorMessage] {
	return func(yield func(core.InspectorMessage) bool) {
		for {
			m, ok := s.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}

// Collect drains the stream into a slice and closes it.
func (s *Stream) Collect() []core.InspectorMessage {
	defer s.Close()
	var out []core.InspectorMessage
	for m := range s.All() {
		out = append(out, m)
	}
	return out
}

// Close stops the producer. It is safe to call more than once.
func (s *Stream) Close() error {
	if !s.done {
		s.done = true
		s.stop()
	}
	return nil
}

// Err returns the context error that ended the stream, if any.
func (s *Stream) Err() error {
	return s.err
}
