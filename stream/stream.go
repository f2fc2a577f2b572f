package stream

import (
	"context"
	"sort"
	"sync"

	"github.com/denismitr/m2m"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

type (
	// Source is anything that can emit its pairs over a channel. All m2m
	// collections satisfy it.
	Source[L, R any] interface {
		Pairs(ctx context.Context) <-chan m2m.Pair[L, R]
	}

	// Sink is anything that can absorb pairs. All m2m collections satisfy it.
	Sink[L, R any] interface {
		Insert(left L, right R) (inserted bool)
	}

	PredicateContext[L, R any] func(ctx context.Context, left L, right R) (bool, error)
	MapperContext[L, R any]    func(ctx context.Context, left L, right R) (R, error)
	IteratorContext[L, R any]  func(ctx context.Context, left L, right R) error

	pairPipe[L, R any] func(ctx context.Context, in *flow[L, R], errs chan<- error) *flow[L, R]

	Stream[L, R any] struct {
		source    Source[L, R]
		fc        flowControl
		err       error
		functions []pairPipe[L, R]
	}
)

func New[L, R any](source Source[L, R], options ...FlowOption) *Stream[L, R] {
	fc := flowControl{
		concurrency: DefaultConcurrency,
	}

	for _, o := range options {
		o(&fc)
	}

	return &Stream[L, R]{
		source: source,
		fc:     fc,
	}
}

// Filter keeps only the pairs the predicate approves. A predicate error
// stops the pipeline unless it is ErrSkip, which drops the pair.
func (s *Stream[L, R]) Filter(predicate PredicateContext[L, R], options ...FlowOption) *Stream[L, R] {
	localFc := flowControl{
		concurrency: s.fc.concurrency,
	}

	for _, o := range options {
		o(&localFc)
	}

	if localFc.concurrency < 1 {
		if s.err == nil {
			s.err = errors.Wrapf(ErrInvalidConcurrency, "filter concurrency should be at least 1, got %d", localFc.concurrency)
		}
		return s
	}

	f := func(ctx context.Context, in *flow[L, R], errs chan<- error) *flow[L, R] {
		out := newFlow[L, R]()

		var wg sync.WaitGroup
		wg.Add(int(localFc.concurrency))

		for i := 0; i < int(localFc.concurrency); i++ {
			go func() {
				defer wg.Done()

				for {
					select {
					case <-out.done:
						in.halt()
						return
					case it, ok := <-in.ch:
						if !ok {
							return
						}

						keep, err := predicate(ctx, it.left, it.right)
						if err != nil {
							if errors.Is(err, ErrSkip) {
								continue
							}

							sendErr(errs, errors.Wrap(err, "filter failed"))
							in.halt()
							return
						}

						if !keep {
							continue
						}

						select {
						case out.ch <- it:
						case <-out.done:
							in.halt()
							return
						case <-ctx.Done():
							in.halt()
							return
						}
					case <-ctx.Done():
						in.halt()
						return
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(out.ch)
		}()

		return out
	}

	s.functions = append(s.functions, f)
	return s
}

// Map transforms the right component of every pair. A mapper error stops
// the pipeline unless it is ErrSkip, which drops the pair.
func (s *Stream[L, R]) Map(mapper MapperContext[L, R], options ...FlowOption) *Stream[L, R] {
	localFc := flowControl{
		concurrency: s.fc.concurrency,
	}

	for _, o := range options {
		o(&localFc)
	}

	if localFc.concurrency < 1 {
		if s.err == nil {
			s.err = errors.Wrapf(ErrInvalidConcurrency, "map concurrency should be at least 1, got %d", localFc.concurrency)
		}
		return s
	}

	f := func(ctx context.Context, in *flow[L, R], errs chan<- error) *flow[L, R] {
		out := newFlow[L, R]()

		var wg sync.WaitGroup
		wg.Add(int(localFc.concurrency))

		for i := 0; i < int(localFc.concurrency); i++ {
			go func() {
				defer wg.Done()

				for {
					select {
					case <-out.done:
						in.halt()
						return
					case it, ok := <-in.ch:
						if !ok {
							return
						}

						newRight, err := mapper(ctx, it.left, it.right)
						if err != nil {
							if errors.Is(err, ErrSkip) {
								continue
							}

							sendErr(errs, errors.Wrap(err, "map failed"))
							in.halt()
							return
						}

						it.right = newRight

						select {
						case out.ch <- it:
						case <-out.done:
							in.halt()
							return
						case <-ctx.Done():
							in.halt()
							return
						}
					case <-ctx.Done():
						in.halt()
						return
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(out.ch)
		}()

		return out
	}

	s.functions = append(s.functions, f)
	return s
}

// ForEach runs the iterator for every pair and passes the pair downstream
// untouched. An iterator error stops the pipeline unless it is ErrSkip,
// which drops the pair.
func (s *Stream[L, R]) ForEach(iterator IteratorContext[L, R], options ...FlowOption) *Stream[L, R] {
	localFc := flowControl{
		concurrency: s.fc.concurrency,
	}

	for _, o := range options {
		o(&localFc)
	}

	if localFc.concurrency < 1 {
		if s.err == nil {
			s.err = errors.Wrapf(ErrInvalidConcurrency, "for each concurrency should be at least 1, got %d", localFc.concurrency)
		}
		return s
	}

	f := func(ctx context.Context, in *flow[L, R], errs chan<- error) *flow[L, R] {
		out := newFlow[L, R]()

		var wg sync.WaitGroup
		wg.Add(int(localFc.concurrency))

		for i := 0; i < int(localFc.concurrency); i++ {
			go func() {
				defer wg.Done()

				for {
					select {
					case <-out.done:
						in.halt()
						return
					case it, ok := <-in.ch:
						if !ok {
							return
						}

						if err := iterator(ctx, it.left, it.right); err != nil {
							if errors.Is(err, ErrSkip) {
								continue
							}

							sendErr(errs, errors.Wrap(err, "for each failed"))
							in.halt()
							return
						}

						select {
						case out.ch <- it:
						case <-out.done:
							in.halt()
							return
						case <-ctx.Done():
							in.halt()
							return
						}
					case <-ctx.Done():
						in.halt()
						return
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(out.ch)
		}()

		return out
	}

	s.functions = append(s.functions, f)
	return s
}

// Take lets at most n pairs through and then stops the upstream. With
// concurrency above one the selection depends on arrival order.
func (s *Stream[L, R]) Take(n int) *Stream[L, R] {
	f := func(ctx context.Context, in *flow[L, R], errs chan<- error) *flow[L, R] {
		out := newFlow[L, R]()

		go func() {
			defer close(out.ch)

			taken := 0
			for taken < n {
				select {
				case it, ok := <-in.ch:
					if !ok {
						return
					}

					select {
					case out.ch <- it:
						taken++
					case <-out.done:
						in.halt()
						return
					case <-ctx.Done():
						in.halt()
						return
					}
				case <-out.done:
					in.halt()
					return
				case <-ctx.Done():
					in.halt()
					return
				}
			}

			in.halt()
		}()

		return out
	}

	s.functions = append(s.functions, f)
	return s
}

// PipeInto runs the pipeline and inserts the surviving pairs into dst in
// source order. On error the destination is left untouched.
func (s *Stream[L, R]) PipeInto(ctx context.Context, dst Sink[L, R]) error {
	if s.err != nil {
		return s.err
	}

	if s.fc.concurrency < 1 {
		return errors.Wrapf(ErrInvalidConcurrency, "should be at least 1, got %d", s.fc.concurrency)
	}

	out, errs := s.run(ctx)

	var results byOrder[L, R]

resultLoop:
	for {
		select {
		case it, ok := <-out.ch:
			if !ok {
				break resultLoop
			}
			results = append(results, it)
		case err := <-errs:
			out.halt()
			return errors.Wrap(err, "stream failed")
		case <-ctx.Done():
			out.halt()
			return errors.Wrap(ctx.Err(), "stream interrupted")
		}
	}

	select {
	case err := <-errs:
		return errors.Wrap(err, "stream failed")
	default:
	}

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "stream interrupted")
	}

	sort.Sort(results)

	for i := range results {
		dst.Insert(results[i].left, results[i].right)
	}

	return nil
}

func (s *Stream[L, R]) run(baseCtx context.Context) (*flow[L, R], chan error) {
	errs := make(chan error, 1)
	inFlow := newFlow[L, R]()

	go func() {
		ctx, cancel := context.WithCancel(baseCtx)

		defer func() {
			cancel()
			close(inFlow.ch)
		}()

		ord := 0
		for p := range s.source.Pairs(ctx) {
			select {
			case inFlow.ch <- item[L, R]{ord: ord, left: p.Left, right: p.Right}:
				ord++
			case <-inFlow.done:
				return
			case <-baseCtx.Done():
				return
			}
		}
	}()

	return s.launchPipes(baseCtx, 0, inFlow, errs), errs
}

func (s *Stream[L, R]) launchPipes(
	ctx context.Context,
	action int,
	in *flow[L, R],
	errs chan error,
) *flow[L, R] {
	if action >= len(s.functions) {
		return in
	}

	piper := s.functions[action]
	out := piper(ctx, in, errs)
	return s.launchPipes(ctx, action+1, out, errs)
}

// Collect runs the stream into a fresh sorted collection.
func Collect[L, R constraints.Ordered](ctx context.Context, s *Stream[L, R]) (*m2m.M2M[L, R], error) {
	dst := m2m.New[L, R]()
	if err := s.PipeInto(ctx, dst); err != nil {
		return nil, err
	}

	return dst, nil
}
