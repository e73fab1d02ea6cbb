package stream

// OkIter turns a sequence of results into a sequence of plain values.
// The first error ends the sequence and is kept in an error slot that can be
// read once the consumer is done; it is never overwritten.
type OkIter[T any] struct {
	src Iterator[Result[T]]
	err error
}

// NewOkIter wraps src
func NewOkIter[T any](src Iterator[Result[T]]) *OkIter[T] {
	return &OkIter[T]{src: src}
}

// Next returns the next successful value
func (o *OkIter[T]) Next() (T, bool) {
	var zero T
	if o.err != nil {
		return zero, false
	}

	r, ok := o.src.Next()
	if !ok {
		return zero, false
	}
	if r.Err != nil {
		o.err = r.Err
		return zero, false
	}
	return r.Value, true
}

// Err returns the error that ended the sequence, if any
func (o *OkIter[T]) Err() error {
	return o.err
}

// Remaining forwards the hint of the wrapped sequence until an error is seen
func (o *OkIter[T]) Remaining() int {
	if o.err != nil {
		return 0
	}
	return Remaining(o.src)
}

// Filter drops failed results and keeps going
type Filter[T any] struct {
	src Iterator[Result[T]]
}

// IgnoreErrors wraps src so that failed results are skipped
func IgnoreErrors[T any](src Iterator[Result[T]]) *Filter[T] {
	return &Filter[T]{src: src}
}

// Next returns the next successful value
func (f *Filter[T]) Next() (T, bool) {
	for {
		r, ok := f.src.Next()
		if !ok {
			var zero T
			return zero, false
		}
		if r.Err == nil {
			return r.Value, true
		}
	}
}
