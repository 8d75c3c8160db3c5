package service

import "context"

// Transition describes an optimistic local state change.
// Apply runs before the request and may refuse it by returning an error.
// Commit runs after the request succeeds and Revert, the inverse patch,
// after it fails. Any of them may be nil.
type Transition[T any] struct {
	Apply  func() error
	Commit func(T)
	Revert func(error)
}

// Optimistic applies t, issues request and then commits or reverts.
// A refused Apply is returned as is and nothing is sent.
func Optimistic[T any](ctx context.Context, t Transition[T], request func(context.Context) (T, error)) (T, error) {
	var zero T
	if t.Apply != nil {
		if err := t.Apply(); err != nil {
			return zero, err
		}
	}
	res, err := request(ctx)
	if err != nil {
		if t.Revert != nil {
			t.Revert(err)
		}
		return zero, err
	}
	if t.Commit != nil {
		t.Commit(res)
	}
	return res, nil
}
