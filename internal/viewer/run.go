package viewer

import (
	"context"
	"errors"
)

var errForeignManager = errors.New("viewer: manager is not the one the viewer was built with")

// Run drives v until it stops, calling cb once per unpaused frame as the
// step. cb receives the current carry and returns the next one, so drivers
// can keep state across frames without the viewer knowing its shape. The
// carry of the last successful step is returned, also on error.
func Run[S any](ctx context.Context, v *Viewer, mgr Manager, cb func(S) (S, error), carry S) (S, error) {
	if mgr != v.mgr {
		return carry, errForeignManager
	}

	err := v.Loop(ctx, Hooks{
		Step: func() error {
			next, err := cb(carry)
			if err != nil {
				return err
			}
			carry = next
			return nil
		},
	})
	return carry, err
}
