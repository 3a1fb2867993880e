package asyncx

import (
	"fmt"

	"github.com/Abraxas-365/reactx/pkg/errx"
)

var asyncxErrors = errx.NewRegistry("ASYNCX")

var (
	ErrPanic       = asyncxErrors.Register("PANIC", errx.TypeInternal, 500, "Recovered panic in async task")
	ErrLoopStopped = asyncxErrors.Register("LOOP_STOPPED", errx.TypeUnavailable, 503, "Scheduler loop is stopped")
)

// panicError converts a recovered value into an errx error, keeping the
// original error in the chain when the panic value was one.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return asyncxErrors.NewWithCause(ErrPanic, err)
	}
	return asyncxErrors.New(ErrPanic).WithDetail("panic", fmt.Sprint(r))
}
