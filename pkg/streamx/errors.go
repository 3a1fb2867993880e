package streamx

import (
	"fmt"

	"github.com/Abraxas-365/reactx/pkg/errx"
)

var streamxErrors = errx.NewRegistry("STREAMX")

var (
	ErrNoValue = streamxErrors.Register("NO_VALUE", errx.TypeNotFound, 404, "Stream completed without a value")
	ErrPanic   = streamxErrors.Register("PANIC", errx.TypeInternal, 500, "Recovered panic in stream source")
)

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return streamxErrors.NewWithCause(ErrPanic, err)
	}
	return streamxErrors.New(ErrPanic).WithDetail("panic", fmt.Sprint(r))
}
