package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/remixgames/backend/internal/logger"
)

// SafeGo запускает горутину с перехватом panic. Паника фоновой задачи
// логируется со стеком и не роняет процесс.
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и перехватом panic.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

func recoverPanic() {
	if r := recover(); r != nil {
		logger.WithComponent("goroutine").
			WithField("panic", r).
			Errorf("Паника в горутине\n%s", debug.Stack())
	}
}
