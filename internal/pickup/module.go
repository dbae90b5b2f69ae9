package pickup

import (
	"time"

	"go.uber.org/fx"
)

// Module exposes the pickup scheduler to the fx graph.
var Module = fx.Provide(func() Scheduler {
	return NewStaticScheduler(time.Now(), 3)
})
