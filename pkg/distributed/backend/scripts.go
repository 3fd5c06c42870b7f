package backend

import (
	_ "embed"

	"github.com/redis/go-redis/v9"
)

// The lock/semaphore/latch primitives need a handful of compare-and-act
// operations that a single Redis command cannot express atomically; those
// are embedded here from lua/*.lua and evaluated server-side via EVAL.
// set_lock and check_count need no script (SET ... NX PX and SCARD are
// already atomic single commands).
var (
	//go:embed lua/remove_lock.lua
	removeLockSource string

	//go:embed lua/set_semaphore_lock.lua
	setSemaphoreLockSource string

	//go:embed lua/remove_semaphore_lock.lua
	removeSemaphoreLockSource string

	//go:embed lua/clean_up_expired_semaphore_locks.lua
	cleanupExpiredSemaphoreLocksSource string

	//go:embed lua/count.lua
	countSource string
)

var (
	removeLockScript                   = redis.NewScript(removeLockSource)
	setSemaphoreLockScript             = redis.NewScript(setSemaphoreLockSource)
	removeSemaphoreLockScript          = redis.NewScript(removeSemaphoreLockSource)
	cleanupExpiredSemaphoreLocksScript = redis.NewScript(cleanupExpiredSemaphoreLocksSource)
	countScript                        = redis.NewScript(countSource)
)
