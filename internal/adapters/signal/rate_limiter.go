package signal

import (
	"sync"

	"github.com/dkeye/Signal/internal/domain"
	"golang.org/x/time/rate"
)

// JoinLimiter throttles join-room attempts per connection.
// A nil limiter or a non-positive rate allows everything.
type JoinLimiter struct {
	mu       sync.Mutex
	limiters map[domain.ConnID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewJoinLimiter(perSecond float64, burst int) *JoinLimiter {
	if burst < 1 {
		burst = 1
	}
	return &JoinLimiter{
		limiters: make(map[domain.ConnID]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (jl *JoinLimiter) Allow(id domain.ConnID) bool {
	if jl == nil || jl.limit <= 0 {
		return true
	}
	jl.mu.Lock()
	l, ok := jl.limiters[id]
	if !ok {
		l = rate.NewLimiter(jl.limit, jl.burst)
		jl.limiters[id] = l
	}
	jl.mu.Unlock()
	return l.Allow()
}

// Forget drops the state of a closed connection.
func (jl *JoinLimiter) Forget(id domain.ConnID) {
	if jl == nil {
		return
	}
	jl.mu.Lock()
	delete(jl.limiters, id)
	jl.mu.Unlock()
}
