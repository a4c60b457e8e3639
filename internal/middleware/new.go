package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"business-agent-service/pkg/log"
)

// limiterTTL is how long an idle client's limiter stays cached.
const limiterTTL = 10 * time.Minute

// Middleware bundles the HTTP middlewares shared across routes.
type Middleware struct {
	l        log.Logger
	perMin   int
	limiters *expirable.LRU[string, *rate.Limiter]
}

func New(l log.Logger, ratePerMin int) Middleware {
	return Middleware{
		l:        l,
		perMin:   ratePerMin,
		limiters: expirable.NewLRU[string, *rate.Limiter](10000, nil, limiterTTL),
	}
}
