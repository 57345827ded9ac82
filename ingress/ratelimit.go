// SPDX-License-Identifier: ISC

package ingress

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// deviceRate/deviceBurst - a device is not expected to uplink more than
// a few fragments a second; this only guards against a device (or a
// misconfigured network server) hammering the endpoint.
const (
	deviceRate          = 2
	deviceBurst         = 10
	limiterExpiry       = 10 * time.Minute
	limiterCleanupEvery = 5 * time.Minute
)

// deviceLimiters - a per-dev_eui token bucket, evicted after a period of
// inactivity so a gateway serving a rotating device population does not
// accumulate limiters forever.
type deviceLimiters struct {
	cache *gocache.Cache
}

func newDeviceLimiters() *deviceLimiters {
	return &deviceLimiters{cache: gocache.New(limiterExpiry, limiterCleanupEvery)}
}

// allow - true if deviceKey's bucket has a token to spend.
func (d *deviceLimiters) allow(deviceKey string) bool {
	if cached, ok := d.cache.Get(deviceKey); ok {
		return cached.(*rate.Limiter).Allow()
	}
	limiter := rate.NewLimiter(rate.Limit(deviceRate), deviceBurst)
	d.cache.SetDefault(deviceKey, limiter)
	return limiter.Allow()
}
