package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/xy-planning-network/relay/http/resp"
	"golang.org/x/time/rate"
)

// visitorTTL is how long a Visitor is remembered after its last request.
const visitorTTL = 60 * time.Minute

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	val   map[string]Visitor
	limit rate.Limit
	burst int
	sync.Mutex
}

// NewVisitors constructs a Visitors whose members may make perSecond requests every second
// with bursts of up to burst.
func NewVisitors(perSecond float64, burst int) *Visitors {
	return &Visitors{val: make(map[string]Visitor), limit: rate.Limit(perSecond), burst: burst}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len returns how many visitors are remembered.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler,
// answering 429 Too Many Requests to visitors over their limit.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
//
// If visitors is nil, NoopAdapter returns and this middleware does nothing.
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !visitors.Fetch(GetIPAddress(r.Header)).Limiter.Allow() {
				tooMany(w, r, visitors.limit)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}

func tooMany(w http.ResponseWriter, r *http.Request, limit rate.Limit) {
	retry := 1
	if limit > 0 && limit < 1 {
		retry = int(1/limit) + 1
	}

	res, _ := resp.New(http.StatusTooManyRequests, []byte(http.StatusText(http.StatusTooManyRequests)+"\n"))
	res.Header().SetContentType("text/plain", "")
	res.Header().Set("Retry-After", strconv.Itoa(retry))
	res.Header().SetNoCache()

	res.Prepare(resp.FromHTTP(r))
	res.Send(resp.NewHTTPHost(w, r))
}
