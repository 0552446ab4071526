package header

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// CacheOptions composes a Cache-Control value.
// Zero durations are omitted; use NoCache or NoStore to forbid reuse.
type CacheOptions struct {
	MaxAge               time.Duration
	SharedMaxAge         time.Duration
	StaleIfError         time.Duration
	StaleWhileRevalidate time.Duration

	Immutable       bool
	MustRevalidate  bool
	NoCache         bool
	NoStore         bool
	NoTransform     bool
	Private         bool
	ProxyRevalidate bool
	Public          bool
}

// String renders the directives sorted by name, as in "max-age=60, public".
//
// Private wins over Public when both are set.
func (o CacheOptions) String() string {
	var ds []string
	seconds := func(name string, d time.Duration) {
		if d > 0 {
			ds = append(ds, name+"="+strconv.FormatInt(int64(d/time.Second), 10))
		}
	}

	seconds("max-age", o.MaxAge)
	seconds("s-maxage", o.SharedMaxAge)
	seconds("stale-if-error", o.StaleIfError)
	seconds("stale-while-revalidate", o.StaleWhileRevalidate)

	flags := map[string]bool{
		"immutable":        o.Immutable,
		"must-revalidate":  o.MustRevalidate,
		"no-cache":         o.NoCache,
		"no-store":         o.NoStore,
		"no-transform":     o.NoTransform,
		"private":          o.Private,
		"proxy-revalidate": o.ProxyRevalidate,
		"public":           o.Public && !o.Private,
	}
	for name, on := range flags {
		if on {
			ds = append(ds, name)
		}
	}

	sort.Strings(ds)
	return strings.Join(ds, ", ")
}
