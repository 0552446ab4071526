package ranger

import (
	"net/http"
	"strconv"

	"github.com/xy-planning-network/relay/http/resp"
)

// retryAfter is how many seconds clients are told to wait out maintenance.
const retryAfter = 600

// MaintModeHandler answers every request with 503 Service Unavailable and a Retry-After header.
// Pair with (*router.Router).CatchAll.
func MaintModeHandler(rp *resp.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rp.Err(w, r, nil,
			resp.Code(http.StatusServiceUnavailable),
			resp.Header("Retry-After", strconv.Itoa(retryAfter)),
		)
	}
}
