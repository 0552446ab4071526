package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/relay"
	"github.com/xy-planning-network/relay/logger"
)

// LogMaskVal replaces the values of scrubbed query parameters.
const LogMaskVal = "xxxxxxx"

// A LogRequestRecord is what LogRequest reports about one exchange.
type LogRequestRecord struct {
	Aborted        bool          `json:"aborted"`
	BodySize       int           `json:"bodySize"`
	Duration       time.Duration `json:"duration"`
	Host           string        `json:"host"`
	ID             string        `json:"id"`
	IPAddr         string        `json:"ipAddr"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	Protocol       string        `json:"protocol"`
	Range          string        `json:"range"`
	Referrer       string        `json:"referrer"`
	ReqContentType string        `json:"reqContentType"`
	Scheme         string        `json:"scheme"`
	Status         int           `json:"status"`
	URI            string        `json:"uri"`
	UserAgent      string        `json:"userAgent"`
}

// Data flattens rec for a logger.LogContext, leaving out empty fields.
func (rec LogRequestRecord) Data() map[string]any {
	data := map[string]any{
		"bodySize": rec.BodySize,
		"duration": rec.Duration.String(),
		"method":   rec.Method,
		"path":     rec.Path,
		"status":   rec.Status,
		"uri":      rec.URI,
	}

	if rec.Aborted {
		data["aborted"] = true
	}

	for k, v := range map[string]string{
		"host":           rec.Host,
		"id":             rec.ID,
		"ipAddr":         rec.IPAddr,
		"protocol":       rec.Protocol,
		"range":          rec.Range,
		"referrer":       rec.Referrer,
		"reqContentType": rec.ReqContentType,
		"scheme":         rec.Scheme,
		"userAgent":      rec.UserAgent,
	} {
		if v != "" {
			data[k] = v
		}
	}

	return data
}

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger,
// once the handler returns with the status it sent and the bytes it wrote.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &recordingWriter{ResponseWriter: w}

			h.ServeHTTP(rw, r)

			rec := newLogRequestRecord(r)
			rec.BodySize = rw.size
			rec.Duration = time.Since(start)
			rec.Status = rw.Status()
			rec.Aborted = r.Context().Err() != nil

			strs := []string{rec.Method, rec.URI, strconv.Itoa(rec.Status)}
			if rec.IPAddr != "" {
				strs = append([]string{rec.IPAddr}, strs...)
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: rec.Data()})
		})
	}
}

func newLogRequestRecord(r *http.Request) LogRequestRecord {
	q := r.URL.Query()
	if val := q.Get("password"); val != "" {
		q.Set("password", LogMaskVal)
	}

	uri := r.URL.Path
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	rec := LogRequestRecord{
		Host:           r.Host,
		Method:         r.Method,
		Path:           r.URL.Path,
		Protocol:       r.Proto,
		Range:          r.Header.Get("Range"),
		Referrer:       r.Referer(),
		ReqContentType: r.Header.Get("Content-Type"),
		Scheme:         r.URL.Scheme,
		URI:            uri,
		UserAgent:      r.UserAgent(),
	}

	if ip, ok := r.Context().Value(relay.IpAddrKey).(string); ok {
		rec.IPAddr = ip
	}

	if id, ok := r.Context().Value(relay.RequestIDKey).(string); ok {
		rec.ID = id
	}

	return rec
}

// recordingWriter notes the status and size of a response passing through it.
//
// It reports HeaderWritten for resp.HTTPHost
// and hands out the wrapped http.ResponseWriter through Unwrap for http.ResponseController.
type recordingWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (rw *recordingWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}

	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(p []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}

	n, err := rw.ResponseWriter.Write(p)
	rw.size += n
	return n, err
}

func (rw *recordingWriter) HeaderWritten() bool         { return rw.wroteHeader }
func (rw *recordingWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

// Status is what was sent, http.StatusOK if the handler never said.
func (rw *recordingWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}

	return rw.status
}
