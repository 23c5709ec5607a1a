package middleware

import (
	"allegro_sync/metrics"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// id в пути заменяется на {id}, чтобы не раздувать кардинальность меток
var idSegmentRe = regexp.MustCompile(`^[0-9a-fA-F-]*\d[0-9a-fA-F-]*$`)

// PrometheusTransport снимает метрики с каждого исходящего запроса.
func PrometheusTransport(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := next.RoundTrip(r)

		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		metrics.RecordRequest(r.Method, NormalizePath(r.URL.Path), status, time.Since(start))
		return resp, err
	})
}

func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if idSegmentRe.MatchString(segment) {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}
