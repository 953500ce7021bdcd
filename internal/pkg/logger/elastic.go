package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const (
	esBodyLimit     = 1000
	esSlowThreshold = 500 * time.Millisecond
)

// ESTransport logs every Elasticsearch round trip, bodies at debug level.
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	ctx := req.Context()

	reqBody := snapshot(&req.Body)
	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("path", req.URL.Path),
		log.Duration("latency", elapsed),
	}
	if err != nil {
		log.ErrorContext(ctx, "elasticsearch request failed", append(fields, log.String("req_body", reqBody), log.Any("err", err))...)
		return nil, err
	}

	fields = append(fields, log.Int("status", resp.StatusCode))
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		fields = append(fields, log.String("req_body", reqBody), log.String("res_body", snapshot(&resp.Body)))
		log.ErrorContext(ctx, "elasticsearch server error", fields...)
	case elapsed > esSlowThreshold:
		log.WarnContext(ctx, "elasticsearch request slow", append(fields, log.String("req_body", reqBody))...)
	default:
		log.DebugContext(ctx, "elasticsearch request", append(fields, log.String("req_body", reqBody))...)
	}
	return resp, nil
}

// snapshot reads body for logging and puts an identical reader back.
func snapshot(body *io.ReadCloser) string {
	if *body == nil {
		return ""
	}
	raw, _ := io.ReadAll(*body)
	_ = (*body).Close()
	*body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) > esBodyLimit {
		return string(raw[:esBodyLimit]) + "...[truncated]"
	}
	return string(raw)
}
