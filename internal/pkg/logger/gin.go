package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time     string `json:"time"`
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	TraceID  string `json:"trace_id,omitempty"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	ClientIP string `json:"client_ip"`
}

// SetupGin installs the JSON access log and panic recovery.
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/api/check-health/"},
		Formatter: func(p gin.LogFormatterParams) string {
			var traceID string
			if id, ok := p.Keys[TraceIDKey].(string); ok {
				traceID = id
			}
			if traceID == "" && p.Request != nil {
				traceID = TraceID(p.Request.Context())
			}

			level := "INFO"
			if p.StatusCode >= 500 {
				level = "ERROR"
			}
			line, _ := json.Marshal(accessLine{
				Time:     p.TimeStamp.Format(time.RFC3339),
				Level:    level,
				Msg:      "http access",
				TraceID:  traceID,
				Method:   p.Method,
				Path:     p.Path,
				Status:   p.StatusCode,
				Latency:  p.Latency.String(),
				ClientIP: p.ClientIP,
			})
			return string(line) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
