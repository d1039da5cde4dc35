package middleware

import (
	"log/slog"
	"net/http"

	"shodan-inspector/internal/logger"
)

// Options：中间件链配置
type Options struct {
	Logger      *slog.Logger
	CORSOrigins []string
}

// Wrap：组装入口中间件链，顺序为 访问日志 -> CORS -> 业务
func Wrap(next http.Handler, opts Options) http.Handler {
	h := next
	if len(opts.CORSOrigins) > 0 {
		h = CORS(opts.CORSOrigins)(h)
	}
	if opts.Logger != nil {
		h = logger.AccessMiddleware(opts.Logger)(h)
	}
	return h
}
