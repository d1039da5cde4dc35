// 包 api：HTTP 路由装配，主入口只负责挂载
package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"shodan-inspector/internal/metrics"
	"shodan-inspector/internal/relay"
	"shodan-inspector/internal/version"
)

const serviceName = "Shodan IP Inspector"

// Deps：路由依赖
type Deps struct {
	Relay     *relay.Relay
	StaticDir string
	Started   time.Time
}

// BuildRoutes：构建完整路由
//
//	GET  /             入口页 index.html
//	GET  /static/...   静态资源
//	POST /api/query    中继查询
//	GET  /api/health   存活探测
//	GET  /api/metrics  Prometheus 指标
func BuildRoutes(d Deps) *mux.Router {
	if d.Started.IsZero() {
		d.Started = time.Now()
	}
	r := mux.NewRouter()

	r.HandleFunc("/api/query", queryHandler(d.Relay)).Methods(http.MethodPost)
	r.HandleFunc("/api/health", healthHandler(d.Started)).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/api/metrics", metrics.Handler()).Methods(http.MethodGet)

	fs := http.FileServer(http.Dir(d.StaticDir))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs)).Methods(http.MethodGet, http.MethodHead)
	index := filepath.Join(d.StaticDir, "index.html")
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, index)
	}).Methods(http.MethodGet, http.MethodHead)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}

func healthHandler(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			Service: serviceName,
			Version: version.String(),
			Uptime:  time.Since(started).Truncate(time.Second).String(),
		})
	}
}
