package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"shodan-inspector/internal/logger"
)

// statusError：可映射为 HTTP 响应的错误，relay 包的三类错误均满足
type statusError interface {
	error
	StatusCode() int
	Detail() any
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("content-type", "application/json")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeRelayError：错误到 HTTP 的唯一映射点，未知错误按 500 处理
func writeRelayError(w http.ResponseWriter, err error) {
	var se statusError
	if errors.As(err, &se) {
		status := se.StatusCode()
		if status < 100 || status > 999 {
			status = http.StatusBadGateway
		}
		writeDetail(w, status, se.Detail())
		return
	}
	logger.L().Error("api_unhandled_error", "err", err)
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}
