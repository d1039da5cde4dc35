package api

import (
	"encoding/json"
	"io"
	"net/http"

	"shodan-inspector/internal/relay"
)

// 请求体上限，远大于任何合法的 {ip, key}
const maxQueryBody = 64 << 10

func queryHandler(rl *relay.Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req relay.Request
		body := http.MaxBytesReader(w, r.Body, maxQueryBody)
		if err := json.NewDecoder(body).Decode(&req); err != nil && err != io.EOF {
			writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		out, err := rl.Query(r.Context(), req)
		if err != nil {
			writeRelayError(w, err)
			return
		}
		writeRaw(w, http.StatusOK, out)
	}
}
