// 包 relay：将一次 {ip, key} 查询翻译为一次上游主机查询，并把结果或错误映射回调用方
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"shodan-inspector/internal/logger"
	"shodan-inspector/internal/metrics"
	"shodan-inspector/internal/shodan"
)

// Request：一次查询的输入，两个字段都必填且不做格式校验
type Request struct {
	IP  string `json:"ip"`
	Key string `json:"key"`
}

// HostLooker：上游主机查询能力，*shodan.Client 为默认实现
type HostLooker interface {
	Host(ctx context.Context, ip, key string) (*shodan.Response, error)
}

// Relay：无状态中继，可被多个请求并发使用
type Relay struct {
	up HostLooker
}

func New(up HostLooker) *Relay { return &Relay{up: up} }

// Query：执行一次中继
// 返回：成功时为上游 200 响应体原文；失败时为 *ClientError / *GatewayError / *UpstreamError
func (r *Relay) Query(ctx context.Context, req Request) (json.RawMessage, error) {
	if req.IP == "" || req.Key == "" {
		metrics.RelayRequestsTotal.WithLabelValues(metrics.OutcomeClient).Inc()
		return nil, &ClientError{Msg: MsgMissingParams}
	}
	resp, err := r.up.Host(ctx, req.IP, req.Key)
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues(metrics.OutcomeGateway).Inc()
		logger.L().Warn("relay_network_error", "ip", req.IP, "err", err)
		return nil, &GatewayError{Prefix: "Network error", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		metrics.RelayRequestsTotal.WithLabelValues(metrics.OutcomeUpstream).Inc()
		ue := &UpstreamError{Status: resp.StatusCode, Body: resp.Body, detail: upstreamDetail(resp.Body)}
		logger.L().Info("relay_upstream_error", "ip", req.IP, "status", resp.StatusCode)
		return nil, ue
	}
	if !json.Valid(resp.Body) {
		metrics.RelayRequestsTotal.WithLabelValues(metrics.OutcomeGateway).Inc()
		logger.L().Warn("relay_invalid_json", "ip", req.IP, "bytes", len(resp.Body))
		return nil, &GatewayError{Prefix: "Invalid upstream response", Err: errInvalidJSON}
	}
	metrics.RelayRequestsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	logger.L().Debug("relay_ok", "ip", req.IP, "bytes", len(resp.Body))
	return json.RawMessage(resp.Body), nil
}

var errInvalidJSON = errors.New("body is not valid JSON")

// upstreamDetail：提取上游错误描述
// 约束：仅当响应体为 JSON 对象且含 error 键时采用该字段；字符串取值直接返回，其余类型保留原始 JSON
func upstreamDetail(body []byte) any {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return string(body)
	}
	raw, ok := obj["error"]
	if !ok {
		return string(body)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return raw
}
