package relay

import (
	"net/http"
)

// MsgMissingParams 是缺少 ip 或 key 时返回给调用方的固定文本
const MsgMissingParams = "Both 'ip' and 'key' are required"

// ClientError：调用方输入不完整，在任何网络调用之前判定
type ClientError struct {
	Msg string
}

func (e *ClientError) Error() string   { return e.Msg }
func (e *ClientError) StatusCode() int { return http.StatusBadRequest }
func (e *ClientError) Detail() any     { return e.Msg }

// GatewayError：无法到达上游，或上游成功响应不可解析
type GatewayError struct {
	Prefix string
	Err    error
}

func (e *GatewayError) Error() string   { return e.Prefix + ": " + e.Err.Error() }
func (e *GatewayError) Unwrap() error   { return e.Err }
func (e *GatewayError) StatusCode() int { return http.StatusBadGateway }
func (e *GatewayError) Detail() any     { return e.Error() }

// UpstreamError：上游拒绝或失败，状态码与错误信息原样转交
// 约束：detail 为上游 JSON 的 error 字段（字符串或原始 JSON），否则为响应原文
type UpstreamError struct {
	Status int
	Body   []byte
	detail any
}

func (e *UpstreamError) Error() string {
	if s, ok := e.detail.(string); ok {
		return http.StatusText(e.Status) + ": " + s
	}
	return http.StatusText(e.Status) + ": " + string(e.Body)
}
func (e *UpstreamError) StatusCode() int { return e.Status }
func (e *UpstreamError) Detail() any     { return e.detail }
