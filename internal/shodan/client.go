// 包 shodan：Shodan REST 主机查询的传输层封装
package shodan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shodan-inspector/internal/logger"
	"shodan-inspector/internal/metrics"
)

const (
	DefaultBase    = "https://api.shodan.io"
	DefaultTimeout = 10 * time.Second
)

// Response：上游原始响应，Body 已完整读取且连接已释放
type Response struct {
	StatusCode int
	Body       []byte
}

// Client：主机查询客户端，可并发复用
type Client struct {
	base string
	http *http.Client
}

// New：构建客户端；rt 为空时使用 http.DefaultTransport，timeout<=0 时使用 DefaultTimeout
func New(base string, timeout time.Duration, rt http.RoundTripper) *Client {
	if base == "" {
		base = DefaultBase
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout, Transport: rt},
	}
}

// Base：上游基础地址
func (c *Client) Base() string { return c.base }

// Timeout：单次请求超时
func (c *Client) Timeout() time.Duration { return c.http.Timeout }

// HostURL：拼接 /shodan/host/{ip}?key={key}
// 约束：ip 作为路径段转义，key 作为查询参数编码
func (c *Client) HostURL(ip, key string) string {
	q := url.Values{}
	q.Set("key", key)
	return c.base + "/shodan/host/" + url.PathEscape(ip) + "?" + q.Encode()
}

// Host：发起一次主机查询
// 返回：任意状态码的上游响应；仅在传输层失败时返回 error
func (c *Client) Host(ctx context.Context, ip, key string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.HostURL(ip, key), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	t0 := time.Now()
	metrics.UpstreamRequestsTotal.Inc()
	logger.L().Debug("shodan_req", "ip", ip)
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(0, float64(time.Since(t0).Milliseconds()))
		return nil, c.redact(err, ip)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	dur := time.Since(t0).Milliseconds()
	metrics.ObserveUpstream(resp.StatusCode, float64(dur))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", c.redact(err, ip))
	}
	logger.L().Debug("shodan_resp", "ip", ip, "status", resp.StatusCode, "bytes", len(body), "duration_ms", dur)
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// redact：*url.Error 携带完整请求地址，错误文本会返回给调用方并写入日志，需替换其中的 key
func (c *Client) redact(err error, ip string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: c.HostURL(ip, "REDACTED"), Err: ue.Err}
	}
	return err
}
