package api

// errorResponse：所有失败响应的统一形态
// 约束：detail 可能是字符串，也可能是上游 error 字段的原始 JSON
type errorResponse struct {
	Detail any `json:"detail"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
