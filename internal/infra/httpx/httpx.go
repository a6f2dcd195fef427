package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NewAPIClient 构造访问集合服务的 HTTP client。
//
// 规则：
// - proxyURL 非空：所有请求都走该代理
// - timeout 为 0：不设置总超时（挂起的请求由上层的 in-flight 标志兜底）
// - 不做重试、不做退避：集合操作都是一次“请求 → 响应”直译
func NewAPIClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	base := &http.Transport{
		Proxy:               nil,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		base.Proxy = http.ProxyURL(u)
	}

	return &http.Client{
		Transport: base,
		Timeout:   timeout,
	}, nil
}
