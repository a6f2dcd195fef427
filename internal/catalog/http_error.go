package catalog

import "fmt"

// HTTPStatusError 表示集合服务返回了非 2xx 的 HTTP 状态码。
// 上层不区分传输失败与状态失败，但该类型让日志里的 error_msg 更可操作。
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	if e.URL == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d url=%s", e.StatusCode, e.URL)
}
