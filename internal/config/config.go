package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// ErrCodeNotFound 表示无参运行但 cwd 下没有 movie-tui.json。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeMissingAPI 表示配置文件存在但缺少 api 字段（且 CLI 未提供）。
	ErrCodeMissingAPI = "config_missing_api"
)

// FileName 是配置文件的固定名字（在 cwd 下发现）。
const FileName = "movie-tui.json"

// MaxTimeoutSeconds 是 timeout_seconds 的上限；超出截断。
const MaxTimeoutSeconds = 300

// CLIArgs 只包含 CLI 暴露的入口（api/log），并保留“是否显式指定”的信息，
// 保证覆盖优先级可实现（CLI > 配置文件）。
type CLIArgs struct {
	API string

	LogFile    string
	LogFileSet bool
}

// FileConfig 对应 movie-tui.json 的解析结构。
type FileConfig struct {
	API            string       `json:"api"`
	Proxy          *ProxyConfig `json:"proxy"`
	TimeoutSeconds int          `json:"timeout_seconds"`
	LogFile        string       `json:"log_file"`
}

type ProxyConfig struct {
	URL string `json:"url"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
// （实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// API 是集合端点的基础路径，已去掉尾部斜杠。
	API string

	ProxyURL string

	// Timeout 为 0 表示不设置总超时。
	Timeout time.Duration

	// LogFile 为空表示不写日志。
	LogFile string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeMissingAPI:
		return fmt.Sprintf("%s：配置文件 %q 缺少必填字段 api", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 发现并读取配置文件，然后与 CLI 参数合并为最终配置。
//
// 发现规则（固定）：
// 1) CLI 提供 api：尝试读取 <cwd>/movie-tui.json（可选，补充 proxy/timeout/log）
// 2) CLI 未提供 api：必须读取 <cwd>/movie-tui.json，且其中必须包含 api
//
// 覆盖优先级（固定）：
// - api：CLI > config
// - log_file：CLI --log > config > 不写日志
// - 其他字段：仅由 config 控制（CLI 不暴露）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, FileName)
	fc, exists, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	if strings.TrimSpace(cli.API) == "" {
		if !exists {
			return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: os.ErrNotExist}
		}
		if strings.TrimSpace(fc.API) == "" {
			return EffectiveConfig{}, &Error{Code: ErrCodeMissingAPI, Path: cfgPath}
		}
	}

	return merge(cli, fc, cfgPath)
}

func merge(cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	// api：CLI > config
	api := strings.TrimSpace(cli.API)
	if api == "" {
		api = strings.TrimSpace(fc.API)
	}
	api = strings.TrimRight(api, "/")
	if err := validateAPI(api); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	proxyURL := ""
	if fc.Proxy != nil {
		proxyURL = strings.TrimSpace(fc.Proxy.URL)
	}
	if proxyURL != "" {
		if _, err := url.Parse(proxyURL); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("proxy.url 无效：%w", err)}
		}
	}

	// timeout_seconds：0 表示不设置总超时；范围 [0, 300]，超出截断。
	seconds := fc.TimeoutSeconds
	if seconds < 0 {
		seconds = 0
	}
	if seconds > MaxTimeoutSeconds {
		seconds = MaxTimeoutSeconds
	}

	// log_file：CLI --log > config
	logFile := strings.TrimSpace(fc.LogFile)
	if cli.LogFileSet {
		logFile = strings.TrimSpace(cli.LogFile)
	}

	return EffectiveConfig{
		API:      api,
		ProxyURL: proxyURL,
		Timeout:  time.Duration(seconds) * time.Second,
		LogFile:  logFile,
	}, nil
}

func validateAPI(api string) error {
	if api == "" {
		return fmt.Errorf("api 不能为空")
	}
	u, err := url.Parse(api)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api 无效：%q", api)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api 必须是 http/https：%q", api)
	}
	return nil
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
