package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnchinmayee/movie-tui/internal/catalog"
	"github.com/dnchinmayee/movie-tui/internal/config"
	"github.com/dnchinmayee/movie-tui/internal/infra/httpx"
	"github.com/dnchinmayee/movie-tui/internal/tui"
)

func main() {
	if code := run(os.Args[1:]); code != 0 {
		os.Exit(code)
	}
}

func run(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printUsage()
			return 0
		}
	}

	ca, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	eff, err := config.LoadEffective(cwd, ca)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误（%s）：%v\n", config.Code(err), err)
		return 1
	}

	logger, closeLog, err := newLogger(eff.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "打开日志文件失败：%v\n", err)
		return 1
	}
	defer closeLog()

	httpClient, err := httpx.NewAPIClient(eff.ProxyURL, eff.Timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化 HTTP 客户端失败：%v\n", err)
		return 1
	}

	client := &catalog.Client{BaseURL: eff.API, HTTPClient: httpClient}

	p := tea.NewProgram(tui.New(client, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "界面运行失败：%v\n", err)
		return 1
	}
	return 0
}

func parseArgs(args []string) (config.CLIArgs, error) {
	ca := config.CLIArgs{}

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--log":
			if i+1 >= len(args) {
				return config.CLIArgs{}, fmt.Errorf("--log 需要一个值")
			}
			i++
			ca.LogFile = args[i]
			ca.LogFileSet = true
		case strings.HasPrefix(a, "--log="):
			// --log= 显式置空，可覆盖配置文件中的 log_file。
			ca.LogFile = strings.TrimPrefix(a, "--log=")
			ca.LogFileSet = true
		case strings.HasPrefix(a, "-"):
			return config.CLIArgs{}, fmt.Errorf("未知参数 %q", a)
		default:
			if ca.API != "" {
				return config.CLIArgs{}, fmt.Errorf("重复的 api 地址：%q 与 %q", ca.API, a)
			}
			ca.API = a
		}
	}

	return ca, nil
}

// newLogger 打开追加写的日志文件；路径为空时丢弃全部日志。
// TUI 占用终端，日志绝不能写到 stdout/stderr。
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, nil))
	return logger, func() { _ = f.Close() }, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  movie-tui [api地址] [--log 文件]

参数：
  api地址     电影集合端点，例如 http://localhost:3000/movies
              （未指定则读当前目录的 movie-tui.json）
  --log       日志文件路径（追加写）；--log= 显式关闭配置中的日志
  -h, --help  显示帮助

按键：
  ↑/↓ 移动  e 编辑  a 添加  d 删除  / 搜索  r 刷新  q 退出
`)
}
