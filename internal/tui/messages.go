package tui

import "github.com/dnchinmayee/movie-tui/internal/domain"

// 网络操作的完成消息：每个操作一种消息，携带 result-or-error。
// 完成处理由 Update 串行执行（读当前状态 → 算下一状态 → 写回）。

// moviesLoadedMsg 表示整表拉取完成（初始激活或手动刷新）。
type moviesLoadedMsg struct {
	movies []domain.Movie
	err    error
}

// searchDoneMsg 表示按标题搜索完成。
type searchDoneMsg struct {
	movies []domain.Movie
	err    error
}

// movieAddedMsg 表示创建完成；成功时 movie 是服务端分配了 ID 的完整记录。
type movieAddedMsg struct {
	movie domain.Movie
	err   error
}

// saveDoneMsg 表示更新完成；携带 id 与载荷，便于完成处理做乐观合并。
type saveDoneMsg struct {
	id      int64
	payload domain.Draft
	err     error
}

// deleteDoneMsg 表示删除完成。
type deleteDoneMsg struct {
	id  int64
	err error
}

// statusClearMsg 清除状态行（定时触发）。
type statusClearMsg struct{}
