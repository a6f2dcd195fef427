package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnchinmayee/movie-tui/internal/domain"
)

// statusTTL 是状态行的展示时长。
const statusTTL = 4 * time.Second

// 每个命令发出一次远端调用并把结果包成完成消息。
// 无取消语义：一旦发出就跑到完成（成功或失败），完成消息无条件生效。

func (m Model) fetchCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		movies, err := client.List(context.Background())
		return moviesLoadedMsg{movies: movies, err: err}
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		movies, err := client.SearchByTitle(context.Background(), query)
		return searchDoneMsg{movies: movies, err: err}
	}
}

func (m Model) createCmd(d domain.Draft) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		movie, err := client.Create(context.Background(), d)
		return movieAddedMsg{movie: movie, err: err}
	}
}

func (m Model) saveCmd(id int64, payload domain.Draft) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Update(context.Background(), id, payload)
		return saveDoneMsg{id: id, payload: payload, err: err}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Delete(context.Background(), id)
		return deleteDoneMsg{id: id, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return statusClearMsg{} })
}
