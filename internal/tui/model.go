package tui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnchinmayee/movie-tui/internal/app/browse"
	"github.com/dnchinmayee/movie-tui/internal/catalog"
	"github.com/dnchinmayee/movie-tui/internal/domain"
)

type focus int

const (
	focusList focus = iota
	focusSearch
)

type modal int

const (
	modalNone modal = iota
	modalAdd
	modalConfirmDelete
)

// Model 是整个目录浏览器的根模型。
//
// 约束：
// - 可见列表与编辑槽只归 browse.State 所有，只在 Update 内变换
// - 失败一律本地降级：记日志 + 状态行，按“清空”或“保持不变”两种策略收场
// - 每个网络操作一个 in-flight 标志：挂起期间忽略重复触发
type Model struct {
	client *catalog.Client
	logger *slog.Logger

	st browse.State

	cursor int
	focus  focus
	modal  modal

	search textinput.Model

	editInputs []textinput.Model
	editFocus  int

	addInputs []textinput.Model
	addFocus  int

	confirmID    int64
	confirmTitle string

	loading   bool
	searching bool
	creating  bool
	saving    bool
	deleting  bool

	status    string
	statusErr bool

	width  int
	height int

	// now 可在测试中固定，用于创建流的“当前年份”默认值。
	now func() time.Time
}

// New 构造根模型；logger 为空时丢弃日志。
func New(client *catalog.Client, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := Model{
		client:  client,
		logger:  logger,
		loading: true,
		now:     time.Now,
	}

	m.search = newSearchInput()
	m.addInputs = newFieldInputs(domain.DefaultDraft(m.now()))
	return m
}

// Init 在激活时拉取完整集合。
func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case moviesLoadedMsg:
		return m.onMoviesLoaded(msg)
	case searchDoneMsg:
		return m.onSearchDone(msg)
	case movieAddedMsg:
		return m.onMovieAdded(msg)
	case saveDoneMsg:
		return m.onSaveDone(msg)
	case deleteDoneMsg:
		return m.onDeleteDone(msg)

	case statusClearMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// --- 完成处理：每个远端结果都是 (当前状态, 结果) → 下一状态 的纯变换 ---

func (m Model) onMoviesLoaded(msg moviesLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		// 初始拉取失败：宁可什么都不显示，也不显示陈旧/错误数据。
		m.logger.Error("拉取电影列表失败", "err", msg.err)
		m.st = m.st.ReplaceList(nil)
		m = m.syncAfterState()
		return m.withStatus("加载列表失败（列表已清空）", true)
	}
	m.st = m.st.ReplaceList(msg.movies)
	m = m.syncAfterState()
	return m, nil
}

func (m Model) onSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	if msg.err != nil {
		// 搜索失败同样收敛到空列表（fail-safe-empty）。
		m.logger.Error("搜索电影失败", "query", m.search.Value(), "err", msg.err)
		m.st = m.st.ReplaceList(nil)
		m = m.syncAfterState()
		return m.withStatus("搜索失败（列表已清空）", true)
	}
	m.st = m.st.ReplaceList(msg.movies)
	m = m.syncAfterState()
	if len(msg.movies) == 0 {
		return m.withStatus("没有匹配的电影", false)
	}
	return m, nil
}

func (m Model) onMovieAdded(msg movieAddedMsg) (tea.Model, tea.Cmd) {
	m.creating = false
	if msg.err != nil {
		// 创建失败：弹窗保持打开、草稿保留，用户不丢输入。
		m.logger.Error("添加电影失败", "err", msg.err)
		return m.withStatus("添加失败（输入已保留，可重试）", true)
	}
	m.st = m.st.Append(msg.movie)
	m.modal = modalNone
	m.addInputs = newFieldInputs(domain.DefaultDraft(m.now()))
	m.addFocus = 0
	return m.withStatus(fmt.Sprintf("已添加 %q", msg.movie.Title), false)
}

func (m Model) onSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		// 更新失败：停留在编辑态，未保存输入原样保留，用户可重试或取消。
		m.logger.Error("更新电影失败", "id", msg.id, "err", msg.err)
		return m.withStatus("保存失败（仍在编辑态，可重试或取消）", true)
	}
	m.st = m.st.CommitSave(msg.id, msg.payload)
	m = m.syncAfterState()
	return m.withStatus(fmt.Sprintf("已保存 %q", msg.payload.Title), false)
}

func (m Model) onDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	m.deleting = false
	if msg.err != nil {
		// 删除失败：列表保持不变。
		m.logger.Error("删除电影失败", "id", msg.id, "err", msg.err)
		return m.withStatus("删除失败（列表未变化）", true)
	}
	m.st = m.st.Remove(msg.id)
	m = m.syncAfterState()
	return m.withStatus("已删除", false)
}

// --- 按键路由 ---

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.modal {
	case modalAdd:
		return m.handleAddKey(k)
	case modalConfirmDelete:
		return m.handleConfirmKey(k)
	}

	if m.st.Slot.Active {
		return m.handleEditKey(k)
	}
	if m.focus == focusSearch {
		return m.handleSearchKey(k)
	}
	return m.handleListKey(k)
}

func (m Model) handleListKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.st.Movies))
		return m, nil
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.st.Movies))
		return m, nil

	case "/":
		m.focus = focusSearch
		m.search.Focus()
		return m, textinput.Blink

	case "e", "enter":
		if len(m.st.Movies) == 0 || m.saving {
			return m, nil
		}
		return m.enterEdit(m.st.Movies[m.cursor].ID)

	case "a":
		if m.creating {
			return m, nil
		}
		// 弹窗打开期间列表按键全部挂起；每条关闭路径都会恢复。
		m.modal = modalAdd
		m.addFocus = 0
		focusInput(m.addInputs, 0)
		return m, textinput.Blink

	case "d":
		if len(m.st.Movies) == 0 || m.deleting {
			return m, nil
		}
		row := m.st.Movies[m.cursor]
		m.modal = modalConfirmDelete
		m.confirmID = row.ID
		m.confirmTitle = row.Title
		return m, nil

	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.fetchCmd()
	}
	return m, nil
}

func (m Model) handleSearchKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.focus = focusList
		m.search.Blur()
		return m, nil
	case "enter":
		if m.searching {
			return m, nil
		}
		m.searching = true
		return m, m.searchCmd(m.search.Value())
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(k)
	return m, cmd
}

func (m Model) enterEdit(id int64) (tea.Model, tea.Cmd) {
	m.st = m.st.BeginEdit(id)
	if !m.st.Slot.Active {
		return m, nil
	}
	m.editInputs = newFieldInputs(m.st.Slot.Shadow)
	m.editFocus = 0
	focusInput(m.editInputs, 0)
	return m, textinput.Blink
}

func (m Model) handleEditKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch k.String() {
	case "esc":
		m.st = m.st.CancelEdit()
		m.editInputs = nil
		return m, nil

	case "tab", "down":
		m.editFocus = cycle(m.editFocus, 1, len(m.editInputs))
		focusInput(m.editInputs, m.editFocus)
		return m, nil
	case "shift+tab", "up":
		m.editFocus = cycle(m.editFocus, -1, len(m.editInputs))
		focusInput(m.editInputs, m.editFocus)
		return m, nil

	case "enter":
		id, payload, ok := m.st.SavePayload()
		if !ok {
			return m, nil
		}
		m.saving = true
		return m, m.saveCmd(id, payload)
	}

	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(k)
	m.st = m.st.ChangeField(browse.Fields[m.editFocus], m.editInputs[m.editFocus].Value())
	return m, cmd
}

func (m Model) handleAddKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creating {
		return m, nil
	}

	switch k.String() {
	case "esc":
		// 关闭即丢弃草稿（重置为默认值），不做确认。
		m.modal = modalNone
		m.addInputs = newFieldInputs(domain.DefaultDraft(m.now()))
		m.addFocus = 0
		return m, nil

	case "tab", "down":
		m.addFocus = cycle(m.addFocus, 1, len(m.addInputs))
		focusInput(m.addInputs, m.addFocus)
		return m, nil
	case "shift+tab", "up":
		m.addFocus = cycle(m.addFocus, -1, len(m.addInputs))
		focusInput(m.addInputs, m.addFocus)
		return m, nil

	case "enter":
		m.creating = true
		return m, m.createCmd(m.addDraft())
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(k)
	return m, cmd
}

func (m Model) handleConfirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "y", "enter":
		m.modal = modalNone
		m.deleting = true
		return m, m.deleteCmd(m.confirmID)
	case "n", "esc":
		// 拒绝确认：不改状态、不发请求。
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

// addDraft 按字段变更契约从弹窗输入构造草稿（创建流的 year 回退是当前年份）。
func (m Model) addDraft() domain.Draft {
	return domain.Draft{
		Title:    m.addInputs[0].Value(),
		Genre:    m.addInputs[1].Value(),
		Director: m.addInputs[2].Value(),
		Year:     domain.CoerceYear(m.addInputs[3].Value(), m.now().Year()),
		Rating:   domain.CoerceRating(m.addInputs[4].Value()),
	}
}

// syncAfterState 在 browse.State 变换后对齐派生的 UI 状态：
// 编辑槽被悬空保护清掉时回收行内输入；光标夹回列表范围。
func (m Model) syncAfterState() Model {
	if !m.st.Slot.Active {
		m.editInputs = nil
	}
	m.cursor = clampCursor(m.cursor, len(m.st.Movies))
	return m
}

func (m Model) withStatus(s string, isErr bool) (tea.Model, tea.Cmd) {
	m.status = s
	m.statusErr = isErr
	return m, clearStatusAfter(statusTTL)
}

func clampCursor(cur, n int) int {
	if cur >= n {
		cur = n - 1
	}
	if cur < 0 {
		cur = 0
	}
	return cur
}
