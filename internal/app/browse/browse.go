package browse

import (
	"github.com/dnchinmayee/movie-tui/internal/domain"
)

// Field 标识编辑中的单个可编辑字段（与记录的 JSON 字段名同形）。
type Field string

const (
	FieldTitle    Field = "title"
	FieldGenre    Field = "genre"
	FieldDirector Field = "director"
	FieldYear     Field = "year"
	FieldRating   Field = "rating"
)

// Fields 按渲染顺序列出全部可编辑字段。
var Fields = []Field{FieldTitle, FieldGenre, FieldDirector, FieldYear, FieldRating}

// EditSlot 是“至多一个”的编辑槽：被编辑行的 ID + 影子副本。
// Active=false 表示无编辑槽（零值即无槽）。
type EditSlot struct {
	Active bool
	ID     int64
	Shadow domain.Draft
}

// State 是列表/编辑协调核心的全部共享状态：可见列表 + 编辑槽。
//
// 不变量：
// - 同一时刻至多一行处于编辑态
// - 编辑槽只在 保存成功 / 取消 / 被编辑行被删除 / 列表替换移除被编辑行 时清空
// - 所有变换都是值语义的纯函数：读当前状态 → 算下一状态 → 返回
type State struct {
	Movies []domain.Movie
	Slot   EditSlot
}

// Editing 报告 id 对应的行当前是否处于编辑态。
// 渲染层对每个字段、每个操作列都必须用同一个该判断分支。
func (s State) Editing(id int64) bool {
	return s.Slot.Active && s.Slot.ID == id
}

// IndexOf 返回 id 在可见列表中的下标；不存在时返回 -1。
func (s State) IndexOf(id int64) int {
	for i := range s.Movies {
		if s.Movies[i].ID == id {
			return i
		}
	}
	return -1
}

// ReplaceList 整体替换可见列表（初始拉取、搜索结果都走这里）。
//
// 替换本身不清空编辑槽；但若替换后被编辑行已不在列表中，
// 必须清空编辑槽，避免悬空的 editing_id。
func (s State) ReplaceList(movies []domain.Movie) State {
	s.Movies = movies
	if s.Slot.Active && s.IndexOf(s.Slot.ID) < 0 {
		s.Slot = EditSlot{}
	}
	return s
}

// Append 把服务端返回的新记录追加到可见列表末尾（创建成功后的合并）。
func (s State) Append(m domain.Movie) State {
	out := make([]domain.Movie, 0, len(s.Movies)+1)
	out = append(out, s.Movies...)
	s.Movies = append(out, m)
	return s
}

// BeginEdit 进入 id 对应行的编辑态：影子副本以行的当前值为种子。
// 无条件覆盖已有编辑槽——上一行未保存的影子状态直接丢弃，不提示、不合并。
func (s State) BeginEdit(id int64) State {
	i := s.IndexOf(id)
	if i < 0 {
		return s
	}
	s.Slot = EditSlot{Active: true, ID: id, Shadow: s.Movies[i].Shadow()}
	return s
}

// ChangeField 按字段变更契约修改影子副本：
// rating 解析失败回退 0，year 解析失败回退 1970，其余字段取原始输入。
func (s State) ChangeField(f Field, value string) State {
	if !s.Slot.Active {
		return s
	}
	switch f {
	case FieldTitle:
		s.Slot.Shadow.Title = value
	case FieldGenre:
		s.Slot.Shadow.Genre = value
	case FieldDirector:
		s.Slot.Shadow.Director = value
	case FieldYear:
		s.Slot.Shadow.Year = domain.CoerceYear(value, domain.EditYearFallback)
	case FieldRating:
		s.Slot.Shadow.Rating = domain.CoerceRating(value)
	}
	return s
}

// SavePayload 返回保存所需的更新载荷（编辑槽的 ID + 影子副本）。
// ok=false 表示当前没有编辑槽。影子副本本身是强类型的，
// 数值字段在 ChangeField 时已完成回退，这里不需要二次解析。
func (s State) SavePayload() (id int64, d domain.Draft, ok bool) {
	if !s.Slot.Active {
		return 0, domain.Draft{}, false
	}
	return s.Slot.ID, s.Slot.Shadow, true
}

// CommitSave 在远端更新成功后合并载荷并清空编辑槽。
// 合并是按 id 的浅合并：行的未覆盖字段（含 ID）保留。
// 若行此刻已不在列表中（完成回调无条件生效），合并为空操作，编辑槽照常清空。
func (s State) CommitSave(id int64, d domain.Draft) State {
	if i := s.IndexOf(id); i >= 0 {
		movies := make([]domain.Movie, len(s.Movies))
		copy(movies, s.Movies)
		movies[i] = movies[i].Apply(d)
		s.Movies = movies
	}
	s.Slot = EditSlot{}
	return s
}

// CancelEdit 无条件清空编辑槽，丢弃影子副本；不发远端请求。
func (s State) CancelEdit() State {
	s.Slot = EditSlot{}
	return s
}

// Remove 在远端删除成功后按 id 移除行。
// 若被删除的行正是当前编辑目标，编辑槽一并清空（悬空保护）。
func (s State) Remove(id int64) State {
	i := s.IndexOf(id)
	if i < 0 {
		return s
	}
	movies := make([]domain.Movie, 0, len(s.Movies)-1)
	movies = append(movies, s.Movies[:i]...)
	movies = append(movies, s.Movies[i+1:]...)
	s.Movies = movies
	if s.Slot.Active && s.Slot.ID == id {
		s.Slot = EditSlot{}
	}
	return s
}
