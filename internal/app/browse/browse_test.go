package browse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dnchinmayee/movie-tui/internal/domain"
)

func seed() State {
	return State{}.ReplaceList([]domain.Movie{
		{ID: 1, Title: "Inception", Genre: "Sci-Fi", Director: "Christopher Nolan", Year: 2010, Rating: 8.8},
		{ID: 2, Title: "The Godfather", Genre: "Crime", Director: "Francis Ford Coppola", Year: 1972, Rating: 9.2},
		{ID: 3, Title: "Pulp Fiction", Genre: "Crime", Director: "Quentin Tarantino", Year: 1994, Rating: 8.9},
	})
}

func TestBeginEdit_SeedsShadowFromRow(t *testing.T) {
	st := seed().BeginEdit(2)

	if !st.Slot.Active || st.Slot.ID != 2 {
		t.Fatalf("期望编辑槽指向 id=2，实际 %+v", st.Slot)
	}
	want := st.Movies[1].Shadow()
	if st.Slot.Shadow != want {
		t.Fatalf("影子副本应以行当前值为种子：%+v", st.Slot.Shadow)
	}
}

func TestBeginEdit_UnknownIDNoop(t *testing.T) {
	st := seed().BeginEdit(99)
	if st.Slot.Active {
		t.Fatalf("不存在的行不应进入编辑态：%+v", st.Slot)
	}
}

func TestBeginEdit_SecondRowDiscardsFirstShadow(t *testing.T) {
	st := seed().BeginEdit(1)
	st = st.ChangeField(FieldTitle, "Inception 2")

	// 进入另一行的编辑态：上一行未保存的影子状态无条件丢弃。
	st = st.BeginEdit(3)

	if st.Slot.ID != 3 {
		t.Fatalf("期望编辑槽只引用 id=3，实际 %+v", st.Slot)
	}
	if st.Slot.Shadow.Title != "Pulp Fiction" {
		t.Fatalf("影子应来自新行，而不是上一行的未保存值：%+v", st.Slot.Shadow)
	}
	if st.Movies[0].Title != "Inception" {
		t.Fatalf("丢弃影子不应影响可见列表：%+v", st.Movies[0])
	}
}

func TestChangeField_NumericCoercion(t *testing.T) {
	st := seed().BeginEdit(1)

	st = st.ChangeField(FieldYear, "2012")
	if st.Slot.Shadow.Year != 2012 {
		t.Fatalf("期望 year=2012，实际 %d", st.Slot.Shadow.Year)
	}
	st = st.ChangeField(FieldYear, "not-a-year")
	if st.Slot.Shadow.Year != domain.EditYearFallback {
		t.Fatalf("无法解析的 year 应回退 %d，实际 %d", domain.EditYearFallback, st.Slot.Shadow.Year)
	}

	st = st.ChangeField(FieldRating, "9.1")
	if st.Slot.Shadow.Rating != 9.1 {
		t.Fatalf("期望 rating=9.1，实际 %v", st.Slot.Shadow.Rating)
	}
	st = st.ChangeField(FieldRating, "")
	if st.Slot.Shadow.Rating != 0 {
		t.Fatalf("无法解析的 rating 应回退 0，实际 %v", st.Slot.Shadow.Rating)
	}

	st = st.ChangeField(FieldDirector, "  Christopher Nolan  ")
	if st.Slot.Shadow.Director != "  Christopher Nolan  " {
		t.Fatalf("文本字段应取原始输入：%q", st.Slot.Shadow.Director)
	}
}

func TestChangeField_NoSlotNoop(t *testing.T) {
	st := seed().ChangeField(FieldTitle, "X")
	if st.Slot.Active {
		t.Fatalf("无编辑槽时 ChangeField 应为空操作")
	}
}

func TestCommitSave_MergesAndClearsSlot(t *testing.T) {
	st := seed().BeginEdit(1)
	st = st.ChangeField(FieldTitle, "Y")

	id, payload, ok := st.SavePayload()
	if !ok || id != 1 {
		t.Fatalf("期望载荷指向 id=1，实际 id=%d ok=%v", id, ok)
	}

	st = st.CommitSave(id, payload)

	if st.Slot.Active {
		t.Fatalf("保存成功后编辑槽应清空：%+v", st.Slot)
	}
	if st.Movies[0].Title != "Y" {
		t.Fatalf("期望合并后 title=Y，实际 %q", st.Movies[0].Title)
	}
	if st.Movies[0].ID != 1 || st.Movies[0].Year != 2010 {
		t.Fatalf("浅合并应保留未编辑字段与 ID：%+v", st.Movies[0])
	}
}

func TestSaveFailure_StateUntouched(t *testing.T) {
	// 保存失败 = 不调用 CommitSave：可见列表与编辑槽都保持原样。
	st := seed().BeginEdit(1)
	st = st.ChangeField(FieldTitle, "Y")

	if st.Movies[0].Title != "Inception" {
		t.Fatalf("远端未成功前可见列表不得变化：%+v", st.Movies[0])
	}
	if !st.Slot.Active || st.Slot.ID != 1 || st.Slot.Shadow.Title != "Y" {
		t.Fatalf("用户应停留在编辑态且输入保留：%+v", st.Slot)
	}
}

func TestCancelEdit_DiscardsShadow(t *testing.T) {
	st := seed().BeginEdit(2)
	st = st.ChangeField(FieldRating, "1.0")
	st = st.CancelEdit()

	if st.Slot.Active {
		t.Fatalf("取消后编辑槽应清空：%+v", st.Slot)
	}
	if st.Movies[1].Rating != 9.2 {
		t.Fatalf("取消不应改动可见列表：%+v", st.Movies[1])
	}
}

func TestRemove_ClearsDanglingEditSlot(t *testing.T) {
	st := seed().BeginEdit(1)
	st = st.Remove(1)

	wantIDs := []int64{2, 3}
	var gotIDs []int64
	for _, m := range st.Movies {
		gotIDs = append(gotIDs, m.ID)
	}
	if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
		t.Fatalf("删除后的列表不一致 (-want +got):\n%s", diff)
	}
	if st.Slot.Active {
		t.Fatalf("删除被编辑行后编辑槽必须清空：%+v", st.Slot)
	}
}

func TestRemove_OtherRowKeepsSlot(t *testing.T) {
	st := seed().BeginEdit(1)
	st = st.Remove(3)

	if !st.Slot.Active || st.Slot.ID != 1 {
		t.Fatalf("删除其他行不应影响编辑槽：%+v", st.Slot)
	}
	if len(st.Movies) != 2 {
		t.Fatalf("期望剩余 2 行，实际 %d", len(st.Movies))
	}
}

func TestReplaceList_ClearsDanglingEditSlot(t *testing.T) {
	st := seed().BeginEdit(2)

	// 搜索结果不含被编辑行：悬空保护与删除路径一致。
	st = st.ReplaceList([]domain.Movie{{ID: 3, Title: "Pulp Fiction"}})
	if st.Slot.Active {
		t.Fatalf("被编辑行被替换移除后编辑槽必须清空：%+v", st.Slot)
	}
}

func TestReplaceList_KeepsSlotWhenRowSurvives(t *testing.T) {
	st := seed().BeginEdit(2)
	st = st.ChangeField(FieldTitle, "GF")

	st = st.ReplaceList([]domain.Movie{
		{ID: 2, Title: "The Godfather"},
		{ID: 5, Title: "Heat"},
	})
	if !st.Slot.Active || st.Slot.ID != 2 || st.Slot.Shadow.Title != "GF" {
		t.Fatalf("被编辑行仍在列表中时编辑槽应原样保留：%+v", st.Slot)
	}
}

func TestAppend(t *testing.T) {
	st := seed()
	st = st.Append(domain.Movie{ID: 42, Title: "Arrival"})
	if len(st.Movies) != 4 || st.Movies[3].ID != 42 {
		t.Fatalf("创建结果应追加到列表末尾：%+v", st.Movies)
	}
}
