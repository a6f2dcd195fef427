package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/dnchinmayee/movie-tui/internal/app/browse"
	"github.com/dnchinmayee/movie-tui/internal/domain"
)

// fieldLabels 与 browse.Fields 按下标对齐。
var fieldLabels = []string{"标题", "题材", "导演", "年份", "评分"}

// fieldWidths 是行内编辑与表格列共用的列宽。
var fieldWidths = []int{24, 10, 20, 6, 6}

// fieldPlaceholders 提示输入边界（year ∈ [1900, 今年]，rating ∈ [0,10]）；
// 仅是输入提示，提交前不再校验。
var fieldPlaceholders = []string{"片名", "题材", "导演", "年份", "0-10"}

// newSearchInput 构造搜索栏输入（只在显式触发时发起搜索，不做逐键过滤）。
func newSearchInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "搜索: "
	in.Placeholder = "输入片名，回车搜索"
	in.CharLimit = 64
	in.Width = 32
	return in
}

// newFieldInputs 为五个可编辑字段构造 textinput，并以草稿当前值为初值。
func newFieldInputs(d domain.Draft) []textinput.Model {
	vals := fieldValues(d)
	ins := make([]textinput.Model, len(browse.Fields))
	for i := range browse.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		in.Width = fieldWidths[i]
		in.Placeholder = fieldPlaceholders[i]
		in.SetValue(vals[i])
		ins[i] = in
	}
	return ins
}

func fieldValues(d domain.Draft) []string {
	return []string{
		d.Title,
		d.Genre,
		d.Director,
		strconv.Itoa(d.Year),
		formatRating(d.Rating),
	}
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// focusInput 把焦点移到下标 i，其余全部失焦。
func focusInput(ins []textinput.Model, i int) {
	for j := range ins {
		if j == i {
			ins[j].Focus()
			continue
		}
		ins[j].Blur()
	}
}

// cycle 在 [0, n) 内按方向循环移动。
func cycle(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	i = (i + delta) % n
	if i < 0 {
		i += n
	}
	return i
}
