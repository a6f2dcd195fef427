package domain

import (
	"strconv"
	"strings"
	"time"
)

// Movie 是目录中的一条电影记录，与远端集合服务的 JSON 形状一一对应。
//
// 不变量（实现必须遵守）：
// - ID 由远端服务在创建时分配，本地永不生成、创建后永不修改
// - 创建/更新请求不携带 ID（用 Draft 表达“无 ID”的形状）
type Movie struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
}

// Draft 是“无 ID”的记录形状：创建请求体、更新请求体、以及编辑中的影子副本都用它。
type Draft struct {
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
}

// Shadow 以当前行的字段值生成影子副本（进入编辑态时的种子值）。
func (m Movie) Shadow() Draft {
	return Draft{
		Title:    m.Title,
		Genre:    m.Genre,
		Director: m.Director,
		Year:     m.Year,
		Rating:   m.Rating,
	}
}

// Apply 把草稿字段合并进记录（按 id 的浅合并：ID 保留，其余字段整体覆盖）。
func (m Movie) Apply(d Draft) Movie {
	m.Title = d.Title
	m.Genre = d.Genre
	m.Director = d.Director
	m.Year = d.Year
	m.Rating = d.Rating
	return m
}

// DefaultDraft 返回创建流的草稿默认值：空字符串、当前年份、评分 0。
func DefaultDraft(now time.Time) Draft {
	return Draft{Year: now.Year()}
}

// EditYearFallback 是编辑流中 year 无法解析时的回退值。
// 创建流的回退值是“当前年份”（见 DefaultDraft）。
const EditYearFallback = 1970

// YearMin 是输入边界允许的最早年份（仅用于输入提示，提交前不再校验）。
const YearMin = 1900

// CoerceRating 按字段变更契约解析 rating：解析失败时静默回退为 0。
//
// 约束：回退是契约的一部分——无效输入被静默替换，而不是被拒绝。
func CoerceRating(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// CoerceYear 按字段变更契约解析 year：解析失败时静默回退为 fallback。
func CoerceYear(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
