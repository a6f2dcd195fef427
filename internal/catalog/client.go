package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dnchinmayee/movie-tui/internal/domain"
)

// Client 包装远端电影集合服务的五个操作（list/search/create/update/delete）。
//
// 约束：
// - 每个操作都是一次“请求 → 响应”直译：不重试、不退避（总超时由 http.Client 统一控制）
// - Client 无状态：不缓存、不持有列表数据（可见列表归 browse 层所有）
// - 错误不分类：传输失败与非 2xx 状态都以普通 error 返回，由上层统一降级
type Client struct {
	// BaseURL 是集合端点的基础路径，例如 http://localhost:8080/api/movies。
	BaseURL string

	// HTTPClient 为空时使用 http.DefaultClient。
	HTTPClient *http.Client
}

// List 拉取完整集合。
func (c *Client) List(ctx context.Context) ([]domain.Movie, error) {
	var out []domain.Movie
	if err := c.getJSON(ctx, c.base(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByTitle 按标题查询（匹配语义归远端服务所有，这里只做 URL 编码后转发）。
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]domain.Movie, error) {
	u := c.base() + "/search?title=" + url.QueryEscape(query)
	var out []domain.Movie
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create 提交无 ID 的草稿，成功时返回服务端分配了 ID 的完整记录。
func (c *Client) Create(ctx context.Context, d domain.Draft) (domain.Movie, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return domain.Movie{}, err
	}
	resp, err := c.send(ctx, http.MethodPost, c.base(), body)
	if err != nil {
		return domain.Movie{}, err
	}
	defer resp.Body.Close()

	var m domain.Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}

// Update 以草稿整体更新 id 对应的记录。
// 成功仅由状态码表达；响应体不消费（调用方自己做乐观合并）。
func (c *Client) Update(ctx context.Context, id int64, d domain.Draft) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, http.MethodPut, c.idURL(id), body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Delete 删除 id 对应的记录。成功仅由状态码表达。
func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.send(ctx, http.MethodDelete, c.idURL(id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

func (c *Client) idURL(id int64) string {
	return c.base() + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	resp, err := c.send(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

// send 发出一次请求并校验状态码；非 2xx 统一转成 *HTTPStatusError。
// 返回的 resp.Body 由调用方负责关闭。
func (c *Client) send(ctx context.Context, method, u string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &HTTPStatusError{URL: u, StatusCode: resp.StatusCode}
	}
	return resp, nil
}
