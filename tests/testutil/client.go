package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Client JSON HTTP 客户端
type Client struct {
	BaseURL string
	Client  *http.Client
	Token   string // 非空时附加 Authorization 头
}

// NewClient 创建客户端
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Get 发送 GET 请求
func (c *Client) Get(path string) (*http.Response, error) {
	return c.Do(http.MethodGet, path, nil)
}

// Post 发送 POST 请求（JSON body）
func (c *Client) Post(path string, body interface{}) (*http.Response, error) {
	return c.Do(http.MethodPost, path, body)
}

// Delete 发送 DELETE 请求
func (c *Client) Delete(path string) (*http.Response, error) {
	return c.Do(http.MethodDelete, path, nil)
}

// Do 执行自定义请求
func (c *Client) Do(method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.Client.Do(req)
}

// ---- 响应解析辅助 ----

// ReadJSON 解析 JSON 对象响应并关闭 Body
func ReadJSON(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result
}

// ReadJSONArray 解析 JSON 数组响应并关闭 Body
func ReadJSONArray(resp *http.Response) []map[string]interface{} {
	defer resp.Body.Close()
	var result []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result
}
