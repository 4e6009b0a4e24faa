// Package api 内嵌 HTTP API 的 OpenAPI 文档
package api

import "embed"

// OpenAPIPath 文档在 OpenAPIFS 中的路径
const OpenAPIPath = "openapi/medshare.yaml"

//go:embed openapi/*.yaml
var OpenAPIFS embed.FS

// OpenAPISpec 返回 OpenAPI 文档原文
func OpenAPISpec() ([]byte, error) {
	return OpenAPIFS.ReadFile(OpenAPIPath)
}
