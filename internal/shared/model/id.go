package model

import "github.com/google/uuid"

// NewID 生成实体 ID（UUID v7 字符串，同时作为 MongoDB 的 _id 和 SQL 主键）
// v7 按时间单调递增，按 ID 升序即插入顺序
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
