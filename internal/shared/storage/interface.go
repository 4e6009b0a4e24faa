// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：mongostore/（默认）、repository/（PostgreSQL、SQLite）
//   - 初始化时通过依赖注入传入实现（见 infra.NewPersistentStore）
//
// 查询约定：单条查询未找到时返回 (nil, nil)；列表查询未找到时返回空切片。
package storage

import (
	"context"

	"medshare/internal/shared/model"
)

// UserStore 用户存储接口
// email 上有唯一索引，重复插入返回 ErrDuplicate
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// MedicineStore 药品存储接口
//
// 名称不唯一：GetMedicineByName / DeleteMedicineByName 作用于最早插入的匹配项。
type MedicineStore interface {
	CreateMedicine(ctx context.Context, m *model.Medicine) error
	ListMedicines(ctx context.Context) ([]*model.Medicine, error)
	ListMedicinesByAddress(ctx context.Context, address string) ([]*model.Medicine, error)
	GetMedicineByName(ctx context.Context, name string) (*model.Medicine, error)
	// DeleteMedicineByName 删除一条匹配记录，未找到时返回 ErrNotFound
	DeleteMedicineByName(ctx context.Context, name string) error
	// SearchMedicineNames 名称大小写不敏感的子串匹配，query 按字面量处理
	SearchMedicineNames(ctx context.Context, query string) ([]string, error)
}

// FeedbackStore 评分存储接口
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, fb *model.Feedback) error
	ListFeedbackByRatedUser(ctx context.Context, ratedUserID string) ([]*model.Feedback, error)
}

// PersistentStore 持久化存储组合接口
type PersistentStore interface {
	UserStore
	MedicineStore
	FeedbackStore
	Ping(ctx context.Context) error
	Close() error
}
