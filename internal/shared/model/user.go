package model

import "time"

// User 注册用户
// 创建后不可修改，没有更新/删除接口
type User struct {
	ID           string    `json:"_id" bson:"_id" db:"id"`
	Name         string    `json:"name" bson:"name" db:"name"`
	Email        string    `json:"email" bson:"email" db:"email"`
	PasswordHash string    `json:"-" bson:"password" db:"password_hash"` // never expose in JSON
	Address      string    `json:"address" bson:"address" db:"address"`
	Phone        string    `json:"phone" bson:"phone" db:"phone"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser 由注册请求构造用户，PasswordHash 由调用方填充
func NewUser(req *SignupRequest, passwordHash string) *User {
	return &User{
		ID:           NewID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Address:      req.Address,
		Phone:        req.Phone,
		CreatedAt:    time.Now().UTC(),
	}
}
