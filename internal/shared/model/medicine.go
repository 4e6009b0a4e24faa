package model

import (
	"strings"
	"time"
)

// 药品校验失败时返回给客户端的消息
const (
	MsgFieldsRequired  = "All fields are required"
	MsgInvalidExpDate  = "Invalid expiration date"
	expDateLayoutShort = "2006-01-02"
)

// Medicine 捐赠的药品（Listing）
// 名称不唯一，按名称查询/删除时作用于最早插入的一条
type Medicine struct {
	ID           string    `json:"_id" bson:"_id" db:"id"`
	MedicineName string    `json:"medicinename" bson:"medicinename" db:"medicinename"`
	ExpDate      time.Time `json:"exp_date" bson:"exp_date" db:"exp_date"`
	Address      string    `json:"address" bson:"address" db:"address"`
	Phone        string    `json:"phone" bson:"phone" db:"phone"`
	Photo        string    `json:"photo" bson:"photo" db:"photo"`
	Description  string    `json:"description" bson:"description" db:"description"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// DonateRequest 捐赠请求
type DonateRequest struct {
	MedicineName string `json:"medicinename"`
	ExpDate      string `json:"exp_date"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Photo        string `json:"photo"`
	Description  string `json:"description"`
}

// Validate 校验六个字段均非空且 exp_date 可解析，返回待持久化的 Medicine
func (r *DonateRequest) Validate() (*Medicine, error) {
	for _, v := range []string{r.MedicineName, r.ExpDate, r.Address, r.Phone, r.Photo, r.Description} {
		if strings.TrimSpace(v) == "" {
			return nil, &ValidationError{Message: MsgFieldsRequired}
		}
	}
	exp, err := ParseExpDate(r.ExpDate)
	if err != nil {
		return nil, &ValidationError{Message: MsgInvalidExpDate, Err: err}
	}
	return &Medicine{
		ID:           NewID(),
		MedicineName: r.MedicineName,
		ExpDate:      exp,
		Address:      r.Address,
		Phone:        r.Phone,
		Photo:        r.Photo,
		Description:  r.Description,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ParseExpDate 解析有效期，接受 RFC 3339 或 YYYY-MM-DD
func ParseExpDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(expDateLayoutShort, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
