package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Feedback 用户之间的评分
// rating 不做范围校验，任何数值原样保存
type Feedback struct {
	ID          string    `json:"_id" bson:"_id" db:"id"`
	UserID      string    `json:"userId" bson:"userId" db:"user_id"`
	RatedUserID string    `json:"ratedUserId" bson:"ratedUserId" db:"rated_user_id"`
	Rating      float64   `json:"rating" bson:"rating" db:"rating"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// FeedbackRequest 提交评分请求
// 表单类客户端会把数字当字符串发送，id 也可能是数字，两种写法都接受
type FeedbackRequest struct {
	UserID      LooseString `json:"userId"`
	RatedUserID LooseString `json:"ratedUserId"`
	Rating      LooseNumber `json:"rating"`
}

// NewFeedback 由请求构造 Feedback
func NewFeedback(req *FeedbackRequest) *Feedback {
	return &Feedback{
		ID:          NewID(),
		UserID:      string(req.UserID),
		RatedUserID: string(req.RatedUserID),
		Rating:      float64(req.Rating),
		CreatedAt:   time.Now().UTC(),
	}
}

// LooseNumber 接受 JSON 数字或可解析为数字的字符串；null 与空串为 0
type LooseNumber float64

func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", s)
		}
		*n = LooseNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = LooseNumber(f)
	return nil
}

// LooseString 接受 JSON 字符串或数字，数字保留原始写法
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*s = LooseString(num.String())
	return nil
}
