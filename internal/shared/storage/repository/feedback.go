package repository

import (
	"context"

	"medshare/internal/shared/model"
)

// CreateFeedback 保存评分，不校验 rating 范围
func (r *Store) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	_, err := r.db.ExecContext(ctx, r.rebind(
		`INSERT INTO feedbacks (id, user_id, rated_user_id, rating, created_at)
		 VALUES ($1, $2, $3, $4, $5)`),
		fb.ID, fb.UserID, fb.RatedUserID, fb.Rating, fb.CreatedAt,
	)
	return r.wrapError(err)
}

// ListFeedbackByRatedUser 查询某用户收到的全部评分
func (r *Store) ListFeedbackByRatedUser(ctx context.Context, ratedUserID string) ([]*model.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(
		`SELECT id, user_id, rated_user_id, rating, created_at
		 FROM feedbacks WHERE rated_user_id = $1 ORDER BY id`), ratedUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*model.Feedback{}
	for rows.Next() {
		fb := &model.Feedback{}
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.RatedUserID, &fb.Rating, &fb.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, fb)
	}
	return list, rows.Err()
}
