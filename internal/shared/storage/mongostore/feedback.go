package mongostore

import (
	"context"

	"medshare/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// FeedbackStore
// ============================================================================

func (s *Store) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	return insertOne(ctx, s.col(ColFeedbacks), fb)
}

func (s *Store) ListFeedbackByRatedUser(ctx context.Context, ratedUserID string) ([]*model.Feedback, error) {
	return findMany[model.Feedback](ctx, s.col(ColFeedbacks), bson.D{{Key: "ratedUserId", Value: ratedUserID}},
		options.Find().SetSort(insertionOrder))
}
