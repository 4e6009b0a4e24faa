package mongostore

import (
	"context"

	"medshare/internal/shared/model"
	"medshare/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ============================================================================
// MedicineStore
// ============================================================================

func (s *Store) CreateMedicine(ctx context.Context, m *model.Medicine) error {
	return insertOne(ctx, s.col(ColMedicines), m)
}

func (s *Store) ListMedicines(ctx context.Context) ([]*model.Medicine, error) {
	return findMany[model.Medicine](ctx, s.col(ColMedicines), bson.D{}, options.Find().SetSort(insertionOrder))
}

func (s *Store) ListMedicinesByAddress(ctx context.Context, address string) ([]*model.Medicine, error) {
	return findMany[model.Medicine](ctx, s.col(ColMedicines), bson.D{{Key: "address", Value: address}}, options.Find().SetSort(insertionOrder))
}

func (s *Store) GetMedicineByName(ctx context.Context, name string) (*model.Medicine, error) {
	opts := options.FindOne().SetSort(insertionOrder)
	return findOne[model.Medicine](ctx, s.col(ColMedicines), bson.D{{Key: "medicinename", Value: name}}, opts)
}

// DeleteMedicineByName 删除最早插入的同名药品
func (s *Store) DeleteMedicineByName(ctx context.Context, name string) error {
	opts := options.FindOneAndDelete().SetSort(insertionOrder).SetProjection(bson.D{{Key: "_id", Value: 1}})
	err := s.col(ColMedicines).FindOneAndDelete(ctx, bson.D{{Key: "medicinename", Value: name}}, opts).Err()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

type medicineName struct {
	Name string `bson:"medicinename"`
}

func (s *Store) SearchMedicineNames(ctx context.Context, query string) ([]string, error) {
	opts := options.Find().
		SetSort(insertionOrder).
		SetProjection(bson.D{{Key: "medicinename", Value: 1}, {Key: "_id", Value: 0}})
	docs, err := findMany[medicineName](ctx, s.col(ColMedicines), bson.D{{Key: "medicinename", Value: containsPattern(query)}}, opts)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}

var _ storage.MedicineStore = (*Store)(nil)
