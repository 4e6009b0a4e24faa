// Package repository SQLite 集成测试
//
// 使用 SQLite 内存数据库验证 repository 层所有存储接口的正确性。
// 无需外部数据库依赖，可在任何环境下运行。
package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"medshare/internal/shared/model"
	"medshare/internal/shared/storage"
	"medshare/internal/shared/storage/dbutil"
	sqlitedriver "medshare/internal/shared/storage/driver/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore 创建用于测试的 SQLite 内存数据库 Store
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlitedriver.Open(":memory:")
	require.NoError(t, err)
	dialect := sqlitedriver.NewDialect()
	require.NoError(t, dialect.AutoMigrate(db))
	store := NewStore(db, dialect)
	t.Cleanup(func() { store.Close() })
	return store
}

func donate(t *testing.T, s *Store, name, address string) *model.Medicine {
	t.Helper()
	m, err := (&model.DonateRequest{
		MedicineName: name,
		ExpDate:      "2027-03-15",
		Address:      address,
		Phone:        "0100",
		Photo:        "photo.jpg",
		Description:  "sealed",
	}).Validate()
	require.NoError(t, err)
	require.NoError(t, s.CreateMedicine(context.Background(), m))
	return m
}

// ============================================================================
// Dialect 基础测试
// ============================================================================

func TestDialectTypes(t *testing.T) {
	d := sqlitedriver.NewDialect()
	assert.Equal(t, dbutil.DriverSQLite, d.DriverType())
	assert.Equal(t, "datetime('now')", d.CurrentTimestamp())
	assert.False(t, d.IsUniqueViolation(nil))
	assert.False(t, d.IsUniqueViolation(errors.New("disk I/O error")))
}

func TestRebind(t *testing.T) {
	d := sqlitedriver.NewDialect()
	assert.Equal(t, "SELECT * FROM t WHERE id = ? AND name = ?",
		d.Rebind("SELECT * FROM t WHERE id = $1 AND name = $2"))
	assert.Equal(t, "UPDATE t SET status = ? WHERE id = ?",
		d.Rebind("UPDATE t SET status = $1::varchar WHERE id = $2"))
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

// ============================================================================
// User 测试
// ============================================================================

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := model.NewUser(&model.SignupRequest{Name: "Amal", Email: "a@x.com", Address: "Cairo", Phone: "0100"}, "hash")
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Amal", got.Name)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Second)

	byID, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "a@x.com", byID.Email)

	missing, err := s.GetUserByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, model.NewUser(&model.SignupRequest{Email: "a@x.com"}, "h1")))
	err := s.CreateUser(ctx, model.NewUser(&model.SignupRequest{Email: "a@x.com"}, "h2"))
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)

	// 大小写不同视为不同邮箱
	assert.NoError(t, s.CreateUser(ctx, model.NewUser(&model.SignupRequest{Email: "A@x.com"}, "h3")))
}

// ============================================================================
// Medicine 测试
// ============================================================================

func TestMedicineListAndAddress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.ListMedicines(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a := donate(t, s, "Paracetamol", "Cairo")
	donate(t, s, "Ibuprofen", "Giza")

	all, err := s.ListMedicines(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.True(t, a.ExpDate.Equal(all[0].ExpDate), "exp_date round trip: %s vs %s", a.ExpDate, all[0].ExpDate)

	cairo, err := s.ListMedicinesByAddress(ctx, "Cairo")
	require.NoError(t, err)
	require.Len(t, cairo, 1)
	assert.Equal(t, "Paracetamol", cairo[0].MedicineName)

	other, err := s.ListMedicinesByAddress(ctx, "cairo")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMedicineFirstMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := donate(t, s, "Paracetamol", "Cairo")
	second := donate(t, s, "Paracetamol", "Giza")

	got, err := s.GetMedicineByName(ctx, "Paracetamol")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	// 删除只作用于一条
	require.NoError(t, s.DeleteMedicineByName(ctx, "Paracetamol"))
	all, err := s.ListMedicines(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)

	require.NoError(t, s.DeleteMedicineByName(ctx, "Paracetamol"))
	assert.ErrorIs(t, s.DeleteMedicineByName(ctx, "Paracetamol"), storage.ErrNotFound)

	none, err := s.GetMedicineByName(ctx, "Paracetamol")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSearchMedicineNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	donate(t, s, "Paracetamol", "Cairo")
	donate(t, s, "Ibuprofen", "Giza")
	donate(t, s, "Vitamin_C 100%", "Giza")
	donate(t, s, "Äspirin", "Alexandria")

	tests := []struct {
		query string
		want  []string
	}{
		{"par", []string{"Paracetamol"}},
		{"PAR", []string{"Paracetamol"}},
		{"cet", []string{"Paracetamol"}},
		{"pro", []string{"Ibuprofen"}},
		{"%", []string{"Vitamin_C 100%"}},
		{"n_c", []string{"Vitamin_C 100%"}},
		{"a_e", []string{}},
		{"xyz", []string{}},
		// 非 ASCII 字母同样大小写不敏感
		{"äs", []string{"Äspirin"}},
		{"ÄSP", []string{"Äspirin"}},
	}
	for _, tt := range tests {
		got, err := s.SearchMedicineNames(ctx, tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "query %q", tt.query)
	}
}

// ============================================================================
// Feedback 测试
// ============================================================================

func TestFeedbackRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, r := range []float64{-5, 999, 4.5} {
		require.NoError(t, s.CreateFeedback(ctx, model.NewFeedback(&model.FeedbackRequest{
			UserID: "rater", RatedUserID: "rated", Rating: model.LooseNumber(r),
		})))
	}
	// 重复评分允许
	require.NoError(t, s.CreateFeedback(ctx, model.NewFeedback(&model.FeedbackRequest{
		UserID: "rater", RatedUserID: "rated", Rating: 4.5,
	})))

	list, err := s.ListFeedbackByRatedUser(ctx, "rated")
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, -5.0, list[0].Rating)
	assert.Equal(t, 999.0, list[1].Rating)
	assert.Equal(t, "rater", list[0].UserID)

	empty, err := s.ListFeedbackByRatedUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
