package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medshare/internal/shared/model"
	"medshare/internal/shared/storage"
	"medshare/internal/shared/storage/dbutil"
)

const medicineColumns = `id, medicinename, exp_date, address, phone, photo, description, created_at`

// CreateMedicine 保存捐赠药品
func (r *Store) CreateMedicine(ctx context.Context, m *model.Medicine) error {
	_, err := r.db.ExecContext(ctx, r.rebind(
		`INSERT INTO medicines (`+medicineColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`),
		m.ID, m.MedicineName, m.ExpDate, m.Address,
		m.Phone, m.Photo, m.Description, m.CreatedAt,
	)
	return r.wrapError(err)
}

// ListMedicines 列出全部药品（无分页）
func (r *Store) ListMedicines(ctx context.Context) ([]*model.Medicine, error) {
	return r.listMedicines(ctx, `SELECT `+medicineColumns+` FROM medicines ORDER BY id`)
}

// ListMedicinesByAddress 按地址精确匹配
func (r *Store) ListMedicinesByAddress(ctx context.Context, address string) ([]*model.Medicine, error) {
	return r.listMedicines(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE address = $1 ORDER BY id`, address)
}

// GetMedicineByName 按名称精确匹配，返回最早插入的一条
func (r *Store) GetMedicineByName(ctx context.Context, name string) (*model.Medicine, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(
		`SELECT `+medicineColumns+` FROM medicines WHERE medicinename = $1 ORDER BY id LIMIT 1`), name)
	m, err := scanMedicine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMedicineByName 删除最早插入的同名药品
func (r *Store) DeleteMedicineByName(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(
		`DELETE FROM medicines WHERE id = (
		   SELECT id FROM medicines WHERE medicinename = $1 ORDER BY id LIMIT 1
		 )`), name)
	if err != nil {
		return r.wrapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SearchMedicineNames 名称子串匹配（大小写不敏感，通配符按字面量处理）
func (r *Store) SearchMedicineNames(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(fmt.Sprintf(
		`SELECT medicinename FROM medicines
		 WHERE %s(medicinename) LIKE $1 ESCAPE '\'
		 ORDER BY id`, r.dialect.LowerFunc())), dbutil.ContainsPattern(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *Store) listMedicines(ctx context.Context, query string, args ...any) ([]*model.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	medicines := []*model.Medicine{}
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		medicines = append(medicines, m)
	}
	return medicines, rows.Err()
}

func scanMedicine(row scanner) (*model.Medicine, error) {
	m := &model.Medicine{}
	err := row.Scan(&m.ID, &m.MedicineName, &m.ExpDate, &m.Address,
		&m.Phone, &m.Photo, &m.Description, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
