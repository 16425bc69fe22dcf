package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/personeltakip/backend/internal/models"
)

type HolidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// Between lists stored holidays with from <= day <= to.
func (r *HolidayRepository) Between(ctx context.Context, from, to time.Time) ([]models.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, day, name, created_at
		FROM holidays
		WHERE day >= $1 AND day <= $2
		ORDER BY day`,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, mapError("list holidays", err)
	}
	defer rows.Close()

	holidays := []models.Holiday{}
	for rows.Next() {
		var h models.Holiday
		if err := rows.Scan(&h.ID, &h.Day, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *HolidayRepository) Create(ctx context.Context, h *models.Holiday) (*models.Holiday, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO holidays (day, name)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		h.Day.Format("2006-01-02"), h.Name,
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return nil, mapError("create holiday", err)
	}
	return h, nil
}

func (r *HolidayRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return mapError("delete holiday", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
