package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, category, description, amount, location_id, spent_at, created_at, created_by`

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Category, e.Description, e.Amount, nullIfEmpty(e.LocationID),
		e.SpentAt, e.CreatedAt, nullIfEmpty(e.CreatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List gastos por categoría, ubicación y rango de fechas (spent_at), más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Expense, error) {
	var w whereBuilder
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	if f.LocationID != "" {
		w.add("location_id = $%d", f.LocationID)
	}
	if f.Search != "" {
		w.add("description ILIKE $%d", "%"+f.Search+"%")
	}
	if f.From != nil {
		w.add("spent_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("spent_at <= $%d", *f.To)
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses` + w.sql() + " ORDER BY spent_at DESC"
	query += w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Expense, error) {
		var e entity.Expense
		var locationID, createdBy *string
		err := row.Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &locationID, &e.SpentAt, &e.CreatedAt, &createdBy)
		e.LocationID, e.CreatedBy = derefStr(locationID), derefStr(createdBy)
		return &e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return list, nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
