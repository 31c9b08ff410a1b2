package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Email), nullIfEmpty(c.Address),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT id, name, phone, email, address, created_at, updated_at FROM clients WHERE id = $1`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	c, err := pgx.CollectOneRow(rows, scanClient)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Update reescribe los datos de contacto del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, phone = $3, email = $4, address = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Email), nullIfEmpty(c.Address), c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca por nombre, teléfono o email.
func (r *ClientRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Client, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(name ILIKE $%[1]d OR phone ILIKE $%[1]d OR email ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	query := `SELECT id, name, phone, email, address, created_at, updated_at FROM clients` +
		w.sql() + " ORDER BY name"
	query += w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Client, error) {
		c, err := scanClient(row)
		return &c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return list, nil
}

func scanClient(row pgx.CollectableRow) (entity.Client, error) {
	var c entity.Client
	var phone, email, address *string
	err := row.Scan(&c.ID, &c.Name, &phone, &email, &address, &c.CreatedAt, &c.UpdatedAt)
	c.Phone, c.Email, c.Address = derefStr(phone), derefStr(email), derefStr(address)
	return c, err
}
