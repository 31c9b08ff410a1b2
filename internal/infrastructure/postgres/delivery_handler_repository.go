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

var _ repository.DeliveryHandlerRepository = (*DeliveryHandlerRepo)(nil)

// Una fila por repartidor: type discrimina entre employee_id y las columnas agency_*.
const handlerColumns = `id, type, employee_id, agency_name, agency_phone, agency_address, created_at, updated_at`

// DeliveryHandlerRepo implementación de DeliveryHandlerRepository sobre PostgreSQL.
type DeliveryHandlerRepo struct {
	q Querier
}

// NewDeliveryHandlerRepository construye el adaptador.
func NewDeliveryHandlerRepository(q Querier) *DeliveryHandlerRepo {
	return &DeliveryHandlerRepo{q: q}
}

func (r *DeliveryHandlerRepo) Create(ctx context.Context, h *entity.DeliveryHandler) error {
	query := `INSERT INTO delivery_handlers (` + handlerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	args, err := handlerArgs(h)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert delivery handler: %w", err)
	}
	return nil
}

func (r *DeliveryHandlerRepo) GetByID(ctx context.Context, id string) (*entity.DeliveryHandler, error) {
	rows, err := r.q.Query(ctx, `SELECT `+handlerColumns+` FROM delivery_handlers WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery handler: %w", err)
	}
	h, err := pgx.CollectOneRow(rows, scanHandler)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery handler: %w", err)
	}
	return h, nil
}

// Update reescribe el tipo y sus datos; cambiar de EMPLOYEE a AGENCY limpia employee_id y viceversa.
func (r *DeliveryHandlerRepo) Update(ctx context.Context, h *entity.DeliveryHandler) error {
	args, err := handlerArgs(h)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE delivery_handlers
		SET type = $2, employee_id = $3, agency_name = $4, agency_phone = $5, agency_address = $6, updated_at = $8
		WHERE id = $1`, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update delivery handler: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por tipo (Status = EMPLOYEE | AGENCY) y nombre de agencia.
func (r *DeliveryHandlerRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.DeliveryHandler, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("type = $%d", f.Status)
	}
	if f.Search != "" {
		w.add("agency_name ILIKE $%d", "%"+f.Search+"%")
	}
	query := `SELECT ` + handlerColumns + ` FROM delivery_handlers` + w.sql() + " ORDER BY created_at DESC"
	query += w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list delivery handlers: %w", err)
	}
	list, err := pgx.CollectRows(rows, scanHandler)
	if err != nil {
		return nil, fmt.Errorf("scan delivery handler: %w", err)
	}
	return list, nil
}

func handlerArgs(h *entity.DeliveryHandler) ([]any, error) {
	var employeeID, name, phone, address *string
	switch k := h.Kind.(type) {
	case entity.EmployeeHandler:
		employeeID = &k.EmployeeID
	case entity.AgencyHandler:
		name, phone, address = &k.Name, nullIfEmpty(k.Phone), nullIfEmpty(k.Address)
	default:
		return nil, domain.ErrInvalidInput
	}
	return []any{h.ID, h.Type(), employeeID, name, phone, address, h.CreatedAt, h.UpdatedAt}, nil
}

func scanHandler(row pgx.CollectableRow) (*entity.DeliveryHandler, error) {
	var h entity.DeliveryHandler
	var typ string
	var employeeID, name, phone, address *string
	if err := row.Scan(&h.ID, &typ, &employeeID, &name, &phone, &address, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	switch typ {
	case entity.DeliveryHandlerEmployee:
		h.Kind = entity.EmployeeHandler{EmployeeID: derefStr(employeeID)}
	case entity.DeliveryHandlerAgency:
		h.Kind = entity.AgencyHandler{Name: derefStr(name), Phone: derefStr(phone), Address: derefStr(address)}
	default:
		return nil, fmt.Errorf("tipo de repartidor desconocido %q", typ)
	}
	return &h, nil
}
