package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrTerminalStatus        = errors.New("la venta está en un estado final y no admite cambios")
	ErrAdvanceStatusMismatch = errors.New("el estado no corresponde al monto pagado")
	ErrDiscountExceedsTotal  = errors.New("el descuento supera el total de la venta")
	ErrOverpaid              = errors.New("el monto pagado supera el monto a pagar")
)

// InsufficientStockError indica que los lotes de una ubicación no cubren la cantidad pedida.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	VariantID  string
	LocationID string
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solicitado %s, disponible %s", e.Requested.String(), e.Available.String())
}

// Is permite comparar con ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
