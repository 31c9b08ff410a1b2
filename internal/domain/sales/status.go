package sales

import (
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Estados admitidos por canal.
var channelStatuses = map[entity.Channel][]entity.SaleStatus{
	entity.ChannelStore:   {entity.SaleStatusCompleted, entity.SaleStatusCanceled},
	entity.ChannelOnline:  {entity.SaleStatusPending, entity.SaleStatusCompleted, entity.SaleStatusReturned, entity.SaleStatusCanceled},
	entity.ChannelAdvance: {entity.SaleStatusPending, entity.SaleStatusCompleted, entity.SaleStatusCanceled},
}

// ValidStatus indica si el canal admite el estado.
func ValidStatus(ch entity.Channel, status entity.SaleStatus) bool {
	for _, s := range channelStatuses[ch] {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal estados que bloquean cualquier edición posterior.
func IsTerminal(ch entity.Channel, status entity.SaleStatus) bool {
	switch ch {
	case entity.ChannelOnline:
		return status == entity.SaleStatusReturned || status == entity.SaleStatusCanceled
	case entity.ChannelStore, entity.ChannelAdvance:
		return status == entity.SaleStatusCanceled
	}
	return false
}

// ReleasesStock indica si pasar de from a to devuelve las cantidades a los lotes.
func ReleasesStock(from, to entity.SaleStatus) bool {
	if from == to {
		return false
	}
	return to == entity.SaleStatusCanceled || to == entity.SaleStatusReturned
}

// Transition aplica la máquina de estados del canal de la venta y ajusta sus marcas de tiempo.
// Mismo estado es un no-op salvo en estados finales.
func Transition(s *entity.Sale, to entity.SaleStatus, now time.Time) error {
	if !ValidStatus(s.ChannelType(), to) {
		return domain.ErrInvalidTransition
	}
	if IsTerminal(s.ChannelType(), s.Status) {
		return domain.ErrTerminalStatus
	}

	var err error
	switch ch := s.Channel.(type) {
	case *entity.StoreDetails:
		err = transitionStore(ch, s.Status, to, now)
	case *entity.OnlineDetails:
		err = transitionOnline(ch, s.Status, to, now)
	case *entity.AdvanceDetails:
		err = transitionAdvance(ch, s.Status, to, s.TotalAmount.Sub(s.DiscountAmount), now)
	default:
		err = domain.ErrInvalidInput
	}
	if err != nil {
		return err
	}
	s.Status = to
	return nil
}

// InitialStatus estado con el que nace una venta cuando el pedido no indica uno.
func InitialStatus(s *entity.Sale) entity.SaleStatus {
	switch ch := s.Channel.(type) {
	case *entity.StoreDetails:
		return entity.SaleStatusCompleted
	case *entity.OnlineDetails:
		return entity.SaleStatusPending
	case *entity.AdvanceDetails:
		if ch.PaidAmount.Equal(s.TotalAmount.Sub(s.DiscountAmount)) {
			return entity.SaleStatusCompleted
		}
		return entity.SaleStatusPending
	}
	return ""
}

// StampInitial fija las marcas de tiempo del estado con el que se crea la venta.
func StampInitial(s *entity.Sale, now time.Time) {
	t := now
	switch ch := s.Channel.(type) {
	case *entity.StoreDetails:
		switch s.Status {
		case entity.SaleStatusCompleted:
			ch.CompletedAt, ch.CanceledAt = &t, nil
		case entity.SaleStatusCanceled:
			ch.CompletedAt, ch.CanceledAt = nil, &t
		}
	case *entity.OnlineDetails:
		switch s.Status {
		case entity.SaleStatusCompleted:
			ch.CompletedAt = &t
		case entity.SaleStatusCanceled:
			ch.CanceledAt = &t
		}
	case *entity.AdvanceDetails:
		switch s.Status {
		case entity.SaleStatusCompleted:
			ch.CompletedAt = &t
		case entity.SaleStatusCanceled:
			ch.CanceledAt = &t
		}
	}
}

// tienda: COMPLETED ↔ CANCELED, con una sola marca de tiempo activa. CANCELED es final.
func transitionStore(d *entity.StoreDetails, from, to entity.SaleStatus, now time.Time) error {
	if from == to {
		return nil
	}
	if from == entity.SaleStatusCompleted && to == entity.SaleStatusCanceled {
		d.CanceledAt = &now
		d.CompletedAt = nil
		return nil
	}
	return domain.ErrInvalidTransition
}

// en línea: PENDING → COMPLETED | CANCELED; COMPLETED → RETURNED.
func transitionOnline(d *entity.OnlineDetails, from, to entity.SaleStatus, now time.Time) error {
	if from == to {
		return nil
	}
	switch {
	case from == entity.SaleStatusPending && to == entity.SaleStatusCompleted:
		if d.CompletedAt == nil {
			d.CompletedAt = &now
		}
	case from == entity.SaleStatusPending && to == entity.SaleStatusCanceled:
		d.CanceledAt = &now
	case from == entity.SaleStatusCompleted && to == entity.SaleStatusReturned:
		d.ReturnedAt = &now
	default:
		return domain.ErrInvalidTransition
	}
	return nil
}

// adelanto: PENDING ↔ COMPLETED según el pago; cualquiera → CANCELED (final).
func transitionAdvance(d *entity.AdvanceDetails, from, to entity.SaleStatus, payable decimal.Decimal, now time.Time) error {
	if err := ValidateAdvanceStatus(to, d.PaidAmount, payable); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	switch to {
	case entity.SaleStatusCompleted:
		d.CompletedAt = &now
	case entity.SaleStatusPending:
		d.CompletedAt = nil
	case entity.SaleStatusCanceled:
		d.CanceledAt = &now
	}
	return nil
}
