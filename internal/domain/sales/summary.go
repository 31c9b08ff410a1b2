package sales

import (
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Extras montos opcionales según el canal: PaidAmount (adelanto), DeliveryCost y ReturnCost (en línea).
type Extras struct {
	PaidAmount   *decimal.Decimal
	DeliveryCost *decimal.Decimal
	ReturnCost   *decimal.Decimal
}

// Summary valores derivados para mostrar y validar una venta.
type Summary struct {
	TotalAmount     decimal.Decimal
	TotalCost       decimal.Decimal
	DiscountAmount  decimal.Decimal
	AmountPayable   decimal.Decimal
	NetProfit       decimal.Decimal
	DeliveryCost    decimal.Decimal
	ReturnCost      decimal.Decimal
	PaidAmount      *decimal.Decimal
	RemainingAmount *decimal.Decimal
	// SuggestedStatus solo para adelantos: COMPLETED cuando lo pagado cubre el monto a pagar.
	SuggestedStatus entity.SaleStatus
}

// Summarize deriva monto a pagar, ganancia neta y, si hay pago, saldo y estado sugerido.
// La ganancia neta no descuenta envío ni devolución: se muestran en línea aparte.
func Summarize(totalAmount, totalCost, discountAmount decimal.Decimal, extra Extras) Summary {
	payable := totalAmount.Sub(discountAmount)
	s := Summary{
		TotalAmount:    totalAmount,
		TotalCost:      totalCost,
		DiscountAmount: discountAmount,
		AmountPayable:  payable,
		NetProfit:      payable.Sub(totalCost),
		DeliveryCost:   valueOrZero(extra.DeliveryCost),
		ReturnCost:     valueOrZero(extra.ReturnCost),
	}
	if extra.PaidAmount != nil {
		paid := *extra.PaidAmount
		remaining := payable.Sub(paid)
		s.PaidAmount = &paid
		s.RemainingAmount = &remaining
		s.SuggestedStatus = entity.SaleStatusPending
		if paid.Equal(payable) {
			s.SuggestedStatus = entity.SaleStatusCompleted
		}
	}
	return s
}

// SummarizeSale arma el resumen a partir de una venta persistida.
func SummarizeSale(s *entity.Sale) Summary {
	var extra Extras
	switch ch := s.Channel.(type) {
	case *entity.OnlineDetails:
		extra.DeliveryCost = &ch.DeliveryCost
		extra.ReturnCost = &ch.ReturnCost
	case *entity.AdvanceDetails:
		extra.PaidAmount = &ch.PaidAmount
	case *entity.StoreDetails:
	}
	return Summarize(s.TotalAmount, s.TotalCost, s.DiscountAmount, extra)
}

// ValidateAmounts descuento entre 0 y el total; costos no negativos.
func ValidateAmounts(totalAmount, discountAmount decimal.Decimal, extra Extras) error {
	if discountAmount.IsNegative() {
		return domain.ErrInvalidInput
	}
	if discountAmount.GreaterThan(totalAmount) {
		return domain.ErrDiscountExceedsTotal
	}
	for _, v := range []*decimal.Decimal{extra.PaidAmount, extra.DeliveryCost, extra.ReturnCost} {
		if v != nil && v.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	if extra.PaidAmount != nil && extra.PaidAmount.GreaterThan(totalAmount.Sub(discountAmount)) {
		return domain.ErrOverpaid
	}
	return nil
}

// ValidateAdvanceStatus COMPLETED exige pagado == monto a pagar y PENDING exige lo contrario.
// CANCELED no depende del pago.
func ValidateAdvanceStatus(status entity.SaleStatus, paidAmount, amountPayable decimal.Decimal) error {
	settled := paidAmount.Equal(amountPayable)
	switch status {
	case entity.SaleStatusCompleted:
		if !settled {
			return domain.ErrAdvanceStatusMismatch
		}
	case entity.SaleStatusPending:
		if settled {
			return domain.ErrAdvanceStatusMismatch
		}
	case entity.SaleStatusCanceled:
	default:
		return domain.ErrInvalidTransition
	}
	return nil
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
