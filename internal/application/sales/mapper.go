package sales

import (
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	domsales "github.com/jhoicas/Backoffice-api/internal/domain/sales"
)

// ToSaleResponse convierte la venta a su DTO, con el resumen financiero ya derivado.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:             s.ID,
		Channel:        string(s.ChannelType()),
		LocationID:     s.LocationID,
		Status:         string(s.Status),
		TotalAmount:    s.TotalAmount,
		DiscountAmount: s.DiscountAmount,
		TotalCost:      s.TotalCost,
		Summary:        toSummaryResponse(domsales.SummarizeSale(s)),
		Items:          toItemResponses(s.Items),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	switch ch := s.Channel.(type) {
	case *entity.StoreDetails:
		out.Store = &dto.StoreSaleResponse{CompletedAt: ch.CompletedAt, CanceledAt: ch.CanceledAt}
	case *entity.OnlineDetails:
		out.Online = &dto.OnlineSaleResponse{
			DeliveryHandlerID: ch.DeliveryHandlerID,
			TrackingNumber:    ch.TrackingNumber,
			DeliveryCost:      ch.DeliveryCost,
			ReturnCost:        ch.ReturnCost,
			CompletedAt:       ch.CompletedAt,
			CanceledAt:        ch.CanceledAt,
			ReturnedAt:        ch.ReturnedAt,
		}
	case *entity.AdvanceDetails:
		out.Advance = &dto.AdvanceSaleResponse{
			ClientID:    ch.ClientID,
			PaidAmount:  ch.PaidAmount,
			CompletedAt: ch.CompletedAt,
			CanceledAt:  ch.CanceledAt,
		}
	}
	return out
}

func toItemResponses(items []entity.SaleItem) []dto.SaleItemResponse {
	out := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		details := make([]dto.AllocationDetailResponse, 0, len(it.Details))
		for _, d := range it.Details {
			details = append(details, dto.AllocationDetailResponse{
				PurchaseItemID: d.PurchaseItemID,
				Quantity:       d.Quantity,
				UnitCost:       d.UnitCost,
				CostPerKg:      d.CostPerKg,
			})
		}
		out = append(out, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			ProductName: it.ProductName,
			VariantName: it.VariantName,
			Price:       it.Price,
			Weight:      it.Weight,
			Quantity:    it.Quantity(),
			Details:     details,
		})
	}
	return out
}

func toSummaryResponse(s domsales.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		TotalAmount:     s.TotalAmount,
		TotalCost:       s.TotalCost,
		DiscountAmount:  s.DiscountAmount,
		AmountPayable:   s.AmountPayable,
		NetProfit:       s.NetProfit,
		DeliveryCost:    s.DeliveryCost,
		ReturnCost:      s.ReturnCost,
		PaidAmount:      s.PaidAmount,
		RemainingAmount: s.RemainingAmount,
		SuggestedStatus: string(s.SuggestedStatus),
	}
}

func toDraftResponse(d *Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		ID:          d.ID,
		LocationID:  d.LocationID,
		SaleID:      d.SaleID,
		Items:       toItemResponses(d.Items),
		Lots:        inventory.ToLotResponses(d.Lots),
		TotalAmount: domsales.TotalAmount(d.Items),
		ExpiresAt:   d.ExpiresAt,
	}
}
