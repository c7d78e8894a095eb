package services

import (
	"time"

	"bookStore/entities"
)

var stageViews = map[entities.Stage]entities.StatusView{
	entities.StagePaymentPending: {Stage: entities.StagePaymentPending, Label: "Payment Pending", StyleClass: "warning", Progress: 0},
	entities.StageConfirmed:      {Stage: entities.StageConfirmed, Label: "Order Confirmed", StyleClass: "info", Progress: 0.25},
	entities.StageProcessing:     {Stage: entities.StageProcessing, Label: "Processing", StyleClass: "notice", Progress: 0.5},
	entities.StageShipped:        {Stage: entities.StageShipped, Label: "Shipped", StyleClass: "accent", Progress: 0.75},
	entities.StageDelivered:      {Stage: entities.StageDelivered, Label: "Delivered", StyleClass: "success", Progress: 1},
}

// ResolveOrderStatus maps a purchase to the status the shopper sees.
// Total over all purchases: every record resolves to exactly one view.
//
// Priority order:
//  1. pending payment wins over everything, including a stale
//     admin-set order status;
//  2. an admin-set order status overrides the date inference;
//  3. otherwise the stage is derived from whole days elapsed since the
//     purchase date.
func ResolveOrderStatus(p entities.Purchase, now time.Time) entities.StatusView {
	if p.PaymentStatus == entities.PaymentPending {
		return stageViews[entities.StagePaymentPending]
	}

	if p.OrderStatus != "" {
		switch p.OrderStatus {
		case entities.OrderProcessing:
			return stageViews[entities.StageProcessing]
		case entities.OrderShipped:
			return stageViews[entities.StageShipped]
		case entities.OrderDelivered:
			return stageViews[entities.StageDelivered]
		default:
			// unknown admin values fall back to confirmed
			return stageViews[entities.StageConfirmed]
		}
	}

	days := int(now.Sub(p.PurchaseDate).Hours() / 24)
	switch {
	case days <= 0:
		return stageViews[entities.StageConfirmed]
	case days == 1:
		return stageViews[entities.StageProcessing]
	case days <= 3:
		return stageViews[entities.StageShipped]
	default:
		return stageViews[entities.StageDelivered]
	}
}
