package domain

import "time"

type OrderRecordItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// OrderRecord is the audit row sent to the order recorder once per paid order.
type OrderRecord struct {
	OrderID       string            `json:"orderId"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerPhone string            `json:"customerPhone"`
	Items         []OrderRecordItem `json:"items"`
	TotalAmount   float64           `json:"totalAmount"`
	Currency      Currency          `json:"currency"`
	PaymentID     string            `json:"paymentId"`
	Timestamp     time.Time         `json:"timestamp"`
}

// NewOrderRecord builds the record from a cart snapshot taken before the cart
// is cleared.
func NewOrderRecord(orderID, paymentID string, contact ContactInfo, items []CartItem, currency Currency, at time.Time) *OrderRecord {
	snapshot := Cart{Items: items}
	record := &OrderRecord{
		OrderID:       orderID,
		CustomerName:  contact.FullName,
		CustomerEmail: contact.Email,
		CustomerPhone: contact.PhoneNumber,
		Items:         make([]OrderRecordItem, 0, len(items)),
		TotalAmount:   snapshot.Total(),
		Currency:      currency,
		PaymentID:     paymentID,
		Timestamp:     at.UTC(),
	}
	for _, item := range items {
		record.Items = append(record.Items, OrderRecordItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Total:    item.LineTotal(),
		})
	}
	return record
}
