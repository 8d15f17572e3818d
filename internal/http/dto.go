package http

import (
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/fjod/go_storefront/internal/session"
)

type ProductResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	ShortDescription string  `json:"short_description"`
	Image            string  `json:"image"`
	Validity         string  `json:"validity"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

type ProductDetailResponse struct {
	ProductResponse
	Description  string         `json:"description"`
	Features     []string       `json:"features"`
	Highlights   []string       `json:"highlights"`
	CategoryInfo d.CategoryInfo `json:"category_info"`
}

type CategoryResponse struct {
	d.CategoryInfo
	Count int `json:"count"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

type CartItemResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Count     int                `json:"count"`
	Total     float64            `json:"total"`
	Currency  d.Currency         `json:"currency"`
	Symbol    string             `json:"symbol"`
	PanelOpen bool               `json:"panel_open"`
	Locked    bool               `json:"locked"`
}

type CheckoutResponse struct {
	Status      d.CheckoutStatus `json:"status"`
	Contact     d.ContactInfo    `json:"contact"`
	FieldErrors d.FieldErrors    `json:"field_errors,omitempty"`
	Message     string           `json:"message,omitempty"`
	OrderID     string           `json:"order_id,omitempty"`
	PaymentID   string           `json:"payment_id,omitempty"`
}

type SessionResponse struct {
	ID       string           `json:"id"`
	Cart     CartResponse     `json:"cart"`
	Checkout CheckoutResponse `json:"checkout"`
}

type ContactSubmitResponse struct {
	Session SessionResponse       `json:"session"`
	Widget  *service.WidgetLaunch `json:"widget,omitempty"`
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CurrencyRequestDTO struct {
	Currency string `json:"currency"`
}

type ContactFieldRequestDTO struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// PaymentSuccessDTO is the payload of the widget success handler.
type PaymentSuccessDTO struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// PaymentFailureDTO is the payload of the widget payment.failed event.
type PaymentFailureDTO struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
		Source      string `json:"source"`
		Step        string `json:"step"`
		Reason      string `json:"reason"`
		Metadata    struct {
			OrderID   string `json:"order_id"`
			PaymentID string `json:"payment_id"`
		} `json:"metadata"`
	} `json:"error"`
}

func newProductResponse(p d.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Price:            p.Price,
		ShortDescription: p.ShortDescription,
		Image:            p.Image,
		Validity:         p.Validity,
	}
}

func newCartResponse(s *session.Session) CartResponse {
	items := make([]CartItemResponse, len(s.Cart.Items))
	for i, item := range s.Cart.Items {
		items[i] = CartItemResponse{
			ProductID: item.ID,
			Name:      item.Name,
			Category:  item.Category,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		}
	}
	return CartResponse{
		Items:     items,
		Count:     s.Cart.Count(),
		Total:     s.Cart.Total(),
		Currency:  s.Currency,
		Symbol:    s.Currency.Symbol(),
		PanelOpen: s.PanelOpen,
		Locked:    s.Checkout.Status == d.CheckoutStatusProcessing,
	}
}

func newSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:   s.ID,
		Cart: newCartResponse(s),
		Checkout: CheckoutResponse{
			Status:      s.Checkout.Status,
			Contact:     s.Checkout.Contact,
			FieldErrors: s.Checkout.FieldErrors,
			Message:     s.Checkout.Message,
			OrderID:     s.Checkout.ProviderOrderID,
			PaymentID:   s.Checkout.PaymentID,
		},
	}
}
