package session

import (
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/google/uuid"
)

// Session is the whole application state of one visitor: cart, display
// currency, checkout progress and whether the cart panel is open.
type Session struct {
	ID        string            `json:"id"`
	Currency  d.Currency        `json:"currency"`
	Cart      d.Cart            `json:"cart"`
	Checkout  checkout.Checkout `json:"checkout"`
	PanelOpen bool              `json:"panel_open"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Currency:  d.CurrencyINR,
		Checkout:  checkout.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one we minted.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Touch stamps the session as modified.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}
