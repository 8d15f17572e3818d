package domain

// CartItem is one cart line: a snapshot of the product taken when it was first
// added, plus a quantity that is always at least 1.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart keeps lines in insertion order with at most one line per product id.
// Totals are derived on every read and never stored.
type Cart struct {
	Items []CartItem `json:"items"`
}

// AddToCart increments the quantity of an existing line or appends a new line
// with quantity 1.
func (c *Cart) AddToCart(p Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// RemoveFromCart deletes the line for id; absent ids are ignored.
func (c *Cart) RemoveFromCart(id int64) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// UpdateQuantity replaces the quantity of the line for id. Quantities below 1
// are ignored; lines are only removed through RemoveFromCart.
func (c *Cart) UpdateQuantity(id int64, quantity int) {
	if quantity < 1 {
		return
	}
	if i := c.indexOf(id); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalMinor sums the cart in minor units of currency using integer arithmetic.
func (c *Cart) TotalMinor(currency Currency) (int64, error) {
	var total int64
	for _, item := range c.Items {
		unit, err := ToMinorUnits(item.Price, currency)
		if err != nil {
			return 0, err
		}
		total += unit * int64(item.Quantity)
	}
	return total, nil
}

// Snapshot returns a copy of the lines that is safe to keep after the cart changes.
func (c *Cart) Snapshot() []CartItem {
	if len(c.Items) == 0 {
		return nil
	}
	out := make([]CartItem, len(c.Items))
	copy(out, c.Items)
	return out
}

func (c *Cart) indexOf(id int64) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}
