package cart

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aquasur/aquasur-backend/pkg/money"
)

// AddonSelection is one selected equipment or accessory on a cart line,
// snapshotted by value at selection time.
type AddonSelection struct {
	AddonID   uuid.UUID       `json:"addon_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Required  bool            `json:"required"`
}

// ProductSnapshot carries the product fields the cart copies by value.
type ProductSnapshot struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     *string         `json:"image,omitempty"`
}

// Line is one cart entry. The LineID is assigned when the line is created and
// is the only key update/remove operations accept, so two lines for the same
// product with different addon selections can never be confused.
type Line struct {
	LineID   uuid.UUID        `json:"line_id"`
	Product  ProductSnapshot  `json:"product"`
	Quantity int              `json:"quantity"`
	Addons   []AddonSelection `json:"addons,omitempty"`
}

// Cart is an insertion-ordered list of lines. No two lines share the same
// (product id, addon multiset) pair.
type Cart struct {
	Lines []Line `json:"lines"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges the product and normalized addon selection into the cart.
// When a line with the same product and addon multiset already exists its
// quantity grows by one; otherwise a new line with quantity 1 is appended.
// The affected line is returned.
func (c *Cart) AddItem(product ProductSnapshot, addons []AddonSelection) Line {
	normalized := normalizeAddons(addons)
	key := lineKey(product.ProductID, normalized)

	for i := range c.Lines {
		if lineKey(c.Lines[i].Product.ProductID, c.Lines[i].Addons) == key {
			c.Lines[i].Quantity++
			return c.Lines[i]
		}
	}

	line := Line{
		LineID:   uuid.New(),
		Product:  product,
		Quantity: 1,
		Addons:   normalized,
	}
	c.Lines = append(c.Lines, line)
	return line
}

// UpdateQuantity sets the quantity of the identified line, clamped to >= 1.
// The second return reports whether the line exists.
func (c *Cart) UpdateQuantity(lineID uuid.UUID, quantity int) (Line, bool) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].LineID == lineID {
			c.Lines[i].Quantity = quantity
			return c.Lines[i], true
		}
	}
	return Line{}, false
}

// RemoveLine deletes the identified line, reporting whether it existed.
func (c *Cart) RemoveLine(lineID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].LineID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// LineTotal computes product price times quantity plus every addon subtotal.
func LineTotal(line Line) decimal.Decimal {
	total := money.Mul(line.Product.UnitPrice, line.Quantity)
	for _, addon := range line.Addons {
		total = total.Add(money.Mul(addon.UnitPrice, addon.Quantity))
	}
	return total
}

// Total recomputes the grand total from the current lines on every call;
// nothing is cached.
func (c *Cart) Total() decimal.Decimal {
	total := money.Zero
	for _, line := range c.Lines {
		total = total.Add(LineTotal(line))
	}
	return total
}

// normalizeAddons defaults quantities to 1, merges duplicate addon ids, and
// orders selections deterministically so line identity is stable.
func normalizeAddons(addons []AddonSelection) []AddonSelection {
	if len(addons) == 0 {
		return nil
	}

	merged := make(map[uuid.UUID]AddonSelection, len(addons))
	order := make([]uuid.UUID, 0, len(addons))
	for _, addon := range addons {
		qty := addon.Quantity
		if qty < 1 {
			qty = 1
		}
		if existing, ok := merged[addon.AddonID]; ok {
			existing.Quantity += qty
			merged[addon.AddonID] = existing
			continue
		}
		addon.Quantity = qty
		merged[addon.AddonID] = addon
		order = append(order, addon.AddonID)
	}

	result := make([]AddonSelection, 0, len(order))
	for _, id := range order {
		result = append(result, merged[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AddonID.String() < result[j].AddonID.String()
	})
	return result
}

// lineKey renders the (product id, addon multiset) identity of a line.
func lineKey(productID uuid.UUID, normalized []AddonSelection) string {
	var b strings.Builder
	b.WriteString(productID.String())
	for _, addon := range normalized {
		b.WriteByte('|')
		b.WriteString(addon.AddonID.String())
		b.WriteByte('x')
		b.WriteString(decimal.NewFromInt(int64(addon.Quantity)).String())
	}
	return b.String()
}
