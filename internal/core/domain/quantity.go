package domain

import "fmt"

// Quantity is an amount of goods in some unit ("kg", "pcs"). Zero is a valid
// stock level; order lines additionally require a positive value, which is
// checked in NewOrderItem.
type Quantity struct {
	value int64
	unit  string
}

func NewQuantity(value int64, unit string) (Quantity, error) {
	if value < 0 {
		return Quantity{}, fmt.Errorf("%w: quantity is negative", ErrValidation)
	}
	if unit == "" {
		return Quantity{}, fmt.Errorf("%w: quantity unit is empty", ErrValidation)
	}
	return Quantity{value: value, unit: unit}, nil
}

func (q Quantity) Value() int64 {
	return q.value
}

func (q Quantity) Unit() string {
	return q.unit
}

func (q Quantity) String() string {
	return fmt.Sprintf("%d %s", q.value, q.unit)
}
