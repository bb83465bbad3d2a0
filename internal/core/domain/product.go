package domain

type Product struct {
	ID    string
	Name  string
	Price Money
	Stock Quantity
}
