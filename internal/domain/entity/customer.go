package entity

import "time"

// Customer representa un cliente del usuario (registro vivo, editable).
type Customer struct {
	ID        string
	OwnerID   string
	Name      string
	Phone     string
	Email     string
	Address   string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot copia los datos del cliente para embeberlos en una factura.
func (c Customer) Snapshot() CustomerSnapshot {
	category := c.Category
	if category == "" {
		category = DefaultCustomerCategory
	}
	return CustomerSnapshot{
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		Address:  c.Address,
		Category: category,
	}
}
