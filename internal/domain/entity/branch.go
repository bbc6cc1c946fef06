package entity

import "time"

// Branch sucursal física (punto de venta e inventario) de una empresa.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
}
