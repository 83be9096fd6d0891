package entity

// Category agrupa productos del catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
}

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Active      bool
}
