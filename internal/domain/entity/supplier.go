package entity

// Supplier proveedor de mercancía. Email único.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}
