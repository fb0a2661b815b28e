package domain

// Customer represents a registered client of the shop
type Customer struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Phone        string `json:"phone" db:"phone"`
	CPF          string `json:"cpf" db:"cpf"`
	Birthday     Date   `json:"birthday" db:"birthday"`
	RentalsCount int64  `json:"rentalsCount" db:"rentals_count"`
}

// CustomerInput holds the validated fields of a customer payload
type CustomerInput struct {
	Name     string
	Phone    string
	CPF      string
	Birthday Date
}
