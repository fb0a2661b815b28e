package validation

import (
	"strings"

	"boardcamp/internal/domain"
)

type categoryPayload struct {
	Name string `json:"name" validate:"required"`
}

type gamePayload struct {
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image" validate:"required,url"`
	StockTotal  int64  `json:"stockTotal" validate:"gte=1"`
	CategoryID  int64  `json:"categoryId" validate:"gte=1"`
	PricePerDay int64  `json:"pricePerDay" validate:"gte=1"`
}

type customerPayload struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	CPF      string `json:"cpf" validate:"required,cpf"`
	Birthday string `json:"birthday" validate:"required,isodate"`
}

type rentalPayload struct {
	CustomerID int64 `json:"customerId" validate:"gte=1"`
	GameID     int64 `json:"gameId" validate:"gte=1"`
	DaysRented int64 `json:"daysRented" validate:"gte=1"`
}

// ValidateName returns the trimmed, non-empty "name" field of record
func ValidateName(record map[string]any) (string, error) {
	c := &collector{}
	p := categoryPayload{Name: strings.TrimSpace(c.str(record, "name"))}
	if err := c.check(p); err != nil {
		return "", err
	}
	return p.Name, nil
}

// ValidateCategoryPayload validates a new category record
func ValidateCategoryPayload(record map[string]any) (string, error) {
	return ValidateName(record)
}

// ValidateGamePayload validates a new game record
func ValidateGamePayload(record map[string]any) (domain.GameInput, error) {
	c := &collector{}
	p := gamePayload{
		Name:        strings.TrimSpace(c.str(record, "name")),
		Image:       strings.TrimSpace(c.str(record, "image")),
		StockTotal:  c.integer(record, "stockTotal"),
		CategoryID:  c.integer(record, "categoryId"),
		PricePerDay: c.integer(record, "pricePerDay"),
	}
	if err := c.check(p); err != nil {
		return domain.GameInput{}, err
	}

	return domain.GameInput{
		Name:        p.Name,
		Image:       p.Image,
		StockTotal:  p.StockTotal,
		CategoryID:  p.CategoryID,
		PricePerDay: p.PricePerDay,
	}, nil
}

// ValidateCustomerPayload validates a customer record for creation or update
func ValidateCustomerPayload(record map[string]any) (domain.CustomerInput, error) {
	c := &collector{}
	p := customerPayload{
		Name:     strings.TrimSpace(c.str(record, "name")),
		Phone:    c.str(record, "phone"),
		CPF:      c.str(record, "cpf"),
		Birthday: c.str(record, "birthday"),
	}
	if err := c.check(p); err != nil {
		return domain.CustomerInput{}, err
	}

	birthday, err := domain.ParseDate(p.Birthday)
	if err != nil {
		return domain.CustomerInput{}, &Error{Fields: []FieldError{{Field: "birthday", Message: "Must be a valid YYYY-MM-DD date"}}}
	}

	return domain.CustomerInput{
		Name:     p.Name,
		Phone:    p.Phone,
		CPF:      p.CPF,
		Birthday: birthday,
	}, nil
}

// ValidateRentalPayload validates a new rental record
func ValidateRentalPayload(record map[string]any) (domain.RentalInput, error) {
	c := &collector{}
	p := rentalPayload{
		CustomerID: c.integer(record, "customerId"),
		GameID:     c.integer(record, "gameId"),
		DaysRented: c.integer(record, "daysRented"),
	}
	if err := c.check(p); err != nil {
		return domain.RentalInput{}, err
	}

	return domain.RentalInput{
		CustomerID: p.CustomerID,
		GameID:     p.GameID,
		DaysRented: p.DaysRented,
	}, nil
}
