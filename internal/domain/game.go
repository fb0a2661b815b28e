package domain

// Game represents a rentable item in the catalog
type Game struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Image        string `json:"image" db:"image"`
	StockTotal   int64  `json:"stockTotal" db:"stock_total"`
	CategoryID   int64  `json:"categoryId" db:"category_id"`
	PricePerDay  int64  `json:"pricePerDay" db:"price_per_day"`
	CategoryName string `json:"categoryName,omitempty" db:"category_name"`
	RentalsCount int64  `json:"rentalsCount" db:"rentals_count"`
}

// GameInput holds the validated fields of a new game
type GameInput struct {
	Name        string
	Image       string
	StockTotal  int64
	CategoryID  int64
	PricePerDay int64
}
