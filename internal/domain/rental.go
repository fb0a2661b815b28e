package domain

// Rental is a game lent to a customer. A rental is open while ReturnDate is nil.
type Rental struct {
	ID            int64           `json:"id" db:"id"`
	CustomerID    int64           `json:"customerId" db:"customer_id"`
	GameID        int64           `json:"gameId" db:"game_id"`
	RentDate      Date            `json:"rentDate" db:"rent_date"`
	DaysRented    int64           `json:"daysRented" db:"days_rented"`
	ReturnDate    *Date           `json:"returnDate" db:"return_date"`
	OriginalPrice int64           `json:"originalPrice" db:"original_price"`
	DelayFee      *int64          `json:"delayFee" db:"delay_fee"`
	Customer      *RentalCustomer `json:"customer,omitempty" db:"-"`
	Game          *RentalGame     `json:"game,omitempty" db:"-"`
}

// RentalCustomer is the customer summary embedded in rental listings
type RentalCustomer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RentalGame is the game summary embedded in rental listings
type RentalGame struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// RentalInput holds the validated fields of a new rental
type RentalInput struct {
	CustomerID int64
	GameID     int64
	DaysRented int64
}

// RentalMetrics summarizes revenue over a set of rentals.
// Average is nil when no rental matched.
type RentalMetrics struct {
	Revenue int64  `json:"revenue" db:"revenue"`
	Rentals int64  `json:"rentals" db:"rentals"`
	Average *int64 `json:"average"`
}

// IsOpen reports whether the rental has not been returned yet
func (r *Rental) IsOpen() bool {
	return r.ReturnDate == nil
}

// DueDate is the last day the game can be kept without a delay fee
func (r *Rental) DueDate() Date {
	return r.RentDate.AddDays(int(r.DaysRented))
}

// DelayFeeOn computes the late fee owed when the game is returned on the given day.
// The daily price is re-derived from the frozen original price using integer
// division, so fractions of a unit are dropped. A nil result means no fee.
func (r *Rental) DelayFeeOn(returnDay Date) *int64 {
	if r.DaysRented <= 0 {
		return nil
	}

	lateDays := DaysBetween(r.RentDate, returnDay) - r.DaysRented
	if lateDays <= 0 {
		return nil
	}

	fee := lateDays * (r.OriginalPrice / r.DaysRented)
	return &fee
}
