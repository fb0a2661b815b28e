package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"boardcamp/internal/domain"
	"boardcamp/internal/query"
	"boardcamp/internal/repository"
)

// memDB is an in-memory stand-in for the database. Transactions are
// serialized and roll back by restoring a snapshot.
type memDB struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextID     int64
	categories map[int64]domain.Category
	games      map[int64]domain.Game
	customers  map[int64]domain.Customer
	rentals    map[int64]domain.Rental
}

func newMemDB() *memDB {
	return &memDB{
		categories: make(map[int64]domain.Category),
		games:      make(map[int64]domain.Game),
		customers:  make(map[int64]domain.Customer),
		rentals:    make(map[int64]domain.Rental),
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

type memSnapshot struct {
	nextID     int64
	categories map[int64]domain.Category
	games      map[int64]domain.Game
	customers  map[int64]domain.Customer
	rentals    map[int64]domain.Rental
}

func copyMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	return memSnapshot{
		nextID:     db.nextID,
		categories: copyMap(db.categories),
		games:      copyMap(db.games),
		customers:  copyMap(db.customers),
		rentals:    copyMap(db.rentals),
	}
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextID = s.nextID
	db.categories = s.categories
	db.games = s.games
	db.customers = s.customers
	db.rentals = s.rentals
}

type memStore struct {
	db   *memDB
	inTx bool
}

func newMemStore() *memStore {
	return &memStore{db: newMemDB()}
}

func (s *memStore) Categories() repository.CategoryRepository { return memCategories{s.db} }
func (s *memStore) Games() repository.GameRepository          { return memGames{s.db} }
func (s *memStore) Customers() repository.CustomerRepository  { return memCustomers{s.db} }
func (s *memStore) Rentals() repository.RentalRepository      { return memRentals{s.db} }

func (s *memStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.db.txMu.Lock()
	defer s.db.txMu.Unlock()

	snap := s.db.snapshot()
	if err := fn(&memStore{db: s.db, inTx: true}); err != nil {
		s.db.restore(snap)
		return err
	}
	return nil
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type memCategories struct{ db *memDB }

func (r memCategories) Create(ctx context.Context, name string) (*domain.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.categories {
		if c.Name == name {
			return nil, domain.NewConflictError(repository.ErrCategoryAlreadyExists.Error(), repository.ErrCategoryAlreadyExists)
		}
	}
	c := domain.Category{ID: r.db.id(), Name: name}
	r.db.categories[c.ID] = c
	return &c, nil
}

func (r memCategories) List(ctx context.Context, q query.Query) ([]*domain.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*domain.Category{}
	for _, id := range sortedIDs(r.db.categories) {
		c := r.db.categories[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r memCategories) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return &c, nil
}

type memGames struct{ db *memDB }

func (r memGames) Create(ctx context.Context, in domain.GameInput) (*domain.Game, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, g := range r.db.games {
		if g.Name == in.Name {
			return nil, domain.NewConflictError(repository.ErrGameAlreadyExists.Error(), repository.ErrGameAlreadyExists)
		}
	}
	g := domain.Game{
		ID:          r.db.id(),
		Name:        in.Name,
		Image:       in.Image,
		StockTotal:  in.StockTotal,
		CategoryID:  in.CategoryID,
		PricePerDay: in.PricePerDay,
	}
	r.db.games[g.ID] = g
	return &g, nil
}

func (r memGames) List(ctx context.Context, q query.Query) ([]*domain.Game, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*domain.Game{}
	for _, id := range sortedIDs(r.db.games) {
		g := r.db.games[id]
		out = append(out, &g)
	}
	return out, nil
}

func (r memGames) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	g, ok := r.db.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return &g, nil
}

func (r memGames) FindForUpdate(ctx context.Context, id int64) (*domain.Game, error) {
	return r.FindByID(ctx, id)
}

type memCustomers struct{ db *memDB }

func (r memCustomers) cpfTaken(cpf string, except int64) bool {
	for _, c := range r.db.customers {
		if c.CPF == cpf && c.ID != except {
			return true
		}
	}
	return false
}

func (r memCustomers) Create(ctx context.Context, in domain.CustomerInput) (*domain.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.cpfTaken(in.CPF, 0) {
		return nil, domain.NewConflictError(repository.ErrCustomerCPFTaken.Error(), repository.ErrCustomerCPFTaken)
	}
	c := domain.Customer{ID: r.db.id(), Name: in.Name, Phone: in.Phone, CPF: in.CPF, Birthday: in.Birthday}
	r.db.customers[c.ID] = c
	return &c, nil
}

func (r memCustomers) Update(ctx context.Context, id int64, in domain.CustomerInput) (*domain.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.customers[id]; !ok {
		return nil, repository.ErrCustomerNotFound
	}
	if r.cpfTaken(in.CPF, id) {
		return nil, domain.NewConflictError(repository.ErrCustomerCPFTaken.Error(), repository.ErrCustomerCPFTaken)
	}
	c := domain.Customer{ID: id, Name: in.Name, Phone: in.Phone, CPF: in.CPF, Birthday: in.Birthday}
	r.db.customers[id] = c
	return &c, nil
}

func (r memCustomers) List(ctx context.Context, q query.Query) ([]*domain.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*domain.Customer{}
	for _, id := range sortedIDs(r.db.customers) {
		c := r.db.customers[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r memCustomers) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	for _, rental := range r.db.rentals {
		if rental.CustomerID == id {
			c.RentalsCount++
		}
	}
	return &c, nil
}

type memRentals struct{ db *memDB }

func (r memRentals) Create(ctx context.Context, rental domain.Rental) (*domain.Rental, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rental.ID = r.db.id()
	r.db.rentals[rental.ID] = rental
	return &rental, nil
}

func (r memRentals) List(ctx context.Context, q query.Query) ([]*domain.Rental, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*domain.Rental{}
	for _, id := range sortedIDs(r.db.rentals) {
		rental := r.db.rentals[id]
		out = append(out, &rental)
	}
	return out, nil
}

func (r memRentals) FindForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rental, ok := r.db.rentals[id]
	if !ok {
		return nil, repository.ErrRentalNotFound
	}
	return &rental, nil
}

func (r memRentals) CountOpenByGame(ctx context.Context, gameID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, rental := range r.db.rentals {
		if rental.GameID == gameID && rental.IsOpen() {
			n++
		}
	}
	return n, nil
}

func (r memRentals) Close(ctx context.Context, id int64, returnDate domain.Date, delayFee *int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rental, ok := r.db.rentals[id]
	if !ok || !rental.IsOpen() {
		return repository.ErrRentalNotOpen
	}
	rental.ReturnDate = &returnDate
	rental.DelayFee = delayFee
	r.db.rentals[id] = rental
	return nil
}

func (r memRentals) DeleteOpen(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rental, ok := r.db.rentals[id]
	if !ok || !rental.IsOpen() {
		return repository.ErrRentalNotOpen
	}
	delete(r.db.rentals, id)
	return nil
}

func (r memRentals) Metrics(ctx context.Context, where query.Predicate) (*domain.RentalMetrics, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m := &domain.RentalMetrics{}
	for _, rental := range r.db.rentals {
		m.Rentals++
		m.Revenue += rental.OriginalPrice
		if rental.DelayFee != nil {
			m.Revenue += *rental.DelayFee
		}
	}
	return m, nil
}

// fixedClock is a settable Clock
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(day string) *fixedClock {
	c := &fixedClock{}
	c.Set(day)
	return c
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to the afternoon of day
func (c *fixedClock) Set(day string) {
	t, err := time.Parse(domain.DateLayout, day)
	if err != nil {
		panic(err)
	}
	c.mu.Lock()
	c.now = t.Add(15 * time.Hour)
	c.mu.Unlock()
}

// setPrice changes a game's daily price behind the service's back
func (s *memStore) setPrice(gameID, price int64) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	g := s.db.games[gameID]
	g.PricePerDay = price
	s.db.games[gameID] = g
}
