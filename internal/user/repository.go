package user

import (
	"context"
	"sync"
	"time"

	"github.com/wichananm65/marketplace-backend/internal/apperr"
)

var (
	ErrNotFound            = apperr.NotFound("user not found")
	ErrCustomerNotFound    = apperr.NotFound("customer not found")
	ErrSellerNotFound      = apperr.NotFound("seller not found")
	ErrInvalidCredentials  = apperr.Authentication("bad username or password")
	ErrUsernameExists      = apperr.Duplicate("username already exists")
	ErrEmailExists         = apperr.Duplicate("email already exists")
	ErrBusinessEmailExists = apperr.Duplicate("business email already exists")
)

// Repository persists identities and their profiles. The Create* methods
// write the identity and the profile as one unit.
type Repository interface {
	GetByID(ctx context.Context, id int) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	CreateCustomer(ctx context.Context, u User, c Customer) (User, Customer, error)
	CreateSeller(ctx context.Context, u User, s Seller) (User, Seller, error)
	GetCustomerByUserID(ctx context.Context, userID int) (Customer, error)
	GetSellerByUserID(ctx context.Context, userID int) (Seller, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	users     []User
	customers []Customer
	sellers   []Seller
	nextID    int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{users: make([]User, 0, len(seed)), nextID: 1}
	for _, u := range seed {
		r.users = append(r.users, u)
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

// SeedCustomer and SeedSeller attach profiles directly; they exist for tests.
func (r *InMemoryRepository) SeedCustomer(c Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, c)
}

func (r *InMemoryRepository) SeedSeller(s Seller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sellers = append(r.sellers, s)
}

// Counts reports how many rows each table holds.
func (r *InMemoryRepository) Counts() (users, customers, sellers int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), len(r.customers), len(r.sellers)
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUsername(_ context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUsername(u.Username); err != nil {
		return User{}, err
	}
	return r.insertUser(u), nil
}

func (r *InMemoryRepository) CreateCustomer(_ context.Context, u User, c Customer) (User, Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUsername(u.Username); err != nil {
		return User{}, Customer{}, err
	}
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			return User{}, Customer{}, ErrEmailExists
		}
	}
	u = r.insertUser(u)
	c.ID = len(r.customers) + 1
	c.UserID = u.ID
	r.customers = append(r.customers, c)
	return u, c, nil
}

func (r *InMemoryRepository) CreateSeller(_ context.Context, u User, s Seller) (User, Seller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUsername(u.Username); err != nil {
		return User{}, Seller{}, err
	}
	for _, existing := range r.sellers {
		if existing.BusinessEmail == s.BusinessEmail {
			return User{}, Seller{}, ErrBusinessEmailExists
		}
	}
	u = r.insertUser(u)
	s.ID = len(r.sellers) + 1
	s.UserID = u.ID
	if s.Status == "" {
		s.Status = SellerPending
	}
	r.sellers = append(r.sellers, s)
	return u, s, nil
}

func (r *InMemoryRepository) GetCustomerByUserID(_ context.Context, userID int) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return Customer{}, ErrCustomerNotFound
}

func (r *InMemoryRepository) GetSellerByUserID(_ context.Context, userID int) (Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sellers {
		if s.UserID == userID {
			return s, nil
		}
	}
	return Seller{}, ErrSellerNotFound
}

// caller holds r.mu
func (r *InMemoryRepository) checkUsername(username string) error {
	for _, existing := range r.users {
		if existing.Username == username {
			return ErrUsernameExists
		}
	}
	return nil
}

// caller holds r.mu
func (r *InMemoryRepository) insertUser(u User) User {
	u.ID = r.nextID
	r.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users = append(r.users, u)
	return u
}
