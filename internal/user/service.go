package user

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields        = apperr.Validation("missing required fields")
	ErrInvalidRole          = apperr.Validation("invalid role specified")
	ErrMissingCustomerInfo  = apperr.Validation("missing customer details")
	ErrMissingSellerDetails = apperr.Validation("missing seller details")
	ErrPasswordTooLong      = apperr.Validation("password must be at most 72 bytes")
)

// bcrypt rejects longer inputs.
const maxPasswordBytes = 72

// ServiceInterface is what other packages need from the identity store.
type ServiceInterface interface {
	CustomerForUser(ctx context.Context, userID int) (Customer, error)
	SellerForUser(ctx context.Context, userID int) (Seller, error)
}

// RegisterInput carries a registration request. Only the profile matching
// Role is read.
type RegisterInput struct {
	Username string
	Password string
	Role     auth.Role

	Name    string
	Email   string
	Address string
	Phone   string

	BusinessName    string
	BusinessEmail   string
	BusinessAddress string
}

type Service struct {
	repo Repository
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// dummyHash is compared against when the username is unknown so a failed
// login costs one bcrypt comparison either way.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// Register creates the identity and its profile together.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in = in.trimmed()
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return User{}, ErrMissingFields
	}
	if len(in.Password) > maxPasswordBytes {
		return User{}, ErrPasswordTooLong
	}

	switch in.Role {
	case auth.RoleCustomer:
		if in.Name == "" || in.Email == "" || in.Address == "" || in.Phone == "" {
			return User{}, ErrMissingCustomerInfo
		}
	case auth.RoleSeller:
		if in.BusinessName == "" || in.BusinessEmail == "" || in.BusinessAddress == "" {
			return User{}, ErrMissingSellerDetails
		}
	default:
		return User{}, ErrInvalidRole
	}

	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return User{}, ErrUsernameExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}
	u := User{Username: in.Username, PasswordHash: string(hashed), Role: in.Role}

	if in.Role == auth.RoleCustomer {
		created, _, err := s.repo.CreateCustomer(ctx, u, Customer{
			Name:    in.Name,
			Email:   in.Email,
			Address: in.Address,
			Phone:   in.Phone,
		})
		return created, err
	}
	created, _, err := s.repo.CreateSeller(ctx, u, Seller{
		BusinessName:    in.BusinessName,
		BusinessEmail:   in.BusinessEmail,
		BusinessAddress: in.BusinessAddress,
		Status:          SellerPending,
	})
	return created, err
}

// CreateAdmin adds an admin identity. Admins have no profile and cannot
// self-register.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrMissingFields
	}
	if len(password) > maxPasswordBytes {
		return User{}, ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}
	return s.repo.Create(ctx, User{Username: username, PasswordHash: string(hashed), Role: auth.RoleAdmin})
}

// Authenticate returns ErrInvalidCredentials for both an unknown username and
// a wrong password. The username is trimmed the same way Register stores it.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return User{}, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) CustomerForUser(ctx context.Context, userID int) (Customer, error) {
	if userID <= 0 {
		return Customer{}, ErrCustomerNotFound
	}
	return s.repo.GetCustomerByUserID(ctx, userID)
}

func (s *Service) SellerForUser(ctx context.Context, userID int) (Seller, error) {
	if userID <= 0 {
		return Seller{}, ErrSellerNotFound
	}
	return s.repo.GetSellerByUserID(ctx, userID)
}

func (in RegisterInput) trimmed() RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Role = auth.Role(strings.TrimSpace(string(in.Role)))
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.BusinessEmail = strings.ToLower(strings.TrimSpace(in.BusinessEmail))
	in.BusinessAddress = strings.TrimSpace(in.BusinessAddress)
	return in
}
