package service

import (
	"context"
	"time"

	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/repository"
	"github.com/talkincode/toughstore/pkg/common"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Well known role names seeded at startup.
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type RegisterUserInput struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

type UpdateUserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

// Register creates a user with a bcrypt password hash and the default
// Customer role. Username and email are both unique.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	uow := repository.NewUnitOfWork(s.db)

	taken, err := uow.Users.Exists(ctx, "username = ?", in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflictf("username '%s' is already taken", in.Username)
	}
	taken, err = uow.Users.Exists(ctx, "email = ?", in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflictf("email '%s' is already registered", in.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:        common.UUIDint64(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Mobile:    in.Mobile,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uow.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if err := tx.Users.Add(ctx, user); err != nil {
			return err
		}
		role, err := tx.Roles.First(ctx, "name = ?", RoleCustomer)
		if err != nil {
			return err
		}
		if role == nil {
			return nil
		}
		return tx.UserRoles.Add(ctx, &domain.UserRole{
			ID:     common.UUIDint64(),
			UserId: user.ID,
			RoleId: role.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := repository.NewUnitOfWork(s.db).Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFoundf("user with id %d not found", id)
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return repository.NewUnitOfWork(s.db).Users.First(ctx, "username = ?", username)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return repository.NewUnitOfWork(s.db).Users.GetAll(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	uow := repository.NewUnitOfWork(s.db)
	user, err := uow.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFoundf("user with id %d not found", id)
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Mobile = in.Mobile
	user.UpdatedAt = time.Now()
	if err := uow.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeactivateUser(ctx context.Context, id int64) error {
	uow := repository.NewUnitOfWork(s.db)
	user, err := uow.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return NotFoundf("user with id %d not found", id)
	}
	user.IsActive = false
	user.UpdatedAt = time.Now()
	return uow.Users.Update(ctx, user)
}

func (s *UserService) AssignRole(ctx context.Context, userID int64, roleName string) error {
	uow := repository.NewUnitOfWork(s.db)

	user, err := uow.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return NotFoundf("user with id %d not found", userID)
	}
	role, err := uow.Roles.First(ctx, "name = ?", roleName)
	if err != nil {
		return err
	}
	if role == nil {
		return NotFoundf("role '%s' not found", roleName)
	}

	assigned, err := uow.UserRoles.Exists(ctx, "user_id = ? AND role_id = ?", userID, role.ID)
	if err != nil {
		return err
	}
	if assigned {
		return nil
	}
	return uow.UserRoles.Add(ctx, &domain.UserRole{
		ID:     common.UUIDint64(),
		UserId: userID,
		RoleId: role.ID,
	})
}

// RolesOf returns the role names mapped to the user.
func (s *UserService) RolesOf(ctx context.Context, userID int64) ([]string, error) {
	uow := repository.NewUnitOfWork(s.db)
	mappings, err := uow.UserRoles.Find(ctx, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range mappings {
		role, err := uow.Roles.GetByID(ctx, m.RoleId)
		if err != nil {
			return nil, err
		}
		if role != nil {
			names = append(names, role.Name)
		}
	}
	return names, nil
}
