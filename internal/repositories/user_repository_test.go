package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
	ctx  context.Context
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
	s.ctx = context.Background()
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) newUser(email string) *models.User {
	return &models.User{
		Email:        email,
		Name:         gofakeit.Name(),
		PasswordHash: "hashed_password",
	}
}

func (s *UserRepositorySuite) TestUserRepository_Create() {
	user := s.newUser("test@example.com")

	err := s.repo.Create(s.ctx, user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
	s.NotZero(user.UpdatedAt)
}

func (s *UserRepositorySuite) TestUserRepository_Create_NormalizesEmail() {
	user := s.newUser("  Mixed.Case@Example.COM ")

	s.Require().NoError(s.repo.Create(s.ctx, user))
	s.Equal("mixed.case@example.com", user.Email)
}

func (s *UserRepositorySuite) TestUserRepository_Create_Duplicate() {
	s.Require().NoError(s.repo.Create(s.ctx, s.newUser("dup@example.com")))

	err := s.repo.Create(s.ctx, s.newUser("DUP@example.com"))
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *UserRepositorySuite) TestUserRepository_Create_Nil() {
	s.Error(s.repo.Create(s.ctx, nil))
}

func (s *UserRepositorySuite) TestUserRepository_GetByEmail() {
	user := s.newUser("test@example.com")
	s.Require().NoError(s.repo.Create(s.ctx, user))

	found, err := s.repo.GetByEmail(s.ctx, "TEST@example.com")
	s.NoError(err)
	s.Equal(user.ID, found.ID)
	s.Equal(user.Name, found.Name)
}

func (s *UserRepositorySuite) TestUserRepository_GetByEmail_NotFound() {
	found, err := s.repo.GetByEmail(s.ctx, "missing@example.com")
	s.Nil(found)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestUserRepository_GetByID() {
	user := s.newUser("test@example.com")
	s.Require().NoError(s.repo.Create(s.ctx, user))

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.Equal(user.Email, found.Email)

	_, err = s.repo.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestUserRepository_UpdateFailedLoginAttempts() {
	user := s.newUser("test@example.com")
	s.Require().NoError(s.repo.Create(s.ctx, user))

	for i := 0; i < models.MaxFailedLoginAttempts; i++ {
		user.IncrementFailedAttempts(models.MaxFailedLoginAttempts)
	}
	s.Require().NoError(s.repo.UpdateFailedLoginAttempts(s.ctx, user))

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(models.MaxFailedLoginAttempts, found.FailedLoginAttempts)
	s.True(found.IsLocked())
}

func (s *UserRepositorySuite) TestUserRepository_UpdateLastLogin() {
	user := s.newUser("test@example.com")
	user.FailedLoginAttempts = 2
	s.Require().NoError(s.repo.Create(s.ctx, user))

	at := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.repo.UpdateLastLogin(s.ctx, user.ID, at))

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.LastLoginAt)
	s.True(found.LastLoginAt.Equal(at))
	s.Zero(found.FailedLoginAttempts)
}

func (s *UserRepositorySuite) TestUserRepository_UpdateLastLogin_NotFound() {
	err := s.repo.UpdateLastLogin(s.ctx, uuid.New(), time.Now())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestIsDuplicateKeyError() {
	s.False(isDuplicateKeyError(nil))
	s.True(isDuplicateKeyError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)")))
	s.True(isDuplicateKeyError(errors.New("UNIQUE constraint failed: users.email")))
	s.False(isDuplicateKeyError(errors.New("connection refused")))
}
