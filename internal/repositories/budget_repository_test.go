package repositories

import (
	"context"
	"testing"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestBudgetRepository(t *testing.T) {
	suite.Run(t, new(BudgetRepositorySuite))
}

type BudgetRepositorySuite struct {
	suite.Suite
	db    *database.DB
	repo  BudgetRepositoryInterface
	ctx   context.Context
	owner *models.User
	other *models.User
}

func (s *BudgetRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)
	s.ctx = context.Background()
	s.owner = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	s.other = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
}

func (s *BudgetRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BudgetRepositorySuite) upsert(owner uuid.UUID, category string, month, year int, amount int64) *models.Budget {
	stored, err := s.repo.Upsert(s.ctx, &models.Budget{
		UserID:   owner,
		Category: category,
		Month:    month,
		Year:     year,
		Amount:   decimal.NewFromInt(amount),
	})
	s.Require().NoError(err)
	return stored
}

func (s *BudgetRepositorySuite) TestUpsert_Creates() {
	stored := s.upsert(s.owner.ID, "Food", 1, 2024, 400)

	s.NotEqual(uuid.Nil, stored.ID)
	s.Equal(s.owner.ID, stored.UserID)
	s.True(stored.Amount.Equal(decimal.NewFromInt(400)))
}

func (s *BudgetRepositorySuite) TestUpsert_UpdatesExistingKey() {
	first := s.upsert(s.owner.ID, "Food", 1, 2024, 400)
	second := s.upsert(s.owner.ID, "Food", 1, 2024, 550)

	s.Equal(first.ID, second.ID)
	s.True(second.Amount.Equal(decimal.NewFromInt(550)))

	budgets, err := s.repo.List(s.ctx, s.owner.ID, models.BudgetFilters{})
	s.Require().NoError(err)
	s.Require().Len(budgets, 1)
	s.True(budgets[0].Amount.Equal(decimal.NewFromInt(550)))
}

func (s *BudgetRepositorySuite) TestUpsert_SameKeyDifferentOwners() {
	mine := s.upsert(s.owner.ID, "Food", 1, 2024, 400)
	theirs := s.upsert(s.other.ID, "Food", 1, 2024, 100)

	s.NotEqual(mine.ID, theirs.ID)
}

func (s *BudgetRepositorySuite) TestUpsert_InvalidMonth() {
	_, err := s.repo.Upsert(s.ctx, &models.Budget{
		UserID:   s.owner.ID,
		Category: "Food",
		Month:    13,
		Year:     2024,
		Amount:   decimal.NewFromInt(1),
	})
	s.ErrorIs(err, models.ErrInvalidBudgetMonth)
}

func (s *BudgetRepositorySuite) TestList_Filters() {
	s.upsert(s.owner.ID, "Food", 1, 2024, 400)
	s.upsert(s.owner.ID, "Rent", 1, 2024, 1200)
	s.upsert(s.owner.ID, "Food", 2, 2024, 420)
	s.upsert(s.owner.ID, "Food", 1, 2023, 380)
	s.upsert(s.other.ID, "Food", 1, 2024, 10)

	month, year := 1, 2024

	all, err := s.repo.List(s.ctx, s.owner.ID, models.BudgetFilters{})
	s.Require().NoError(err)
	s.Len(all, 4)

	byMonth, err := s.repo.List(s.ctx, s.owner.ID, models.BudgetFilters{Month: &month})
	s.Require().NoError(err)
	s.Len(byMonth, 3)

	byYear, err := s.repo.List(s.ctx, s.owner.ID, models.BudgetFilters{Year: &year})
	s.Require().NoError(err)
	s.Len(byYear, 3)

	both, err := s.repo.List(s.ctx, s.owner.ID, models.BudgetFilters{Month: &month, Year: &year})
	s.Require().NoError(err)
	s.Require().Len(both, 2)
	s.Equal("Food", both[0].Category)
	s.Equal("Rent", both[1].Category)
}

func (s *BudgetRepositorySuite) TestDeleteForOwner() {
	stored := s.upsert(s.owner.ID, "Food", 1, 2024, 400)

	s.ErrorIs(s.repo.DeleteForOwner(s.ctx, stored.ID, s.other.ID), ErrBudgetNotFound)
	s.NoError(s.repo.DeleteForOwner(s.ctx, stored.ID, s.owner.ID))
	s.ErrorIs(s.repo.DeleteForOwner(s.ctx, stored.ID, s.owner.ID), ErrBudgetNotFound)
}
