package handlers

import (
	"net/http"
	"testing"

	"finance-tracker/internal/models"
	"finance-tracker/internal/services"
	"finance-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetHandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	budgetService *service_mocks.MockBudgetServiceInterface
	handler       *BudgetHandler
	e             *echo.Echo
	userID        uuid.UUID
}

func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}

func (s *BudgetHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.budgetService = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
	s.handler = NewBudgetHandler(s.budgetService)
	s.e = newTestEcho()
	s.userID = uuid.New()
}

func (s *BudgetHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BudgetHandlerTestSuite) TestUpsertBudget() {
	budget := &models.Budget{
		ID:       uuid.New(),
		UserID:   s.userID,
		Category: "Food",
		Month:    3,
		Year:     2024,
		Amount:   decimal.NewFromInt(300),
	}
	s.budgetService.EXPECT().Upsert(gomock.Any(), s.userID, gomock.Any()).Return(budget, nil)

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/budgets",
		`{"month":3,"year":2024,"category":"Food","amount":300}`, &s.userID)
	s.Require().NoError(s.handler.UpsertBudget(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"amount":300`)
}

func (s *BudgetHandlerTestSuite) TestUpsertBudget_Validation() {
	tests := []struct {
		name string
		body string
	}{
		{"month out of range", `{"month":13,"year":2024,"category":"Food","amount":300}`},
		{"missing category", `{"month":3,"year":2024,"amount":300}`},
		{"three decimals", `{"month":3,"year":2024,"category":"Food","amount":1.005}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			c, _ := newRequestContext(s.e, http.MethodPost, "/api/budgets", tt.body, &s.userID)
			s.Error(s.handler.UpsertBudget(c))
		})
	}
}

func (s *BudgetHandlerTestSuite) TestListBudgets_WithPeriod() {
	s.budgetService.EXPECT().
		List(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, _ uuid.UUID, month, year *int) ([]models.Budget, error) {
			s.Require().NotNil(month)
			s.Require().NotNil(year)
			s.Equal(3, *month)
			s.Equal(2024, *year)
			return []models.Budget{}, nil
		})

	c, rec := newRequestContext(s.e, http.MethodGet, "/api/budgets?month=3&year=2024", "", &s.userID)
	s.Require().NoError(s.handler.ListBudgets(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestListBudgets_BadPeriod() {
	tests := []struct {
		query    string
		wantCode string
	}{
		{"month=abc", "VALIDATION_003"},
		{"month=13", "VALIDATION_004"},
		{"month=1&year=0", "VALIDATION_004"},
	}

	for _, tt := range tests {
		s.Run(tt.query, func() {
			c, rec := newRequestContext(s.e, http.MethodGet, "/api/budgets?"+tt.query, "", &s.userID)
			s.Require().NoError(s.handler.ListBudgets(c))
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(tt.wantCode, decodeErrorCode(rec))
		})
	}
}

func (s *BudgetHandlerTestSuite) TestDeleteBudget() {
	id := uuid.New()
	s.budgetService.EXPECT().Delete(gomock.Any(), s.userID, id).Return(nil)

	c, rec := newRequestContext(s.e, http.MethodDelete, "/api/budgets/"+id.String(), "", &s.userID)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	s.Require().NoError(s.handler.DeleteBudget(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Budget deleted")
}

func (s *BudgetHandlerTestSuite) TestDeleteBudget_NotOwned() {
	id := uuid.New()
	s.budgetService.EXPECT().Delete(gomock.Any(), s.userID, id).Return(services.ErrBudgetNotFound)

	c, rec := newRequestContext(s.e, http.MethodDelete, "/api/budgets/"+id.String(), "", &s.userID)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	s.Require().NoError(s.handler.DeleteBudget(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("BUDGET_001", decodeErrorCode(rec))
}
