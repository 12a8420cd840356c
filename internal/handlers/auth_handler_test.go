package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"
	"finance-tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

type AuthHandlerSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	authService  *service_mocks.MockAuthServiceInterface
	tokenService *service_mocks.MockTokenServiceInterface
	auditService *service_mocks.MockAuditServiceInterface
	handler      *AuthHandler
	e            *echo.Echo
	userID       uuid.UUID
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.auditService = service_mocks.NewMockAuditServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.authService, s.tokenService, s.auditService)
	s.e = newTestEcho()
	s.userID = uuid.New()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) registerBody(email string) string {
	return fmt.Sprintf(`{"email":%q,"name":%q,"password":"SecurePass123!"}`, email, gofakeit.Name())
}

func (s *AuthHandlerSuite) TestRegister_Success() {
	email := gofakeit.Email()
	resp := &dto.AuthResponse{
		Token:     "signed.jwt.token",
		TokenType: "Bearer",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		User:      dto.UserProfileResponse{ID: s.userID.String(), Email: email},
	}
	s.authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req *dto.RegisterRequest, _, _ string) (*dto.AuthResponse, error) {
			s.Equal(email, req.Email)
			return resp, nil
		})

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/register", s.registerBody(email), nil)
	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusCreated, rec.Code)

	var body dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("signed.jwt.token", body.Token)
	s.Equal(email, body.User.Email)
}

func (s *AuthHandlerSuite) TestRegister_DuplicateEmail() {
	s.authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, services.ErrUserAlreadyExists)

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/register", s.registerBody(gofakeit.Email()), nil)
	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("USER_002", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestRegister_WeakPassword() {
	s.authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, services.ErrPasswordTooShort)

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/register", s.registerBody(gofakeit.Email()), nil)
	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("USER_003", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestRegister_InvalidBody() {
	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/register", "invalid json", nil)
	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_001", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestRegister_MissingFields() {
	c, _ := newRequestContext(s.e, http.MethodPost, "/api/auth/register", `{"email":"user@example.com"}`, nil)
	s.Error(s.handler.Register(c))
}

func (s *AuthHandlerSuite) TestRegister_ServiceFailure() {
	s.authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("connection reset"))

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/register", s.registerBody(gofakeit.Email()), nil)
	s.Require().NoError(s.handler.Register(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("SYSTEM_001", decodeErrorCode(rec))
	s.NotContains(rec.Body.String(), "connection reset")
}

func (s *AuthHandlerSuite) TestLogin() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001"},
		{"locked account", services.ErrAccountLocked, http.StatusForbidden, "AUTH_006"},
		{"unexpected failure", fmt.Errorf("boom"), http.StatusInternalServerError, "SYSTEM_001"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.authService.EXPECT().
				Login(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/login",
				`{"email":"user@example.com","password":"whatever"}`, nil)
			s.Require().NoError(s.handler.Login(c))
			s.Equal(tt.wantStatus, rec.Code)
			s.Equal(tt.wantCode, decodeErrorCode(rec))
		})
	}
}

func (s *AuthHandlerSuite) TestLogin_Success() {
	s.authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&dto.AuthResponse{Token: "abc", TokenType: "Bearer"}, nil)

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/login",
		`{"email":"user@example.com","password":"SecurePass123!"}`, nil)
	s.Require().NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"token":"abc"`)
}

func (s *AuthHandlerSuite) TestMe() {
	user := &models.User{ID: s.userID, Email: gofakeit.Email(), Name: gofakeit.Name(), PasswordHash: "secret-hash"}
	s.authService.EXPECT().Me(gomock.Any(), s.userID).Return(user, nil)

	c, rec := newRequestContext(s.e, http.MethodGet, "/api/auth/me", "", &s.userID)
	s.Require().NoError(s.handler.Me(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), user.Email)
	s.NotContains(rec.Body.String(), "secret-hash")
}

func (s *AuthHandlerSuite) TestMe_UserDeleted() {
	s.authService.EXPECT().Me(gomock.Any(), s.userID).Return(nil, services.ErrUserNotFound)

	c, rec := newRequestContext(s.e, http.MethodGet, "/api/auth/me", "", &s.userID)
	s.Require().NoError(s.handler.Me(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("USER_001", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestMe_NoUserInContext() {
	c, rec := newRequestContext(s.e, http.MethodGet, "/api/auth/me", "", nil)
	s.Require().NoError(s.handler.Me(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestLogout() {
	s.tokenService.EXPECT().ExtractTokenFromHeader("Bearer tok").Return("tok", nil)
	s.authService.EXPECT().Logout(gomock.Any(), "tok", gomock.Any(), gomock.Any()).Return(nil)

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/logout", "", &s.userID)
	c.Request().Header.Set("Authorization", "Bearer tok")
	s.Require().NoError(s.handler.Logout(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Logout successful")
}

func (s *AuthHandlerSuite) TestLogout_BadHeader() {
	s.tokenService.EXPECT().ExtractTokenFromHeader("Token tok").Return("", services.ErrInvalidAuthHeader)

	c, rec := newRequestContext(s.e, http.MethodPost, "/api/auth/logout", "", &s.userID)
	c.Request().Header.Set("Authorization", "Token tok")
	s.Require().NoError(s.handler.Logout(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", decodeErrorCode(rec))
}

func (s *AuthHandlerSuite) TestActivity_ClampsPaging() {
	logs := []*models.AuditLog{{ID: uuid.New(), Action: models.AuditActionLogin}}
	s.auditService.EXPECT().
		GetUserActivity(gomock.Any(), s.userID, 0, services.MaxActivityPageSize).
		Return(logs, int64(1), nil)

	c, rec := newRequestContext(s.e, http.MethodGet, "/api/auth/activity?offset=-5&limit=500", "", &s.userID)
	s.Require().NoError(s.handler.Activity(c))
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Items  []map[string]interface{} `json:"items"`
		Total  int64                    `json:"total"`
		Offset int                      `json:"offset"`
		Limit  int                      `json:"limit"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Len(body.Items, 1)
	s.Equal(int64(1), body.Total)
	s.Equal(0, body.Offset)
	s.Equal(services.MaxActivityPageSize, body.Limit)
}

func (s *AuthHandlerSuite) TestActivity_EmptyPage() {
	s.auditService.EXPECT().
		GetUserActivity(gomock.Any(), s.userID, 0, services.DefaultActivityPageSize).
		Return(nil, int64(0), nil)

	c, rec := newRequestContext(s.e, http.MethodGet, "/api/auth/activity", "", &s.userID)
	s.Require().NoError(s.handler.Activity(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"items":[]`)
}
