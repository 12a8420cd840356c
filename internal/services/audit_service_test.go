package services

import (
	"context"
	"errors"
	"testing"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// AuditServiceTestSuite is the test suite for AuditService
type AuditServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *repository_mocks.MockAuditLogRepositoryInterface
	service  AuditServiceInterface
	ctx      context.Context
}

func (s *AuditServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.service = NewAuditService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *AuditServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuditServiceSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (s *AuditServiceTestSuite) TestValidateActivityType() {
	for _, action := range []string{
		models.AuditActionLogin,
		models.AuditActionRegister,
		models.AuditActionTransactionCreate,
		models.AuditActionBudgetDelete,
		models.AuditActionReceiptUpload,
	} {
		s.NoError(ValidateActivityType(action), action)
	}

	s.Error(ValidateActivityType("invalid_action"))
	s.Error(ValidateActivityType(""))
}

func (s *AuditServiceTestSuite) TestCreateAuditLog_ValidLog() {
	userID := uuid.New()
	log := &models.AuditLog{
		UserID:   &userID,
		Action:   models.AuditActionLogin,
		Resource: "auth",
	}

	s.mockRepo.EXPECT().Create(s.ctx, log).Return(nil)

	s.NoError(s.service.CreateAuditLog(s.ctx, log))
}

func (s *AuditServiceTestSuite) TestCreateAuditLog_Nil() {
	s.ErrorIs(s.service.CreateAuditLog(s.ctx, nil), ErrInvalidAuditLog)
}

func (s *AuditServiceTestSuite) TestCreateAuditLog_InvalidAction() {
	err := s.service.CreateAuditLog(s.ctx, &models.AuditLog{Action: "deleted_everything"})
	s.Error(err)
	s.Contains(err.Error(), "invalid activity type")
}

func (s *AuditServiceTestSuite) TestCreateAuditLog_RepositoryError() {
	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).Return(errors.New("database error"))

	err := s.service.CreateAuditLog(s.ctx, &models.AuditLog{Action: models.AuditActionLogout, Resource: "auth"})
	s.Error(err)
	s.Contains(err.Error(), "failed to create audit log")
}

func (s *AuditServiceTestSuite) TestLogSecurityEvent_KnownUser() {
	userID := uuid.New()

	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, log *models.AuditLog) error {
		s.Equal(&userID, log.UserID)
		s.Equal(models.AuditActionLogin, log.Action)
		s.Equal("auth", log.Resource)
		s.Equal(userID.String(), log.ResourceID)
		s.Equal("10.0.0.1", log.IPAddress)
		s.Equal("curl/8.0", log.UserAgent)
		return nil
	})

	s.NoError(s.service.LogSecurityEvent(s.ctx, &userID, models.AuditActionLogin, "10.0.0.1", "curl/8.0", nil))
}

func (s *AuditServiceTestSuite) TestLogSecurityEvent_AnonymousActor() {
	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, log *models.AuditLog) error {
		s.Nil(log.UserID)
		s.Empty(log.ResourceID)
		s.Equal("user_not_found", log.Metadata["reason"])
		return nil
	})

	err := s.service.LogSecurityEvent(s.ctx, nil, models.AuditActionFailedLogin, "", "",
		models.JSONBMap{"reason": "user_not_found"})
	s.NoError(err)
}

func (s *AuditServiceTestSuite) TestLogResourceEvent() {
	userID := uuid.New()
	resourceID := uuid.New().String()

	s.mockRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, log *models.AuditLog) error {
		s.Equal(&userID, log.UserID)
		s.Equal("transaction", log.Resource)
		s.Equal(resourceID, log.ResourceID)
		return nil
	})

	s.NoError(s.service.LogResourceEvent(s.ctx, userID, models.AuditActionTransactionCreate, "transaction", resourceID, nil))
}

func (s *AuditServiceTestSuite) TestLogResourceEvent_NilUser() {
	err := s.service.LogResourceEvent(s.ctx, uuid.Nil, models.AuditActionBudgetUpsert, "budget", "", nil)
	s.ErrorIs(err, ErrInvalidUserID)
}

func (s *AuditServiceTestSuite) TestGetUserActivity_ClampsPaging() {
	userID := uuid.New()
	logs := []*models.AuditLog{{Action: models.AuditActionLogin}}

	s.mockRepo.EXPECT().GetByUserID(s.ctx, userID, 0, MaxActivityPageSize).Return(logs, int64(1), nil)

	result, total, err := s.service.GetUserActivity(s.ctx, userID, -5, 1000)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(result, 1)
}

func (s *AuditServiceTestSuite) TestGetUserActivity_DefaultLimit() {
	userID := uuid.New()

	s.mockRepo.EXPECT().GetByUserID(s.ctx, userID, 40, DefaultActivityPageSize).Return([]*models.AuditLog{}, int64(0), nil)

	_, _, err := s.service.GetUserActivity(s.ctx, userID, 40, 0)
	s.NoError(err)
}

func (s *AuditServiceTestSuite) TestGetUserActivity_NilUser() {
	_, _, err := s.service.GetUserActivity(s.ctx, uuid.Nil, 0, 10)
	s.ErrorIs(err, ErrInvalidUserID)
}

func (s *AuditServiceTestSuite) TestGetUserActivity_RepositoryError() {
	userID := uuid.New()
	s.mockRepo.EXPECT().GetByUserID(s.ctx, userID, 0, 10).Return(nil, int64(0), errors.New("boom"))

	_, _, err := s.service.GetUserActivity(s.ctx, userID, 0, 10)
	s.Error(err)
	s.Contains(err.Error(), "failed to get user activity")
}
