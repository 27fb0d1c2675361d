package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/fourtytwo42/healthChains-sub004/internal/eventlog"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/service/mocks"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

// ServiceMockSuite covers the store failure paths: infrastructure errors
// surface as internal_error and never leak into the event log.
type ServiceMockSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *mocks.MockStore
	log       *eventlog.InMemoryLog
	service   *Service
}

func (s *ServiceMockSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.log = eventlog.NewInMemoryLog()
	s.service = NewService(
		s.mockStore,
		s.log,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(func() int64 { return baseNow }),
	)
}

func (s *ServiceMockSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceMockSuite(t *testing.T) {
	suite.Run(t, new(ServiceMockSuite))
}

func (s *ServiceMockSuite) assertNoEvents() {
	entries, err := s.log.Entries(context.Background())
	s.Require().NoError(err)
	s.Empty(entries, "a failed transition must not reach the log")
}

func (s *ServiceMockSuite) TestGrant_InsertFailure() {
	s.mockStore.EXPECT().
		InsertConsent(gomock.Any(), gomock.Any()).
		Return(models.ConsentID(0), errors.New("disk full"))

	_, err := s.service.Grant(context.Background(), addrA, addrB, "labs", models.NeverExpires, "treatment")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.assertNoEvents()
}

func (s *ServiceMockSuite) TestRevoke_ReadFailure() {
	s.mockStore.EXPECT().
		Consent(gomock.Any(), models.ConsentID(3)).
		Return(nil, errors.New("connection reset"))

	err := s.service.Revoke(context.Background(), 3, addrA)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.assertNoEvents()
}

func (s *ServiceMockSuite) TestRevoke_MarkFailure() {
	rec := &models.ConsentRecord{ID: 3, Subject: addrA, Consumer: addrB, Active: true}
	s.mockStore.EXPECT().Consent(gomock.Any(), models.ConsentID(3)).Return(rec, nil)
	s.mockStore.EXPECT().MarkRevoked(gomock.Any(), models.ConsentID(3)).Return(errors.New("io error"))

	err := s.service.Revoke(context.Background(), 3, addrA)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.assertNoEvents()
}

func (s *ServiceMockSuite) TestRequest_InsertFailure() {
	s.mockStore.EXPECT().
		InsertRequest(gomock.Any(), gomock.Any()).
		Return(models.RequestID(0), errors.New("disk full"))

	_, err := s.service.Request(context.Background(), addrB, addrA, "labs", "treatment", models.NeverExpires)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.assertNoEvents()
}

func (s *ServiceMockSuite) TestRespond_ResolveFailure() {
	req := &models.AccessRequest{
		ID:        5,
		Requester: addrB,
		Subject:   addrA,
		Status:    models.RequestPending,
	}
	s.mockStore.EXPECT().Request(gomock.Any(), models.RequestID(5)).Return(req, nil)
	s.mockStore.EXPECT().ResolveRequest(gomock.Any(), models.RequestID(5), models.RequestDenied).Return(errors.New("io error"))

	err := s.service.Respond(context.Background(), 5, addrA, false)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.assertNoEvents()
}

func (s *ServiceMockSuite) TestLookup_TranslatesNotFound() {
	s.mockStore.EXPECT().
		Consent(gomock.Any(), models.ConsentID(9)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "record not found"))

	_, err := s.service.Lookup(context.Background(), 9)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
