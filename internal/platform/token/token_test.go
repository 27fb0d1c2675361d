package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

const testAddr = models.Address("0x00112233445566778899aabbccddeeff00112233")

type TokenSuite struct {
	suite.Suite
	service *Service
}

func (s *TokenSuite) SetupTest() {
	s.service = NewService("test-signing-key", "healthchains-ledger", time.Minute)
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(TokenSuite))
}

func (s *TokenSuite) TestIssueAndVerify() {
	tok, err := s.service.Issue(testAddr)
	s.Require().NoError(err)

	addr, err := s.service.Verify(tok)
	s.Require().NoError(err)
	s.Equal(testAddr, addr)
}

func (s *TokenSuite) TestIssue_CanonicalizesAddress() {
	tok, err := s.service.Issue(models.Address("0x00112233445566778899AABBCCDDEEFF00112233"))
	s.Require().NoError(err)

	addr, err := s.service.Verify(tok)
	s.Require().NoError(err)
	s.Equal(testAddr, addr)
}

func (s *TokenSuite) TestIssue_RejectsZeroAddress() {
	_, err := s.service.Issue(models.ZeroAddress)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidAddress))
}

func (s *TokenSuite) TestVerify_RejectsWrongKey() {
	other := NewService("other-key", "healthchains-ledger", time.Minute)
	tok, err := other.Issue(testAddr)
	s.Require().NoError(err)

	_, err = s.service.Verify(tok)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *TokenSuite) TestVerify_RejectsWrongIssuer() {
	other := NewService("test-signing-key", "someone-else", time.Minute)
	tok, err := other.Issue(testAddr)
	s.Require().NoError(err)

	_, err = s.service.Verify(tok)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *TokenSuite) TestVerify_RejectsExpired() {
	expired := NewService("test-signing-key", "healthchains-ledger", -time.Minute)
	tok, err := expired.Issue(testAddr)
	s.Require().NoError(err)

	_, err = s.service.Verify(tok)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *TokenSuite) TestVerify_RejectsGarbage() {
	_, err := s.service.Verify("not-a-token")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
