package repository_test

import (
	"testing"

	. "todoweb/pkg/test"

	"todoweb/internal/adapter/database/sqlite/repository"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
	factory "todoweb/pkg/test/factory"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.repo = repository.NewUserRepository(InitTestDB())
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_Success() {
	user, err := s.repo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Username":     "alice",
		"PasswordHash": "$2a$10$hash",
	}))

	assert.NoError(s.T(), err)
	assert.True(s.T(), user.IsPersisted())
	assert.Equal(s.T(), "alice", user.Username)
	assert.Equal(s.T(), "$2a$10$hash", user.PasswordHash)
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_DuplicateUsername() {
	_, err := s.repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "alice"}))
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "alice"}))

	Expect(err).To(MatchError(domain.ErrUsernameTaken))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByUsername() {
	created, _ := s.repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "alice"}))

	found, err := s.repo.GetByUsername(ctx, "alice")

	Expect(err).To(BeNil())
	Expect(found.ID).To(Equal(created.ID))
	Expect(found.PasswordHash).To(Equal(created.PasswordHash))

	_, err = s.repo.GetByUsername(ctx, "Alice")
	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	_, err := s.repo.GetByID(ctx, 7)

	Expect(domain.IsNotFound(err)).To(BeTrue())
}

func (s *UserRepositoryTestSuite) TestRepository_DeleteUser_Success() {
	user, _ := s.repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "alice"}))

	err := s.repo.DeleteByID(ctx, user.ID)
	assert.NoError(s.T(), err)

	_, err = s.repo.GetByID(ctx, user.ID)
	Expect(err).To(MatchError(domain.ErrUserNotFound))

	err = s.repo.DeleteByID(ctx, user.ID)
	Expect(err).To(MatchError(domain.ErrUserNotFound))
}
