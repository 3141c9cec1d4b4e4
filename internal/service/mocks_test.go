package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/mail"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockGroupRepo struct{ mock.Mock }

func (m *mockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	args := m.Called(ctx, id)
	group, _ := args.Get(0).(*domain.Group)
	return group, args.Error(1)
}

func (m *mockGroupRepo) List(ctx context.Context) ([]*domain.Group, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]*domain.Group)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) Update(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *mockGroupRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGroupRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) RemovePlayer(ctx context.Context, groupID, userID int64) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

type mockGroupRequestRepo struct{ mock.Mock }

func (m *mockGroupRequestRepo) Create(ctx context.Context, groupID, userID int64) (*domain.GroupRequest, error) {
	args := m.Called(ctx, groupID, userID)
	req, _ := args.Get(0).(*domain.GroupRequest)
	return req, args.Error(1)
}

func (m *mockGroupRequestRepo) GetByGroupAndUser(ctx context.Context, groupID, userID int64) (*domain.GroupRequest, error) {
	args := m.Called(ctx, groupID, userID)
	req, _ := args.Get(0).(*domain.GroupRequest)
	return req, args.Error(1)
}

func (m *mockGroupRequestRepo) GetByIDAndGroup(ctx context.Context, requestID, groupID int64) (*domain.GroupRequest, error) {
	args := m.Called(ctx, requestID, groupID)
	req, _ := args.Get(0).(*domain.GroupRequest)
	return req, args.Error(1)
}

func (m *mockGroupRequestRepo) ListPendingByMaster(ctx context.Context, masterID int64) ([]*domain.GroupRequestListItem, error) {
	args := m.Called(ctx, masterID)
	items, _ := args.Get(0).([]*domain.GroupRequestListItem)
	return items, args.Error(1)
}

func (m *mockGroupRequestRepo) Accept(ctx context.Context, requestID int64) (*domain.GroupRequest, error) {
	args := m.Called(ctx, requestID)
	req, _ := args.Get(0).(*domain.GroupRequest)
	return req, args.Error(1)
}

func (m *mockGroupRequestRepo) Delete(ctx context.Context, requestID int64) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

type mockLinkTokenRepo struct{ mock.Mock }

func (m *mockLinkTokenRepo) Create(ctx context.Context, userID int64, token string) (*domain.LinkToken, error) {
	args := m.Called(ctx, userID, token)
	t, _ := args.Get(0).(*domain.LinkToken)
	return t, args.Error(1)
}

func (m *mockLinkTokenRepo) GetByToken(ctx context.Context, token string) (*domain.LinkToken, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*domain.LinkToken)
	return t, args.Error(1)
}

func (m *mockLinkTokenRepo) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockDenylist struct{ mock.Mock }

func (m *mockDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	args := m.Called(ctx, jti, expiresAt)
	return args.Error(0)
}

func (m *mockDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
