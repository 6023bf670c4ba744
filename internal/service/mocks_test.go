package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/mailer"
	"github.com/Rrens/shopchat/internal/reply"
)

// MockRequestRepository mocks the RequestRepository interface
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, record *domain.RequestRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRequestRepository) ListRecent(ctx context.Context, limit int) ([]domain.RequestRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestRecord), args.Error(1)
}

// MockConversationRepository mocks the ConversationRepository interface
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Append(ctx context.Context, entry *domain.ConversationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockConversationRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.ConversationEntry, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversationEntry), args.Error(1)
}

// MockProducer mocks the reply.Producer interface
type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Name() string {
	return "mock"
}

func (m *MockProducer) Produce(ctx context.Context, in reply.Input) (reply.Output, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(reply.Output), args.Error(1)
}

// MockSender mocks the mailer.Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSender) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
