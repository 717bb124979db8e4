package command

import (
	"context"
	"fmt"
	"sync"

	"cortex/internal/core/domain"
	"cortex/internal/core/port"

	"github.com/stretchr/testify/mock"
)

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(context.Context, *domain.Message, []string) error { return nil }

func (m *MockResponder) GetCommand() string { return m.command }

func (m *MockResponder) GetDescription() string { return "mock " + m.command }

type MockTextGenerator struct {
	response string
	err      error
	prompts  []domain.Prompt
}

func (m *MockTextGenerator) GenerateFromPrompt(_ context.Context, prompts []domain.Prompt) (domain.ModelResponse, error) {
	m.prompts = prompts
	return domain.ModelResponse{
		Response: m.response,
		Metadata: domain.ResponseMetadata{
			Model:            "unit-test",
			CompletionTokens: 24,
			TotalTokens:      42,
		},
	}, m.err
}

type MockTextSender struct {
	mu       sync.Mutex
	err      error
	Messages []string
}

func (m *MockTextSender) SendMessage(_ context.Context, _ int64, text string) (int, error) {
	return m.record(text)
}

func (m *MockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) (int, error) {
	return m.record(text)
}

func (m *MockTextSender) SendChatAction(context.Context, int64, domain.Action) error { return nil }

func (m *MockTextSender) record(text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, m.err)
	}

	m.Messages = append(m.Messages, text)
	return len(m.Messages), nil
}

func (m *MockTextSender) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}

type MockImageSender struct {
	err  error
	URLs []string
}

func (m *MockImageSender) SendImageURLReply(_ context.Context, _ *domain.Message, url string) error {
	if m.err != nil {
		return m.err
	}
	m.URLs = append(m.URLs, url)
	return nil
}

type MockHistory struct {
	entries []domain.HistoryEntry
}

func (m *MockHistory) Recent(_ int64, limit int) []domain.HistoryEntry {
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	return m.entries[len(m.entries)-limit:]
}

type MockImageFinder struct {
	mock.Mock
}

func (m *MockImageFinder) FindImage(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

type MockWeatherFetcher struct {
	mock.Mock
}

func (m *MockWeatherFetcher) CurrentWeather(ctx context.Context, location string) (port.Weather, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(port.Weather), args.Error(1)
}

type MockNewsFetcher struct {
	mock.Mock
}

func (m *MockNewsFetcher) TopHeadlines(ctx context.Context, category, country string) ([]port.Article, error) {
	args := m.Called(ctx, category, country)
	return args.Get(0).([]port.Article), args.Error(1)
}

func (m *MockNewsFetcher) Everything(ctx context.Context, query string) ([]port.Article, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]port.Article), args.Error(1)
}

type MockQuoteFetcher struct {
	mock.Mock
}

func (m *MockQuoteFetcher) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).([]float64), args.Error(1)
}

type MockCardFetcher struct {
	mock.Mock
}

func (m *MockCardFetcher) FindCard(ctx context.Context, name, number string) (port.Card, error) {
	args := m.Called(ctx, name, number)
	return args.Get(0).(port.Card), args.Error(1)
}

type MockRateConverter struct {
	mock.Mock
}

func (m *MockRateConverter) Rate(ctx context.Context, from, to string) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type staticScorer float64

func (s staticScorer) Score(string) float64 { return float64(s) }
