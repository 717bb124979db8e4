package command

import (
	"errors"
	"testing"

	"cortex/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestChat(t *testing.T, mg *MockTextGenerator, ms *MockTextSender, history *MockHistory,
	mutate func(p *ChatParams)) *Chat {
	t.Helper()

	p := ChatParams{
		TextGenerator: mg,
		TextSender:    ms,
		History:       history,
		HistorySize:   5,
		Command:       "chat",
	}
	if mutate != nil {
		mutate(&p)
	}

	chat, err := NewChat(p)
	require.NoError(t, err)

	return chat
}

func TestChatHandlerSimpleSuccess(t *testing.T) {
	mg := &MockTextGenerator{response: "mock response"}
	ms := &MockTextSender{}
	chat := newTestChat(t, mg, ms, &MockHistory{}, nil)

	err := chat.Respond(t.Context(), &domain.Message{ChatID: 1, ID: 1, Username: "alice", Text: "hey cortex"}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"mock response"}, ms.Messages)
	require.Len(t, mg.prompts, 1)
	assert.Equal(t, domain.Prompt{Author: domain.User, Prompt: "alice: hey cortex"}, mg.prompts[0])
}

func TestChatHandlerUsesHistory(t *testing.T) {
	mg := &MockTextGenerator{response: "4"}
	ms := &MockTextSender{}
	history := &MockHistory{entries: []domain.HistoryEntry{
		{MessageID: 1, Username: "old", Text: "too old"},
		{MessageID: 2, Username: "bob", Text: "cortex what is 1+1"},
		{MessageID: 3, Text: "2", FromBot: true},
		{MessageID: 4, Username: "John Doe", Text: "and 2+2?"},
	}}
	chat := newTestChat(t, mg, ms, history, func(p *ChatParams) { p.HistorySize = 3 })

	err := chat.Respond(t.Context(), &domain.Message{ChatID: 1, ID: 4, Username: "John Doe", Text: "and 2+2?"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.Prompt{
		{Author: domain.User, Prompt: "bob: cortex what is 1+1"},
		{Author: domain.System, Prompt: "2"},
		{Author: domain.User, Prompt: "John_Doe: and 2+2?"},
	}, mg.prompts)
}

func TestChatHandlerAppendsMissingMessage(t *testing.T) {
	mg := &MockTextGenerator{response: "ok"}
	history := &MockHistory{entries: []domain.HistoryEntry{
		{MessageID: 1, Username: "a", Text: "one"},
		{MessageID: 2, Username: "b", Text: "two"},
	}}
	chat := newTestChat(t, mg, &MockTextSender{}, history, func(p *ChatParams) { p.HistorySize = 2 })

	require.NoError(t, chat.Respond(t.Context(), &domain.Message{ID: 3, Username: "c", Text: "three"}, nil))

	require.Len(t, mg.prompts, 2)
	assert.Equal(t, "b: two", mg.prompts[0].Prompt)
	assert.Equal(t, "c: three", mg.prompts[1].Prompt)
}

func TestChatHandlerDoesNotRepeatRecordedMessage(t *testing.T) {
	mg := &MockTextGenerator{response: "ok"}
	history := &MockHistory{entries: []domain.HistoryEntry{
		{MessageID: 5, Username: "dan", Text: "cortex hello"},
		{MessageID: 6, Text: "answer for someone else", FromBot: true},
	}}
	chat := newTestChat(t, mg, &MockTextSender{}, history, nil)

	require.NoError(t, chat.Respond(t.Context(), &domain.Message{ID: 5, Username: "dan", Text: "cortex hello"}, nil))

	assert.Equal(t, []domain.Prompt{
		{Author: domain.User, Prompt: "dan: cortex hello"},
		{Author: domain.System, Prompt: "answer for someone else"},
	}, mg.prompts)
}

func TestChatHandlerErrors(t *testing.T) {
	t.Run("generator failure is returned", func(t *testing.T) {
		mg := &MockTextGenerator{err: errors.New("upstream down")}
		ms := &MockTextSender{}
		chat := newTestChat(t, mg, ms, &MockHistory{}, nil)

		err := chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "cortex hi"}, nil)
		require.ErrorContains(t, err, "upstream down")
		assert.Empty(t, ms.Messages)
	})

	t.Run("empty prompt", func(t *testing.T) {
		chat := newTestChat(t, &MockTextGenerator{}, &MockTextSender{}, &MockHistory{}, nil)

		err := chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "  "}, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
	})

	t.Run("empty model response", func(t *testing.T) {
		chat := newTestChat(t, &MockTextGenerator{response: " "}, &MockTextSender{}, &MockHistory{}, nil)

		err := chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "cortex hi"}, nil)
		assert.ErrorIs(t, err, errEmptyResponse)
	})

	t.Run("send failure is a send failure", func(t *testing.T) {
		ms := &MockTextSender{err: errors.New("network")}
		chat := newTestChat(t, &MockTextGenerator{response: "hi"}, ms, &MockHistory{}, nil)

		err := chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "cortex hi"}, nil)
		assert.ErrorIs(t, err, domain.ErrSendingReplyFailed)
	})
}

func TestChatHandlerImage(t *testing.T) {
	finder := &MockImageFinder{}
	finder.On("FindImage", mock.Anything, "red panda").Return("https://img.example/panda.jpg", nil)

	mg := &MockTextGenerator{}
	ms := &MockTextSender{}
	images := &MockImageSender{}
	chat := newTestChat(t, mg, ms, &MockHistory{}, func(p *ChatParams) {
		p.ImageFinder = finder
		p.ImageSender = images
	})

	err := chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "Cortex show me a red panda."}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{imageReply}, ms.Messages)
	assert.Equal(t, []string{"https://img.example/panda.jpg"}, images.URLs)
	assert.Nil(t, mg.prompts, "image requests skip the text generator")
	finder.AssertExpectations(t)
}

func TestChatHandlerImageEmptyQuery(t *testing.T) {
	finder := &MockImageFinder{}
	ms := &MockTextSender{}
	chat := newTestChat(t, &MockTextGenerator{}, ms, &MockHistory{}, func(p *ChatParams) {
		p.ImageFinder = finder
	})

	err := chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "cortex show me"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{imageNotFound}, ms.Messages)
	finder.AssertNotCalled(t, "FindImage", mock.Anything, mock.Anything)
}

func TestChatHandlerImageWithoutImageSender(t *testing.T) {
	finder := &MockImageFinder{}
	finder.On("FindImage", mock.Anything, "cats").Return("https://img.example/cats.png", nil)

	ms := &MockTextSender{}
	chat := newTestChat(t, &MockTextGenerator{}, ms, &MockHistory{}, func(p *ChatParams) {
		p.ImageFinder = finder
	})

	require.NoError(t, chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "cortex generate image of cats"}, nil))
	assert.Equal(t, []string{imageReply, "https://img.example/cats.png"}, ms.Messages)
}

func TestChatHandlerDebugReplies(t *testing.T) {
	ms := &MockTextSender{}
	chat := newTestChat(t, &MockTextGenerator{response: "hi"}, ms, &MockHistory{}, func(p *ChatParams) {
		p.DebugReplies = true
	})

	require.NoError(t, chat.Respond(t.Context(), &domain.Message{ID: 1, Text: "cortex hi"}, nil))
	require.Len(t, ms.Messages, 2)
	assert.Contains(t, ms.Messages[1], "model: unit-test")
}

func TestNewChatValidation(t *testing.T) {
	_, err := NewChat(ChatParams{TextSender: &MockTextSender{}, History: &MockHistory{}})
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
}

func TestRemoveStopwords(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{input: "Cortex show me a red panda.", want: "red panda"},
		{input: "generate image of the Eiffel tower, please", want: "eiffel tower please"},
		{input: "show me", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, RemoveStopwords(tc.input))
		})
	}
}
