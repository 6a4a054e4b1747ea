package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wordbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}

func TestFormatReport(t *testing.T) {
	started := time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		session  domain.SessionResult
		expected string
	}{
		{
			name: "exam with mistakes",
			session: domain.SessionResult{
				Mode: domain.ModeExam, Status: domain.StatusDone,
				StartedAt: started, FinishedAt: started.Add(90 * time.Second),
				Asked: 30, Correct: 27, MistakeFile: "/tmp/out/final_test_20241212_100130.txt",
			},
			expected: "📝 测试结束\n\n答题：30\n答对：27\n答错：3\n用时：1m30s\n错题文件：final_test_20241212_100130.txt",
		},
		{
			name: "drill finished",
			session: domain.SessionResult{
				Mode: domain.ModeDrill, Status: domain.StatusDone, Asked: 5, Correct: 4,
			},
			expected: "🔁 错题本练习\n\n答题：5\n答对：4\n答错：1\n🎉 错题本已清空！",
		},
		{
			name: "drill stopped",
			session: domain.SessionResult{
				Mode: domain.ModeDrill, Status: domain.StatusStopped, Asked: 2, Correct: 1, BookRemaining: 120,
			},
			expected: "🔁 错题本练习（已退出）\n\n答题：2\n答对：1\n答错：1\n错题本剩余：120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatReport(tt.session))
		})
	}
}

func TestTelegramReporter_Report(t *testing.T) {
	session := domain.SessionResult{ID: "s1", Mode: domain.ModeDrill, Status: domain.StatusStopped, BookRemaining: 3}

	tests := []struct {
		name          string
		sendErr       error
		expectedError bool
	}{
		{name: "sent"},
		{name: "telegram error", sendErr: fmt.Errorf("chat not found"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(mockSender)
			matchChat := mock.MatchedBy(func(r tele.Recipient) bool { return r.Recipient() == "-100123" })
			if tt.sendErr != nil {
				sender.On("Send", matchChat, FormatReport(session)).Return(nil, tt.sendErr)
			} else {
				sender.On("Send", matchChat, FormatReport(session)).Return(&tele.Message{ID: 1}, nil)
			}

			reporter := NewTelegramReporterWithSender(sender, -100123, zap.NewNop())

			err := reporter.Report(context.Background(), session)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			sender.AssertExpectations(t)
		})
	}
}

func TestTelegramReporter_CancelledContext(t *testing.T) {
	sender := new(mockSender)
	reporter := NewTelegramReporterWithSender(sender, 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := reporter.Report(ctx, domain.SessionResult{})

	assert.ErrorIs(t, err, context.Canceled)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNewTelegramReporter(t *testing.T) {
	reporter, err := NewTelegramReporter("123456:TEST", 42, zap.NewNop())

	assert.NoError(t, err)
	assert.NotNil(t, reporter)
}
