package notify

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpamis/procurement-api/pkg/logger"
)

// recordingMailer captures deliveries; fail makes every send error.
type recordingMailer struct {
	mu          sync.Mutex
	activations []string
	rejections  []string
	fail        bool
}

func (m *recordingMailer) SendActivation(to, code, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.activations = append(m.activations, to+"|"+code+"|"+link)
	return nil
}

func (m *recordingMailer) SendRejection(to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.rejections = append(m.rejections, to)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func TestDispatcher_DeliversQueuedMail(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, testLogger(), 8)

	d.Enqueue(Message{Kind: KindActivation, To: "a@x.com", Code: "123456", Link: "https://x/activate"})
	d.Enqueue(Message{Kind: KindRejection, To: "b@x.com"})
	d.Close() // waits for the worker to drain

	require.Len(t, mailer.activations, 1)
	assert.Equal(t, "a@x.com|123456|https://x/activate", mailer.activations[0])
	require.Len(t, mailer.rejections, 1)
	assert.Equal(t, "b@x.com", mailer.rejections[0])
}

func TestDispatcher_DeliveryFailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{fail: true}
	d := NewDispatcher(mailer, testLogger(), 8)

	// Enqueue never returns an error and a failing transport never blocks Close.
	d.Enqueue(Message{Kind: KindActivation, To: "a@x.com", Code: "123456", Link: "l"})
	d.Enqueue(Message{Kind: KindRejection, To: "a@x.com"})
	d.Close()

	assert.Empty(t, mailer.activations)
	assert.Empty(t, mailer.rejections)
}

func TestDispatcher_UnknownKindIsSkipped(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, testLogger(), 8)

	d.Enqueue(Message{Kind: "carrier-pigeon", To: "a@x.com"})
	d.Enqueue(Message{Kind: KindRejection, To: "b@x.com"})
	d.Close()

	assert.Empty(t, mailer.activations)
	require.Len(t, mailer.rejections, 1, "the worker keeps going after an unknown kind")
}
