// Package speech models speech-to-text capture as a capability with an
// explicit start/stop lifecycle and a stream of recognized utterances. The
// recognizer itself lives on the client; the server only carries the
// utterance stream into the draft.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Stream and lifecycle errors.
var (
	// ErrCapabilityUnavailable reports that speech capture is not supported
	// in the host environment. Manual text entry is unaffected.
	ErrCapabilityUnavailable = errors.New("speech capture is not available in this environment")

	// ErrNotListening reports an utterance fed while capture is stopped.
	ErrNotListening = errors.New("speech capture is not listening")

	// ErrStreamFull reports that utterances are arriving faster than the
	// consumer drains them.
	ErrStreamFull = errors.New("utterance stream is full")
)

// Capability is a speech-capture source. Start and Stop may be called
// repeatedly; Utterances returns the stream recognized text arrives on.
type Capability interface {
	Start(ctx context.Context) error
	Stop()
	Utterances() <-chan string
}

// Unsupported is the capability for environments without speech capture.
// Start fails fast with a descriptive error and the stream never yields.
type Unsupported struct{}

var _ Capability = Unsupported{}

func (Unsupported) Start(ctx context.Context) error { return ErrCapabilityUnavailable }

func (Unsupported) Stop() {}

func (Unsupported) Utterances() <-chan string {
	ch := make(chan string)
	close(ch)
	return ch
}

const streamBuffer = 16

// Transcript is a capability fed by the client: the browser's recognizer
// posts each recognized utterance and Feed forwards it onto the stream.
type Transcript struct {
	mu        sync.Mutex
	listening bool
	ch        chan string
}

var _ Capability = (*Transcript)(nil)

// NewTranscript creates a stopped transcript capability.
func NewTranscript() *Transcript {
	return &Transcript{ch: make(chan string, streamBuffer)}
}

// Start begins accepting fed utterances.
func (t *Transcript) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listening = true
	return nil
}

// Stop ends capture. Utterances fed while stopped are rejected; the stream
// stays open so capture can resume.
func (t *Transcript) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listening = false
}

// Utterances returns the stream recognized utterances arrive on.
func (t *Transcript) Utterances() <-chan string {
	return t.ch
}

// Feed forwards one recognized utterance onto the stream.
func (t *Transcript) Feed(utterance string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.listening {
		return ErrNotListening
	}

	select {
	case t.ch <- utterance:
		return nil
	default:
		return ErrStreamFull
	}
}

// Appender receives recognized utterances, typically a draft workflow.
type Appender interface {
	AppendUtterance(utterance string) error
}

// Pump drains a capability's utterance stream into an appender until the
// context is cancelled. Rejected appends are logged and dropped; capture
// continues.
func Pump(ctx context.Context, capability Capability, appender Appender, logger *slog.Logger) {
	log := logger.With(slog.String("component", "speech_pump"))

	for {
		select {
		case <-ctx.Done():
			return
		case utterance, ok := <-capability.Utterances():
			if !ok {
				return
			}
			if err := appender.AppendUtterance(utterance); err != nil {
				log.Warn("dropping utterance", "error", err)
			}
		}
	}
}
