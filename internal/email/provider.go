package email

import (
	"context"
	"sync"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	Send(ctx context.Context, email *Email) error
}

// NoopProvider ничего не отправляет; используется когда email выключен
type NoopProvider struct{}

func (NoopProvider) Send(context.Context, *Email) error { return nil }

// RecordingProvider запоминает письма вместо отправки (для тестов и dev)
type RecordingProvider struct {
	mu   sync.Mutex
	sent []Email
}

func (p *RecordingProvider) Send(_ context.Context, email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *email)
	return nil
}

// Sent возвращает копию отправленных писем
func (p *RecordingProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}
