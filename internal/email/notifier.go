package email

import (
	"context"
	"fmt"

	"whatyaneed_backend/internal/logger"
)

// Notifier дублирует уведомления на почту
type Notifier struct {
	provider Provider
}

func NewNotifier(provider Provider) *Notifier {
	if provider == nil {
		provider = NoopProvider{}
	}
	return &Notifier{provider: provider}
}

// OfferReceived отправляет владельцу запроса письмо об отклике.
// Ошибка отправки только логируется: письмо - копия уведомления в БД.
func (n *Notifier) OfferReceived(ctx context.Context, to string, data OfferNotificationData) {
	if to == "" {
		return
	}

	html, err := render(templateOfferReceived, data)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to render offer email", err)
		return
	}

	msg := &Email{
		To:       []string{to},
		Subject:  fmt.Sprintf("New offer for \"%s\"", data.RequestTitle),
		Body:     data.Message,
		HTMLBody: html,
	}
	if err := n.provider.Send(ctx, msg); err != nil {
		logger.CtxWithError(ctx, "Failed to send offer email", err, "to", to)
	}
}
