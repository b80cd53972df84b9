package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/hirenow-api/internal/events"
	"github.com/spec-kit/hirenow-api/internal/sms"
)

// StartSMSWorker subscribes the SMS sender to code-issued events so that
// verification codes are delivered out of the request path's control flow.
func StartSMSWorker(dispatcher events.Dispatcher, sender sms.Sender, logger *zap.Logger) {
	if dispatcher == nil || sender == nil {
		return
	}

	dispatcher.Subscribe(events.EventCodeIssued, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.CodeIssuedPayload)
		if !ok {
			logger.Warn("unexpected payload for code_issued event")
			return nil
		}

		message := fmt.Sprintf("Your HireNow verification code is %s. It expires in 10 minutes.", payload.Code)
		if err := sender.Send(ctx, payload.Phone, message); err != nil {
			logger.Error("failed to send verification sms", zap.Error(err), zap.String("phone", payload.Phone))
		}
		return nil
	})
}
