package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anderskate/async-sms-sending/environments"
	"github.com/anderskate/async-sms-sending/internal/domain"
	"github.com/anderskate/async-sms-sending/pkg/logger"
	"github.com/anderskate/async-sms-sending/pkg/redis"
	"github.com/anderskate/async-sms-sending/pkg/smsc"
)

// Small internal interfaces so we can test without a real gateway or Redis.
type gatewayClient interface {
	Call(ctx context.Context, op smsc.Operation, payload smsc.Payload) (smsc.Response, error)
}

type mailingStore interface {
	AddMailing(ctx context.Context, mailing domain.SmsMailing) error
}

// MailingService owns the submission path: forward a broadcast text to the
// gateway and register the resulting mailing for status tracking.
type MailingService struct {
	gateway gatewayClient
	store   mailingStore
	sender  string
	phones  []string
}

func NewMailingService(
	gateway gatewayClient,
	store mailingStore,
	smscCfg environments.SmscConfig,
	mailingCfg environments.MailingConfig,
) *MailingService {
	return &MailingService{
		gateway: gateway,
		store:   store,
		sender:  smscCfg.Sender,
		phones:  mailingCfg.Phones,
	}
}

// SendMailing sends text to the configured phone list and persists the
// mailing under the gateway-assigned id. The raw gateway response is
// returned either way: if the gateway embedded an application-level error
// instead of an id, nothing is persisted and the caller sees the body.
func (s *MailingService) SendMailing(ctx context.Context, text string) (smsc.Response, error) {
	if len(s.phones) == 0 {
		return nil, errors.New("no recipient phones configured")
	}

	resp, err := s.gateway.Call(ctx, smsc.OperationSend, smsc.Payload{
		"phones": strings.Join(s.phones, ","),
		"mes":    text,
		"sender": s.sender,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send mailing: %w", err)
	}

	result, err := resp.SendResult()
	if err != nil {
		logger.Warnf("Gateway accepted the request but returned no mailing id: %v (body: %v)", err, resp)
		return resp, nil
	}

	mailing := domain.NewSmsMailing(result.ID, s.phones, text)
	if err := s.store.AddMailing(ctx, mailing); err != nil {
		if errors.Is(err, redis.ErrDuplicateMailing) {
			logger.Errorf("Gateway reissued mailing id %s", result.ID)
		}
		return nil, fmt.Errorf("failed to register mailing %s: %w", result.ID, err)
	}

	logger.Infof("Mailing %s sent to %d phones", result.ID, mailing.PhonesCount)

	return resp, nil
}
