package aggregator

import (
	"context"
	"fmt"

	"github.com/anderskate/async-sms-sending/internal/domain"
)

// mailingStore is the read side of the mailing registry; the Redis client
// satisfies it, tests use a fake.
type mailingStore interface {
	ListMailingIDs(ctx context.Context) ([]string, error)
	GetMailings(ctx context.Context, ids ...string) ([]domain.SmsMailing, error)
}

// Aggregator assembles a point-in-time status snapshot from the mailing
// store. It only reads; records are owned by the store.
type Aggregator struct {
	store mailingStore
}

func New(store mailingStore) *Aggregator {
	return &Aggregator{store: store}
}

// Snapshot loads every known mailing and maps it to the viewer-facing
// summary shape. Delivered and failed amounts surface whatever the store
// holds, which is zero until per-recipient tracking lands upstream.
func (a *Aggregator) Snapshot(ctx context.Context) (domain.StatusSnapshot, error) {
	ids, err := a.store.ListMailingIDs(ctx)
	if err != nil {
		return domain.StatusSnapshot{}, fmt.Errorf("failed to list mailings: %w", err)
	}

	mailings, err := a.store.GetMailings(ctx, ids...)
	if err != nil {
		return domain.StatusSnapshot{}, fmt.Errorf("failed to load mailings: %w", err)
	}

	statuses := make([]domain.MailingStatus, 0, len(mailings))
	for _, mailing := range mailings {
		statuses = append(statuses, domain.MailingStatus{
			Timestamp:          mailing.CreatedAt,
			SMSText:            mailing.Text,
			MailingID:          mailing.ID,
			TotalSMSAmount:     mailing.PhonesCount,
			DeliveredSMSAmount: mailing.DeliveredCount,
			FailedSMSAmount:    mailing.FailedCount,
		})
	}

	return domain.StatusSnapshot{
		MsgType:     domain.SnapshotMsgType,
		SMSMailings: statuses,
	}, nil
}
