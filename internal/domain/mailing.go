package domain

import "time"

// SnapshotMsgType tags every status frame sent to viewers.
const SnapshotMsgType = "SMSMailingStatus"

// SmsMailing is one tracked broadcast campaign. Records are created once,
// right after the gateway accepts a send, and are never mutated or deleted.
type SmsMailing struct {
	ID             string   `json:"sms_id"`
	Phones         []string `json:"phones"`
	Text           string   `json:"text"`
	CreatedAt      int64    `json:"created_at"`
	PhonesCount    int      `json:"phones_count"`
	DeliveredCount int      `json:"delivered_count"`
	FailedCount    int      `json:"failed_count"`
}

// NewSmsMailing creates a mailing record for a gateway-assigned id.
// Delivered and failed counters start at zero; per-recipient delivery
// tracking is not reconciled yet.
func NewSmsMailing(id string, phones []string, text string) SmsMailing {
	return SmsMailing{
		ID:          id,
		Phones:      phones,
		Text:        text,
		CreatedAt:   time.Now().Unix(),
		PhonesCount: len(phones),
	}
}

// MailingStatus is the per-mailing summary inside a status snapshot.
// JSON field names are fixed by the viewer frontend.
type MailingStatus struct {
	Timestamp          int64  `json:"timestamp"`
	SMSText            string `json:"SMSText"`
	MailingID          string `json:"mailingId"`
	TotalSMSAmount     int    `json:"totalSMSAmount"`
	DeliveredSMSAmount int    `json:"deliveredSMSAmount"`
	FailedSMSAmount    int    `json:"failedSMSAmount"`
}

// StatusSnapshot is an immutable view of every known mailing at one point
// in time, produced fresh on each aggregation tick.
type StatusSnapshot struct {
	MsgType     string          `json:"msgType"`
	SMSMailings []MailingStatus `json:"SMSMailings"`
}
