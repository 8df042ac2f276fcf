package smsc

import (
	"net/url"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Operation selects the gateway endpoint, HTTP verb and parameter schema.
type Operation string

const (
	OperationSend   Operation = "send"
	OperationStatus Operation = "status"
)

const (
	// fmt=3 makes the gateway answer in JSON.
	defaultFormat = 3
	// Hours an undelivered message stays queued gateway-side.
	defaultValidity = 1

	textMinLen = 2
	textMaxLen = 255
)

// Credentials identify the gateway account. They are passed explicitly to
// the client instead of living in process-wide state.
type Credentials struct {
	Login    string
	Password string
}

// Payload carries the operation-specific request params as loose key/value
// pairs; the per-operation builders below validate and shape them.
type Payload map[string]string

// SendRequest is the validated form of a send.php call.
type SendRequest struct {
	Phones string
	Text   string
	Sender string
	Format int
	Valid  int
}

// NewSendRequest validates a loose payload against the send schema.
// Required: phones, mes, sender. Optional with defaults: fmt, valid.
// Unknown fields are rejected rather than silently dropped.
func NewSendRequest(payload Payload) (SendRequest, error) {
	if err := checkFields(OperationSend, payload,
		[]string{"phones", "mes", "sender"},
		[]string{"fmt", "valid"},
	); err != nil {
		return SendRequest{}, err
	}

	req := SendRequest{
		Phones: payload["phones"],
		Text:   payload["mes"],
		Sender: payload["sender"],
		Format: defaultFormat,
		Valid:  defaultValidity,
	}

	if textLen := utf8.RuneCountInString(req.Text); textLen < textMinLen || textLen > textMaxLen {
		return SendRequest{}, invalidParams(OperationSend, "message text must be 2-255 characters", "mes")
	}

	var err error
	if req.Format, err = intField(OperationSend, payload, "fmt", defaultFormat); err != nil {
		return SendRequest{}, err
	}
	if req.Valid, err = intField(OperationSend, payload, "valid", defaultValidity); err != nil {
		return SendRequest{}, err
	}

	return req, nil
}

// Values renders the request as the flat key=value wire form the gateway
// expects for both GET query strings and POST bodies.
func (r SendRequest) Values(creds Credentials) url.Values {
	return url.Values{
		"login":  {creds.Login},
		"psw":    {creds.Password},
		"phones": {r.Phones},
		"mes":    {r.Text},
		"sender": {r.Sender},
		"fmt":    {strconv.Itoa(r.Format)},
		"valid":  {strconv.Itoa(r.Valid)},
	}
}

// StatusRequest is the validated form of a status.php call.
type StatusRequest struct {
	Phone  string
	ID     string
	Format int
}

// NewStatusRequest validates a loose payload against the status schema.
// Required: phone, id. Optional with default: fmt.
func NewStatusRequest(payload Payload) (StatusRequest, error) {
	if err := checkFields(OperationStatus, payload,
		[]string{"phone", "id"},
		[]string{"fmt"},
	); err != nil {
		return StatusRequest{}, err
	}

	req := StatusRequest{
		Phone: payload["phone"],
		ID:    payload["id"],
	}

	var err error
	if req.Format, err = intField(OperationStatus, payload, "fmt", defaultFormat); err != nil {
		return StatusRequest{}, err
	}

	return req, nil
}

func (r StatusRequest) Values(creds Credentials) url.Values {
	return url.Values{
		"login": {creds.Login},
		"psw":   {creds.Password},
		"phone": {r.Phone},
		"id":    {r.ID},
		"fmt":   {strconv.Itoa(r.Format)},
	}
}

func checkFields(op Operation, payload Payload, required, optional []string) error {
	var missing []string
	for _, field := range required {
		if payload[field] == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return invalidParams(op, "missing required params", missing...)
	}

	allowed := make(map[string]bool, len(required)+len(optional))
	for _, field := range required {
		allowed[field] = true
	}
	for _, field := range optional {
		allowed[field] = true
	}

	var unknown []string
	for field := range payload {
		if !allowed[field] {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return invalidParams(op, "unexpected params", unknown...)
	}

	return nil
}

func intField(op Operation, payload Payload, field string, defaultValue int) (int, error) {
	raw, ok := payload[field]
	if !ok || raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParams(op, "param must be an integer", field)
	}
	return value, nil
}
