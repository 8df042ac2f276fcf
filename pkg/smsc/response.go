package smsc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Response is the decoded JSON body of a gateway reply. The gateway may
// omit or add fields at will, so the raw map stays accessible; the typed
// accessors below cover the known shapes.
type Response map[string]any

// ErrorCode reports an application-level error the gateway embedded in an
// otherwise successful (2xx) body. Interpreting it is the caller's job.
func (r Response) ErrorCode() (int, bool) {
	code, ok := intValue(r["error_code"])
	return code, ok
}

// SendResult is the shape of a successful send.php reply.
type SendResult struct {
	ID    string
	Count int
}

// SendResult decodes the send reply. The gateway reports the mailing id as
// either a JSON string or a number; it is normalized to a string here.
func (r Response) SendResult() (SendResult, error) {
	id, ok := stringValue(r["id"])
	if !ok {
		return SendResult{}, errors.New("smsc: send response carries no mailing id")
	}

	count, _ := intValue(r["cnt"])
	return SendResult{ID: id, Count: count}, nil
}

// StatusResult is the shape of a successful status.php reply.
type StatusResult struct {
	Status   int
	LastDate string
	Err      int
}

func (r Response) StatusResult() (StatusResult, error) {
	status, ok := intValue(r["status"])
	if !ok {
		return StatusResult{}, errors.New("smsc: status response carries no status field")
	}

	result := StatusResult{Status: status}
	result.LastDate, _ = stringValue(r["last_date"])
	result.Err, _ = intValue(r["err"])
	return result, nil
}

func stringValue(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		if value == math.Trunc(value) {
			return strconv.FormatInt(int64(value), 10), true
		}
		return fmt.Sprintf("%v", value), true
	default:
		return "", false
	}
}

func intValue(v any) (int, bool) {
	switch value := v.(type) {
	case float64:
		return int(value), true
	case string:
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
