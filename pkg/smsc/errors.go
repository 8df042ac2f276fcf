package smsc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedOperation means the requested operation kind is not in
	// the client's registry. No request is made.
	ErrUnsupportedOperation = errors.New("smsc: unsupported api operation")

	// ErrUnsupportedHTTPMethod means an operation is registered with a verb
	// other than GET or POST. Indicates a wiring bug, not a runtime state.
	ErrUnsupportedHTTPMethod = errors.New("smsc: unsupported http method")

	// ErrGatewayUnreachable covers transport faults, non-2xx responses and
	// bodies that do not decode as JSON. Application-level errors embedded
	// in a 2xx body are NOT mapped here; they stay in the Response for the
	// caller to interpret.
	ErrGatewayUnreachable = errors.New("smsc: gateway unreachable")
)

// InvalidParamsError reports payload fields that failed schema validation.
// It is raised before any network activity.
type InvalidParamsError struct {
	Operation Operation
	Fields    []string
	Reason    string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("smsc: invalid params for %s request: %s (fields: %s)",
		e.Operation, e.Reason, strings.Join(e.Fields, ", "))
}

func invalidParams(op Operation, reason string, fields ...string) error {
	return &InvalidParamsError{Operation: op, Fields: fields, Reason: reason}
}
