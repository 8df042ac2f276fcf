package smsc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anderskate/async-sms-sending/environments"
)

// newTestClient points a client at a local test server and counts every
// request that actually reaches it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(environments.SmscConfig{
		Login:     "dev",
		Password:  "secret",
		SendURL:   server.URL + "/sys/send.php",
		StatusURL: server.URL + "/sys/status.php",
		Timeout:   5 * time.Second,
	})

	return client, &calls
}

func TestCall_SendDeliversAllFields(t *testing.T) {
	var gotMethod string
	var gotForm map[string]string

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostFormValue(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 40, "cnt": 2}`))
	})

	resp, err := client.Call(context.Background(), OperationSend, Payload{
		"phones": "79990000000,79990000001",
		"mes":    "Hello World!",
		"sender": "DEV",
	})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("expected exactly 1 request, got %d", calls.Load())
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}

	want := map[string]string{
		"login":  "dev",
		"psw":    "secret",
		"phones": "79990000000,79990000001",
		"mes":    "Hello World!",
		"sender": "DEV",
		"fmt":    "3",
		"valid":  "1",
	}
	for field, expected := range want {
		if gotForm[field] != expected {
			t.Errorf("field %s: expected %q, got %q", field, expected, gotForm[field])
		}
	}

	result, err := resp.SendResult()
	if err != nil {
		t.Fatalf("SendResult returned error: %v", err)
	}
	if result.ID != "40" || result.Count != 2 {
		t.Errorf("expected id=40 cnt=2, got %+v", result)
	}
}

func TestCall_StatusUsesQueryParams(t *testing.T) {
	var gotMethod string
	var gotQuery map[string]string

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 1, "last_date": "25.08.2026 10:00:00", "err": 0}`))
	})

	resp, err := client.Call(context.Background(), OperationStatus, Payload{
		"phone": "79990000000",
		"id":    "35",
	})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("expected exactly 1 request, got %d", calls.Load())
	}
	if gotMethod != http.MethodGet {
		t.Errorf("expected GET, got %s", gotMethod)
	}
	if gotQuery["phone"] != "79990000000" || gotQuery["id"] != "35" || gotQuery["fmt"] != "3" {
		t.Errorf("unexpected query params: %v", gotQuery)
	}

	result, err := resp.StatusResult()
	if err != nil {
		t.Fatalf("StatusResult returned error: %v", err)
	}
	if result.Status != 1 || result.LastDate != "25.08.2026 10:00:00" || result.Err != 0 {
		t.Errorf("unexpected status result: %+v", result)
	}
}

func TestCall_InvalidPayloadMakesNoRequest(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Call(context.Background(), OperationSend, Payload{
		"mes":    "Hello World!",
		"sender": "DEV",
	})

	var paramsErr *InvalidParamsError
	if !errors.As(err, &paramsErr) {
		t.Fatalf("expected *InvalidParamsError, got %T: %v", err, err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no requests, got %d", calls.Load())
	}
}

func TestCall_UnknownOperationMakesNoRequest(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Call(context.Background(), Operation("broadcast"), Payload{})
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no requests, got %d", calls.Load())
	}
}

func TestCall_GatewayErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Call(context.Background(), OperationSend, Payload{
		"phones": "79990000000",
		"mes":    "Hello World!",
		"sender": "DEV",
	})
	if !errors.Is(err, ErrGatewayUnreachable) {
		t.Fatalf("expected ErrGatewayUnreachable, got %v", err)
	}
}

func TestCall_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Call(context.Background(), OperationSend, Payload{
		"phones": "79990000000",
		"mes":    "Hello World!",
		"sender": "DEV",
	})
	if !errors.Is(err, ErrGatewayUnreachable) {
		t.Fatalf("expected ErrGatewayUnreachable, got %v", err)
	}
}

func TestCall_ConnectionRefused(t *testing.T) {
	client := NewClient(environments.SmscConfig{
		Login:     "dev",
		Password:  "secret",
		SendURL:   "http://127.0.0.1:1/sys/send.php",
		StatusURL: "http://127.0.0.1:1/sys/status.php",
		Timeout:   time.Second,
	})

	_, err := client.Call(context.Background(), OperationSend, Payload{
		"phones": "79990000000",
		"mes":    "Hello World!",
		"sender": "DEV",
	})
	if !errors.Is(err, ErrGatewayUnreachable) {
		t.Fatalf("expected ErrGatewayUnreachable, got %v", err)
	}
}

// An application-level error inside a 2xx body is returned decoded, not as
// an error; interpreting it is the caller's job.
func TestCall_EmbeddedErrorReturnedToCaller(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "invalid number", "error_code": 7}`))
	})

	resp, err := client.Call(context.Background(), OperationSend, Payload{
		"phones": "123",
		"mes":    "Hello World!",
		"sender": "DEV",
	})
	if err != nil {
		t.Fatalf("expected no error for embedded gateway error, got %v", err)
	}

	code, ok := resp.ErrorCode()
	if !ok || code != 7 {
		t.Errorf("expected error_code=7, got %d (present: %v)", code, ok)
	}
	if _, err := resp.SendResult(); err == nil {
		t.Errorf("expected SendResult to fail without an id")
	}
}
