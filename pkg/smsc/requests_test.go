package smsc

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSendRequest_AppliesDefaults(t *testing.T) {
	req, err := NewSendRequest(Payload{
		"phones": "79990000000",
		"mes":    "Hello World!",
		"sender": "DEV",
	})
	if err != nil {
		t.Fatalf("NewSendRequest returned error: %v", err)
	}

	if req.Format != 3 {
		t.Errorf("expected default fmt=3, got %d", req.Format)
	}
	if req.Valid != 1 {
		t.Errorf("expected default valid=1, got %d", req.Valid)
	}
}

func TestNewSendRequest_OverridesDefaults(t *testing.T) {
	req, err := NewSendRequest(Payload{
		"phones": "79990000000",
		"mes":    "Hello World!",
		"sender": "DEV",
		"fmt":    "1",
		"valid":  "24",
	})
	if err != nil {
		t.Fatalf("NewSendRequest returned error: %v", err)
	}

	if req.Format != 1 {
		t.Errorf("expected fmt=1, got %d", req.Format)
	}
	if req.Valid != 24 {
		t.Errorf("expected valid=24, got %d", req.Valid)
	}
}

func TestNewSendRequest_MissingParams(t *testing.T) {
	_, err := NewSendRequest(Payload{"mes": "Hello World!"})
	if err == nil {
		t.Fatalf("expected error for missing params, got nil")
	}

	var paramsErr *InvalidParamsError
	if !errors.As(err, &paramsErr) {
		t.Fatalf("expected *InvalidParamsError, got %T: %v", err, err)
	}

	got := strings.Join(paramsErr.Fields, ",")
	if got != "phones,sender" {
		t.Errorf("expected missing fields phones,sender, got %q", got)
	}
}

func TestNewSendRequest_UnknownParam(t *testing.T) {
	_, err := NewSendRequest(Payload{
		"phones": "79990000000",
		"mes":    "Hello World!",
		"sender": "DEV",
		"tel":    "123",
	})

	var paramsErr *InvalidParamsError
	if !errors.As(err, &paramsErr) {
		t.Fatalf("expected *InvalidParamsError for unknown param, got %T: %v", err, err)
	}
	if len(paramsErr.Fields) != 1 || paramsErr.Fields[0] != "tel" {
		t.Errorf("expected offending field tel, got %v", paramsErr.Fields)
	}
}

func TestNewSendRequest_TextLengthBounds(t *testing.T) {
	base := Payload{"phones": "79990000000", "sender": "DEV"}

	cases := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "too short", text: "x", wantErr: true},
		{name: "min length", text: "hi", wantErr: false},
		{name: "max length", text: strings.Repeat("a", 255), wantErr: false},
		{name: "too long", text: strings.Repeat("a", 256), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := Payload{"mes": tc.text}
			for k, v := range base {
				payload[k] = v
			}

			_, err := NewSendRequest(payload)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for text of length %d", len(tc.text))
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewSendRequest_NonIntegerValid(t *testing.T) {
	_, err := NewSendRequest(Payload{
		"phones": "79990000000",
		"mes":    "Hello World!",
		"sender": "DEV",
		"valid":  "one day",
	})

	var paramsErr *InvalidParamsError
	if !errors.As(err, &paramsErr) {
		t.Fatalf("expected *InvalidParamsError for non-integer valid, got %T: %v", err, err)
	}
}

func TestSendRequest_ValuesEncodesEveryField(t *testing.T) {
	req, err := NewSendRequest(Payload{
		"phones": "79990000000,79990000001",
		"mes":    "Hello & Goodbye",
		"sender": "DEV",
	})
	if err != nil {
		t.Fatalf("NewSendRequest returned error: %v", err)
	}

	values := req.Values(Credentials{Login: "dev", Password: "secret"})

	want := map[string]string{
		"login":  "dev",
		"psw":    "secret",
		"phones": "79990000000,79990000001",
		"mes":    "Hello & Goodbye",
		"sender": "DEV",
		"fmt":    "3",
		"valid":  "1",
	}
	if len(values) != len(want) {
		t.Fatalf("expected %d wire fields, got %d", len(want), len(values))
	}
	for field, expected := range want {
		if got := values.Get(field); got != expected {
			t.Errorf("field %s: expected %q, got %q", field, expected, got)
		}
	}

	encoded := values.Encode()
	if !strings.Contains(encoded, "mes=Hello+%26+Goodbye") {
		t.Errorf("expected percent-encoded message text, got %q", encoded)
	}
}

func TestNewStatusRequest_AppliesDefaults(t *testing.T) {
	req, err := NewStatusRequest(Payload{"phone": "79990000000", "id": "35"})
	if err != nil {
		t.Fatalf("NewStatusRequest returned error: %v", err)
	}

	if req.Format != 3 {
		t.Errorf("expected default fmt=3, got %d", req.Format)
	}
	if req.ID != "35" {
		t.Errorf("expected id 35, got %q", req.ID)
	}
}

func TestNewStatusRequest_MissingParams(t *testing.T) {
	_, err := NewStatusRequest(Payload{"phone": "79990000000"})

	var paramsErr *InvalidParamsError
	if !errors.As(err, &paramsErr) {
		t.Fatalf("expected *InvalidParamsError, got %T: %v", err, err)
	}
	if len(paramsErr.Fields) != 1 || paramsErr.Fields[0] != "id" {
		t.Errorf("expected offending field id, got %v", paramsErr.Fields)
	}
}
