package smsc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/anderskate/async-sms-sending/environments"
	"github.com/anderskate/async-sms-sending/pkg/logger"
)

// encoder shapes and validates a loose payload into the wire form of one
// operation kind.
type encoder func(Credentials, Payload) (url.Values, error)

type endpoint struct {
	url    string
	method string
	encode encoder
}

// Client talks to the smsc.ru HTTP API. Each Call performs exactly one
// network round trip; retry policy, if any, is the caller's concern.
type Client struct {
	httpClient *resty.Client
	creds      Credentials
	endpoints  map[Operation]endpoint
}

func NewClient(cfg environments.SmscConfig) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		creds:      Credentials{Login: cfg.Login, Password: cfg.Password},
		endpoints: map[Operation]endpoint{
			OperationSend:   {url: cfg.SendURL, method: http.MethodPost, encode: encodeSend},
			OperationStatus: {url: cfg.StatusURL, method: http.MethodGet, encode: encodeStatus},
		},
	}
}

// Call resolves the operation, shapes the payload and performs the request.
// Codec failures and unknown operations fail before any network activity.
// Transport faults, non-2xx statuses and non-JSON bodies all map to
// ErrGatewayUnreachable; errors the gateway embeds inside a 2xx body are
// returned in the Response untouched.
func (c *Client) Call(ctx context.Context, op Operation, payload Payload) (Response, error) {
	ep, ok := c.endpoints[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, op)
	}

	values, err := ep.encode(c.creds, payload)
	if err != nil {
		return nil, err
	}

	req := c.httpClient.R().SetContext(ctx)

	var resp *resty.Response
	switch ep.method {
	case http.MethodGet:
		resp, err = req.SetQueryParamsFromValues(values).Get(ep.url)
	case http.MethodPost:
		resp, err = req.SetFormDataFromValues(values).Post(ep.url)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedHTTPMethod, ep.method)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}

	logger.Infof("Dispatched %s request to gateway (status: %d)", op, resp.StatusCode())

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrGatewayUnreachable, resp.StatusCode())
	}

	var decoded Response
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", ErrGatewayUnreachable, err)
	}

	return decoded, nil
}

func encodeSend(creds Credentials, payload Payload) (url.Values, error) {
	req, err := NewSendRequest(payload)
	if err != nil {
		return nil, err
	}
	return req.Values(creds), nil
}

func encodeStatus(creds Credentials, payload Payload) (url.Values, error) {
	req, err := NewStatusRequest(payload)
	if err != nil {
		return nil, err
	}
	return req.Values(creds), nil
}
