package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anderskate/async-sms-sending/internal/service"
	"github.com/anderskate/async-sms-sending/pkg/response"
	"github.com/anderskate/async-sms-sending/pkg/smsc"
	"github.com/anderskate/async-sms-sending/pkg/validator"
)

type SendHandler struct {
	service *service.MailingService
}

func NewSendHandler(service *service.MailingService) *SendHandler {
	return &SendHandler{service: service}
}

// SendSmsRequest is the operator form input. The text limits match what the
// gateway accepts for a single message.
type SendSmsRequest struct {
	Text string `form:"text" json:"text" validate:"required,min=2,max=255"`
}

// SendSms godoc
// @Summary Send a broadcast SMS
// @Description Sends the text to the configured phone list via the SMS gateway and registers the mailing for status tracking
// @Tags mailings
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param text formData string true "Message text (2-255 characters)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /send/ [post]
func (h *SendHandler) SendSms(c echo.Context) error {
	var req SendSmsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	result, err := h.service.SendMailing(c.Request().Context(), req.Text)
	if err != nil {
		var paramsErr *smsc.InvalidParamsError
		switch {
		case errors.As(err, &paramsErr):
			return response.BadRequest(c, err)
		case errors.Is(err, smsc.ErrGatewayUnreachable):
			return response.BadGateway(c, err)
		default:
			return response.InternalServerError(c, err)
		}
	}

	// The viewer consumes the gateway body as-is, including any embedded
	// application-level error codes.
	return c.JSON(http.StatusOK, result)
}
