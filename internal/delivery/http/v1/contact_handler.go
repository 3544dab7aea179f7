package v1

import (
	"io"
	"net/http"

	"contact-relay/internal/delivery/http/middleware"
	"contact-relay/internal/delivery/relay"
	"contact-relay/internal/delivery/response"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds what a single inquiry may upload.
const maxBodyBytes = 64 << 10

type ContactHandler struct {
	relay *relay.Handler
}

// NewContactHandler registers the contact route (public, no auth required).
// Every method is routed to the relay, which answers OPTIONS and rejects
// anything that is not POST itself.
func NewContactHandler(public *gin.RouterGroup, relayHandler *relay.Handler) {
	handler := &ContactHandler{
		relay: relayHandler,
	}

	public.Any("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a website inquiry to the site owner by email. Cross-origin callers must be on the allow-list.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        inquiry  body      domain.InquiryRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Status
// @Failure      400      {object}  response.Error
// @Failure      403      {object}  response.Error
// @Failure      405      {object}  response.Error
// @Failure      422      {object}  response.Error
// @Failure      500      {object}  response.Error
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		// an oversized or unreadable body is handed on as a truncated object
		// so the relay rejects it as Invalid JSON after its origin checks
		body = []byte("{")
	}

	res := h.relay.Handle(c.Request.Context(), relay.Request{
		Method:    c.Request.Method,
		Origin:    c.GetHeader("Origin"),
		Body:      body,
		RequestID: middleware.GetRequestID(c),
		ClientIP:  c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})

	writeResponse(c, res)
}

func writeResponse(c *gin.Context, res relay.Response) {
	for k, v := range res.Headers {
		c.Header(k, v)
	}
	if len(res.Body) == 0 {
		c.Status(res.StatusCode)
		return
	}
	c.Data(res.StatusCode, response.ContentTypeJSON, res.Body)
}
