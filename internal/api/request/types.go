package request

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/scavengerhunt/internal/services/hunt"
)

// Form fields posted by the carrier webhook
const (
	FieldFrom       = "From"
	FieldBody       = "Body"
	FieldSmsSid     = "SmsSid"
	FieldMessageSid = "MessageSid"
)

// ErrMalformedForm is returned when the webhook form cannot be parsed
var ErrMalformedForm = errors.New("malformed webhook form")

// ParseInbound reads an inbound text from query or form values.
// A Body field that is present but empty still counts as a body.
func ParseInbound(r *http.Request) (hunt.InboundMessage, error) {
	if err := r.ParseForm(); err != nil {
		return hunt.InboundMessage{}, ErrMalformedForm
	}

	_, hasBody := r.Form[FieldBody]

	sid := r.Form.Get(FieldSmsSid)
	if sid == "" {
		sid = r.Form.Get(FieldMessageSid)
	}

	return hunt.InboundMessage{
		From:       strings.TrimSpace(r.Form.Get(FieldFrom)),
		Body:       r.Form.Get(FieldBody),
		HasBody:    hasBody,
		MessageSID: sid,
	}, nil
}
