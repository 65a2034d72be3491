package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/mcoot/scavengerhunt/internal/model"
)

// DefaultRegion is used for numbers written without a country code
const DefaultRegion = "US"

// Sanitizer turns raw sender strings from the carrier into canonical E.164 numbers
type Sanitizer struct {
	region string
}

// NewSanitizer creates a sanitizer for the given default region
func NewSanitizer(region string) *Sanitizer {
	if region == "" {
		region = DefaultRegion
	}
	return &Sanitizer{region: strings.ToUpper(region)}
}

// Sanitize returns the E.164 form of the raw number
func (s *Sanitizer) Sanitize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", model.ErrInvalidPhoneNumber
	}

	num, err := phonenumbers.Parse(raw, s.region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidPhoneNumber, err)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
