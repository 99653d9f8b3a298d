// Safe logging helpers: personal and financial data is masked when the
// service runs in production mode.
package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

var (
	// IsProduction controls masking. In production, emails, amounts and
	// user ids never reach the logs in clear.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"
)

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	amountRegex = regexp.MustCompile(`\b\d+\s*(cents|€|EUR|\$|USD)\b`)
	uuidRegex   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskEmail keeps the first character and the domain: j***@example.com
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// MaskUserID keeps the first 8 characters of a UUID.
func MaskUserID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return "***"
}

func maskMessage(msg string) string {
	msg = emailRegex.ReplaceAllString(msg, "***@***")
	msg = amountRegex.ReplaceAllString(msg, "*** $1")
	msg = uuidRegex.ReplaceAllStringFunc(msg, func(u string) string {
		return u[:8] + "..."
	})
	return msg
}

// SafeLogf behaves like log.Printf but masks sensitive data in production.
func SafeLogf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if IsProduction {
		msg = maskMessage(msg)
	}
	log.Print(msg)
}
