// Safe logging helpers. In release mode emails and IDs are masked so that
// personal data never lands in production logs.
package utils

import (
	"log"
	"os"
)

// IsProduction controls whether sensitive fields are masked.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production"

// MaskEmail masks an email address in production.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// MaskID keeps the first 8 characters of an ID in production.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// LogAuthAction logs an authentication attempt without leaking the email in
// production.
func LogAuthAction(action, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, MaskEmail(email), status)
}
