package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

const maxContentBytes = 1 << 20 // 1 MiB of submitted document text

// ValidateContent bounds the document text submitted for analysis.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	if len(content) > maxContentBytes {
		return fmt.Errorf("content exceeds %d bytes", maxContentBytes)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, tenant)
	if !matched {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidateAnalysisID validates analysis ID format (UUID)
func ValidateAnalysisID(id string) error {
	if id == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}

	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, strings.ToLower(id))
	if !matched {
		return fmt.Errorf("invalid analysis ID format")
	}

	return nil
}

// ValidatePageSize validates pagination size
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max
	}
	return size
}

// ValidatePage validates the page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
