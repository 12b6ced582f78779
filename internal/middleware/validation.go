package middleware

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
)

// Parameter defaults and bounds for the trend endpoints. The service layer
// assumes these have been enforced; nothing below the handler re-checks them.
const (
	DefaultSurgeLimit   = 20
	MaxSurgeLimit       = 100
	DefaultSurgeDays    = 3
	MaxSurgeDays        = 30
	DefaultVelocityDays = 1.0
	MaxVelocityDays     = 7.0

	DefaultHotLimit          = 20
	DefaultCategoryListLimit = 100
	MaxCategoryListLimit     = 500
	DefaultRecDays           = 14
	MaxRecDays               = 90

	MaxChannelIDLen = 64 // channel.channel_id VARCHAR(64)
	MaxCategoryLen  = 50
)

var (
	// platformRe matches platform identifiers: lowercase alphanumeric.
	platformRe = regexp.MustCompile(`^[a-z0-9_]+$`)
	// channelIDRe matches channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePlatform checks that a platform is well-formed and supported.
func ValidatePlatform(platform string, allowed []string) (string, string) {
	platform = strings.TrimSpace(strings.ToLower(platform))
	if platform == "" {
		return "", "platform is required"
	}
	if !platformRe.MatchString(platform) {
		return "", "platform contains invalid characters"
	}
	for _, a := range allowed {
		if platform == a {
			return platform, ""
		}
	}
	return "", "unsupported platform: " + platform
}

// ValidateOptionalPlatform allows an absent platform filter but rejects a
// malformed or unsupported one.
func ValidateOptionalPlatform(platform string, allowed []string) (string, string) {
	if strings.TrimSpace(platform) == "" {
		return "", ""
	}
	return ValidatePlatform(platform, allowed)
}

// ValidateLimit checks the result limit against [1, max].
func ValidateLimit(limit, max int) (int, string) {
	if limit < 1 {
		return 0, "limit must be at least 1"
	}
	if limit > max {
		return 0, "limit must be at most " + strconv.Itoa(max)
	}
	return limit, ""
}

// ValidateDays checks a lookback window against [1, max].
func ValidateDays(days, max int) (int, string) {
	if days < 1 {
		return 0, "days must be at least 1"
	}
	if days > max {
		return 0, "days must be at most " + strconv.Itoa(max)
	}
	return days, ""
}

// ValidateVelocityDays checks the velocity window divisor against (0, 7].
func ValidateVelocityDays(v float64) (float64, string) {
	if v <= 0 {
		return 0, "velocity_days must be greater than 0"
	}
	if v > MaxVelocityDays {
		return 0, "velocity_days must be at most 7"
	}
	return v, ""
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 64 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateCategory checks that a category name is non-empty and bounded.
// Category names may be non-ASCII, so only the length is constrained.
func ValidateCategory(category string) (string, string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", "category is required"
	}
	if utf8.RuneCountInString(category) > MaxCategoryLen {
		return "", "category must be at most 50 characters"
	}
	if strings.ContainsAny(category, "/\x00") {
		return "", "category contains invalid characters"
	}
	return category, ""
}
