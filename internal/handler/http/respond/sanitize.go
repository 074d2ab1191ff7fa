package respond

import "regexp"

var (
	// user:password@ inside postgres:// and redis:// URLs
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
	// key=value DSN form used by libpq
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)(\S+)`)
	bearerPattern     = regexp.MustCompile(`(?i)(bearer\s+)\S+`)
	// three base64url segments
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)
)

// SanitizeError returns err's message with credentials and tokens masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	return msg
}
