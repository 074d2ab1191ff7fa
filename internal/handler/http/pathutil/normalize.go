package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes. Any single segment under /content
// collapses to :id, including malformed ids that are answered with 400.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/content/[^/]+$`), Template: "/content/:id"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath maps request paths to route templates so metric labels and
// span names stay low-cardinality.
//
//	NormalizePath("/content/123")       // "/content/:id"
//	NormalizePath("/content/123/")      // "/content/:id"
//	NormalizePath("/content?page=2")    // "/content"
//	NormalizePath("/health")            // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
