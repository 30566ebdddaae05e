package validation

import (
	"net/url"
	"strings"
)

// templatePlaceholders are the positional slots a lookup URL template may use.
var templatePlaceholders = []string{"{0}", "{1}", "{2}", "{3}"}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	// Parse the URL
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	// Ensure host is present
	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateURLTemplate checks a lookup URL template. The template must carry
// the app id ({0}) and query ({3}) placeholders and form a valid http(s) URL
// once they are filled in.
func ValidateURLTemplate(template string) (bool, string) {
	if template == "" {
		return false, "URL template is required"
	}
	if !strings.Contains(template, "{0}") {
		return false, "URL template must contain the {0} application id placeholder"
	}
	if !strings.Contains(template, "{3}") {
		return false, "URL template must contain the {3} query placeholder"
	}

	pairs := make([]string, 0, len(templatePlaceholders)*2)
	for _, p := range templatePlaceholders {
		pairs = append(pairs, p, "x")
	}
	return ValidateURL(strings.NewReplacer(pairs...).Replace(template))
}
