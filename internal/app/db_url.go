package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL optionally forces disable_prepared_binary_result=yes on the
// connection URL. PgBouncer in transaction pooling mode chokes on prepared
// binary results, so deployments behind it set the toggle.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Has("disable_prepared_binary_result") {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL extracts the database name from either a postgres:// URL or a
// key=value DSN, for the otelsql db.name attribute. Returns "" when the name
// cannot be determined.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(strings.TrimSpace(parsed.Path), "/"); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
