// Package config reads typed settings from environment variables.
// A malformed value never stops startup: the default is used and a warning logged.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// parse reads key with conv. Unset or blank keys return def silently.
func parse[T any](key string, def T, conv func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := conv(raw)
	if err != nil {
		slog.Warn("ignoring malformed environment variable",
			slog.String("key", key),
			slog.String("value", raw),
			slog.String("default", fmt.Sprint(def)),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns key's value, or def when it is unset or blank.
func GetEnvString(key, def string) string {
	return parse(key, def, func(s string) (string, error) { return s, nil })
}

// GetEnvInt parses key as a base-10 integer.
func GetEnvInt(key string, def int) int {
	return parse(key, def, strconv.Atoi)
}

// GetEnvFloat parses key as a float64, e.g. IDENTITY_RATE_LIMIT=2.5.
func GetEnvFloat(key string, def float64) float64 {
	return parse(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// GetEnvBool accepts the spellings strconv.ParseBool does ("1", "true", "F", ...).
func GetEnvBool(key string, def bool) bool {
	return parse(key, def, strconv.ParseBool)
}

// GetEnvDuration parses key with time.ParseDuration, so a unit is required ("30s", not "30").
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return parse(key, def, time.ParseDuration)
}

// GetEnvStringList splits key on commas, trimming entries and dropping empty ones.
// A value with no entries left returns def.
//
//	CORS_ALLOWED_ORIGINS="https://a.example, https://b.example"
func GetEnvStringList(key string, def []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
