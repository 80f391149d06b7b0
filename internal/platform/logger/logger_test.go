package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsSensitiveKeys(t *testing.T) {
	got := sanitizeKVs([]interface{}{"Authorization", "Bearer abc", "application_id", "app-1", "jwt_secret", "s3cr3t"})
	assert.Equal(t, []interface{}{"Authorization", "[REDACTED]", "application_id", "app-1", "jwt_secret", "[REDACTED]"}, got)
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	got := sanitizeKVs([]interface{}{"status", 200, "orphan"})
	assert.Equal(t, []interface{}{"status", 200, "orphan"}, got)
}

func TestNewNopDoesNotPanic(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.With("component", "test").Info("hello", "token", "x")
	})
}
