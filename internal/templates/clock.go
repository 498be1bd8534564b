package templates

import "time"

// Version is stamped into the identity and world-config documents.
const Version = "0.1.0"

// Signature signs every log entry written during setup.
const Signature = "squirrel:installer"

func year(now time.Time) int {
	return now.UTC().Year()
}

// timestamp is second precision, UTC, without a zone suffix.
func timestamp(now time.Time) string {
	return now.UTC().Format("2006-01-02T15:04:05")
}

func date(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}
