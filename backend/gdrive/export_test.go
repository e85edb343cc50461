package gdrive

// This file exposes package-internal helpers to the external gdrive_test package.

import "github.com/Jumpaku/go-drivestore"

func EscapeQuery(s string) string {
	return escapeQuery(s)
}

func BuildQuery(parentID string, filter drivestore.Filter) string {
	return buildQuery(parentID, filter)
}
