// Package writers serializes annotated rows.
//
// Each writer runs in its own goroutine behind a channel: tab-separated rows
// (the original columns plus the new one) or JSON lines in the pkg/api v1
// schema.
package writers
