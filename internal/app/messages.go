package app

import "time"

// TickMsg triggers a frame update for the spinner and device list.
type TickMsg time.Time

// EvictMsg triggers device eviction.
type EvictMsg time.Time

// PublishResultMsg carries the outcome of the in-flight publish.
type PublishResultMsg struct {
	Err error
}

// NoticeExpiredMsg hides the success notice it was scheduled for.
type NoticeExpiredMsg struct {
	Seq int
}
