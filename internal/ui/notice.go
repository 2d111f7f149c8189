package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	SuccessNoticeText = "Device has been updated"
	failurePrefix     = "Upload failed: "
)

// RenderNotice renders the right-aligned notice line. Failure wins over
// success; an empty string means no notice.
func RenderNotice(width int, success bool, failure string) string {
	var box string
	switch {
	case failure != "":
		box = StyleNoticeFailure.Render(failurePrefix + failure)
	case success:
		box = StyleNoticeSuccess.Render(SuccessNoticeText)
	default:
		return ""
	}

	gap := width - lipgloss.Width(box) - 1
	if gap < 0 {
		gap = 0
	}
	return strings.Repeat(" ", gap) + box
}
