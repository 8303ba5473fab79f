package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/coachmeplay/cmp/internal/api"
)

// FeedbackDetail renders a single coach feedback.
type FeedbackDetail struct {
	*tview.TextView
}

// NewFeedbackDetail creates a new feedback detail view.
func NewFeedbackDetail() *FeedbackDetail {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true).SetTitle(" Feedback ")

	return &FeedbackDetail{TextView: tv}
}

// Update renders the feedback.
func (fd *FeedbackDetail) Update(fb *api.Feedback) {
	fd.Clear()
	if fb == nil {
		return
	}

	rating := fb.PerformanceRating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	stars := strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	_, _ = fmt.Fprintf(fd, "[::b]%s[-:-:-]  %s  [::d]%s[-:-:-]\n\n%s",
		sanitizeForTerminal(fb.CoachName), stars, formatTime(fb.CreatedAt), sanitizeForTerminal(fb.FeedbackText))
}
