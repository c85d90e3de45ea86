package ui

import (
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StopwatchTickMsg is sent to update the animated waiting display
type StopwatchTickMsg time.Time

// thinkingVerbs are status messages that cycle while waiting for the tutor
var thinkingVerbs = []string{
	"Thinking",
	"Reading",
	"Pondering",
	"Considering",
	"Reflecting",
	"Composing",
	"Proofreading",
	"Conjugating",
	"Paraphrasing",
	"Rephrasing",
	"Drafting",
	"Spelling",
	"Punctuating",
	"Parsing",
	"Translating",
}

// randomThinkingVerb returns a random verb from the list
func randomThinkingVerb() string {
	return thinkingVerbs[rand.Intn(len(thinkingVerbs))]
}

// spinnerFrames are the characters used for the shimmering spinner animation
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// renderSpinner renders the shimmering spinner with the thinking verb and
// the elapsed time, for example "✺ Pondering... 3s".
func renderSpinner(verb string, frameIdx int, elapsed time.Duration) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]

	spinnerStyle := lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)

	verbStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Italic(true)

	return spinnerStyle.Render(frame) + " " + verbStyle.Render(verb+"...") + " " +
		StatusMutedStyle.Render(formatElapsed(elapsed))
}

// formatElapsed formats a duration for display (e.g., "12s", "1m30s")
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%ds", secs/60, secs%60)
}

// SetWaiting sets the waiting state. Entering the waiting state picks a new
// verb and restarts the stopwatch.
func (c *Chat) SetWaiting(waiting bool) {
	if waiting && !c.waiting {
		c.waitStartTime = time.Now()
		c.waitingVerb = randomThinkingVerb()
		c.spinnerIdx = 0
	}
	c.waiting = waiting
	c.updateContent()
}

// IsWaiting returns whether we're waiting for a response
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// advanceSpinner moves the spinner to its next frame while waiting.
// The app owns the tick loop and keeps it running while anything animates.
func (c *Chat) advanceSpinner() {
	if !c.waiting {
		return
	}
	c.spinnerIdx = (c.spinnerIdx + 1) % len(spinnerFrames)
	c.updateContent()
}
