package views

import (
	"fmt"
	"io"
	"math/rand/v2"
	"smokeless/internal/models"
	"smokeless/internal/services"
)

var disappointmentMessages = []string{
	"Oh no...",
	"Resetting streak...",
	"Back to square one.",
	"Don't give up.",
	"Try again tomorrow.",
	"Stay strong next time.",
	"A minor setback.",
	"It happens.",
	"Keep fighting.",
}

// Notifier prints a disappointment message and the refreshed day after every
// recorded event.
type Notifier struct {
	out      io.Writer
	view     *View
	currency func() string
	pick     func(n int) int
}

func NewNotifier(out io.Writer, view *View, currency func() string) *Notifier {
	return &Notifier{out: out, view: view, currency: currency, pick: rand.IntN}
}

func (n *Notifier) EventRecorded(today models.DailyRecord) {
	msg := disappointmentMessages[n.pick(len(disappointmentMessages))]
	fmt.Fprintln(n.out, n.view.styles.Warning.Render(msg))
	fmt.Fprintln(n.out, n.view.row("Today", fmt.Sprintf("%d cigs  %s", today.Count, services.FormatCurrency(n.currency(), today.Cost))))
}

var _ services.EventNotifier = (*Notifier)(nil)
