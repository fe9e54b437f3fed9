package views

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"io"
	"smokeless/internal/models"
	"smokeless/internal/services"
	"strings"
	"time"
)

const (
	chartHeight   = 8
	chartMinScale = 10
)

// View renders tracker screens as terminal text.
type View struct {
	renderer *lipgloss.Renderer
	styles   Styles
}

// NewView builds a view writing to w with the given settings theme.
func NewView(w io.Writer, theme string) *View {
	r := lipgloss.NewRenderer(w)
	return &View{
		renderer: r,
		styles:   NewStyles(r, ResolveTheme(theme, r.HasDarkBackground)),
	}
}

func (v *View) Theme() Theme {
	return v.styles.Theme
}

func (v *View) row(label, value string) string {
	return v.styles.Label.Render(label) + v.styles.Value.Render(value)
}

// Today is the main screen: today's count and cost, time since the last
// event and the record button, which shrinks as the streak grows.
func (v *View) Today(snap models.Snapshot, now time.Time) string {
	today := models.DailyRecord{Date: models.DateKey(now)}
	if idx := snap.History.Find(today.Date); idx >= 0 {
		today = snap.History[idx]
	}
	streak := services.DaysSinceLastEvent(snap.History, now)

	lines := []string{
		v.styles.Header.Render(now.Format("Monday, January 2")),
		v.row("Today", fmt.Sprintf("%d cigs", today.Count)),
		v.row("Spent", services.FormatCurrency(snap.Settings.Currency, today.Cost)),
		v.row("Smoke-free", services.SinceLastEvent(snap.LastEventAt, now, streak)),
		v.row("Streak", fmt.Sprintf("%d days", streak)),
		"",
		v.Button(streak),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Button draws the record affordance. Ten size units make one column.
func (v *View) Button(streak int) string {
	width := services.AffordanceSize(streak) / 10
	return v.styles.Button.Width(width).Render("SMOKE")
}

func (v *View) Stats(stats models.Stats, settings models.Settings) string {
	cur := settings.Currency
	cards := []string{
		v.row("Total cigs", fmt.Sprintf("%d", stats.TotalEvents)),
		v.row("Total spent", services.FormatCurrency(cur, stats.TotalCost)),
		v.row("Days tracked", fmt.Sprintf("%d", stats.DaysTracked)),
		v.row("Daily average", fmt.Sprintf("%.1f", stats.WeeklyAverage)),
		v.row("Life lost", services.FormatDuration(stats.LifeLostMinutes)),
		v.row("Money saved", services.FormatCurrency(cur, stats.ProjectedSavings)),
		v.row("Yearly cost", services.FormatCurrency(cur, stats.ProjectedYearlyCost)),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Header.Render("Statistics"),
		v.styles.Card.Render(strings.Join(cards, "\n")),
		"",
		v.Chart(stats.Last7Days),
	)
}

// Chart draws the last seven days as vertical bars scaled to at least 10.
func (v *View) Chart(points []models.ChartPoint) string {
	scale := chartMinScale
	for _, p := range points {
		scale = max(scale, p.Value)
	}

	rows := make([]string, 0, chartHeight+2)
	for level := chartHeight; level >= 1; level-- {
		var b strings.Builder
		for _, p := range points {
			filled := p.Value * chartHeight / scale
			if p.Value > 0 && filled == 0 {
				filled = 1
			}
			cell := "   "
			if filled >= level {
				cell = " █ "
			}
			if p.IsToday {
				b.WriteString(v.styles.BarNow.Render(cell))
			} else {
				b.WriteString(v.styles.Bar.Render(cell))
			}
		}
		rows = append(rows, b.String())
	}

	var values, labels strings.Builder
	for _, p := range points {
		values.WriteString(fmt.Sprintf("%3d", p.Value))
		labels.WriteString(fmt.Sprintf("%3s", p.Label))
	}
	rows = append(rows, v.styles.Muted.Render(values.String()), labels.String())
	return strings.Join(rows, "\n")
}

func (v *View) Timeline(milestones []models.Milestone) string {
	lines := []string{v.styles.Header.Render("Health recovery")}
	for _, m := range milestones {
		mark, style := "○", v.styles.Locked
		if m.Unlocked {
			mark, style = "●", v.styles.Open
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %4s  %s", mark, services.MilestoneTime(m.Minutes), m.Title)))
		lines = append(lines, v.styles.Muted.Render("        "+m.Description))
	}
	return strings.Join(lines, "\n")
}

func (v *View) Settings(s models.Settings) string {
	lines := []string{
		v.row("Currency", s.Currency),
		v.row("Price per pack", services.FormatCurrency(s.Currency, s.PricePerPack)),
		v.row("Pack size", fmt.Sprintf("%d", s.CigsPerPack)),
		v.row("Baseline", fmt.Sprintf("%d per day", s.BaselineCigs)),
		v.row("Theme", s.Theme),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Header.Render("Settings"),
		v.styles.Card.Render(strings.Join(lines, "\n")),
	)
}

// Error renders a rejected operation.
func (v *View) Error(err error) string {
	return v.styles.Warning.Render(err.Error())
}
