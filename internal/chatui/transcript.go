package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pitchside/cricpix/internal/imagecard"
	"github.com/pitchside/cricpix/internal/query"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.focus == focusHistory {
		b.WriteString(m.renderHistoryOverlay())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(m.renderInputLine())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m Model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	title := headerStyle.Render("Cricket Image Chat")
	right := faint.Render(m.thresholdLabel())

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (m Model) renderInputLine() string {
	prompt := "> "
	if m.focus != focusInput {
		prompt = "  "
	}
	return prompt + m.input.View()
}

func (m Model) renderStatusBar() string {
	if m.notice != "" {
		color := m.theme.BannerSuccess
		if m.noticeErr {
			color = m.theme.BannerError
		}
		return lipgloss.NewStyle().Foreground(color).Render(m.notice)
	}

	help := lipgloss.NewStyle().Foreground(m.theme.HelpText)
	if m.pending {
		return help.Render("Thinking...")
	}

	switch m.focus {
	case focusInput:
		return help.Render("Enter send · Tab results pane · C-c quit")
	case focusResults:
		return help.Render("n/N image · +/- rate · [/] threshold · s save urls · h history · Tab input · C-c quit")
	case focusHistory:
		return help.Render("j/k move · Enter replay · Esc close")
	}
	return ""
}

// renderTranscript renders all entries top to bottom for the viewport.
func (m Model) renderTranscript() string {
	userStyle := lipgloss.NewStyle().Foreground(m.theme.UserLabel).Bold(true)
	assistantStyle := lipgloss.NewStyle().Foreground(m.theme.AssistantLabel).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText)

	var sections []string
	for i := range m.entries {
		e := &m.entries[i]
		switch e.kind {
		case entryUser:
			sections = append(sections, userStyle.Render("You: ")+textStyle.Render(e.text))

		case entryBanner:
			sections = append(sections, m.renderBanner(e))

		case entryAssistant:
			section := assistantStyle.Render("Bot: ") + textStyle.Render(e.text)
			if e.view != nil {
				section += "\n" + m.renderResultView(e.view, e == m.latestView())
			}
			sections = append(sections, section)
		}
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) renderBanner(e *entry) string {
	var color lipgloss.Color
	switch e.bannerKind {
	case query.BannerSuccess:
		color = m.theme.BannerSuccess
	case query.BannerError:
		color = m.theme.BannerError
	default:
		color = m.theme.BannerInfo
	}
	return lipgloss.NewStyle().Foreground(color).Italic(true).Render(e.text)
}

// renderResultView renders one result set: header, optional note, then
// the cards. Card selection only shows on the latest set, where the
// feedback bindings apply.
func (m Model) renderResultView(view *query.ResultView, isLatest bool) string {
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	if view.EmptyDirective != "" {
		return faint.Render(view.EmptyDirective)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Render(view.Header))
	if view.Note != "" {
		b.WriteString("\n")
		b.WriteString(faint.Render(view.Note))
	}

	for i, img := range view.Display {
		card := imagecard.Build(img, i, m.state)
		selected := isLatest && i == m.selectedCard
		b.WriteString("\n")
		b.WriteString(m.renderCard(card, selected))
	}

	if imagecard.ShouldOfferManifest(len(view.Display)) {
		b.WriteString("\n")
		b.WriteString(faint.Render("Press s to save all image URLs to a file."))
	}

	return b.String()
}

// renderCard renders one image card as an indented block.
func (m Model) renderCard(card imagecard.Card, selected bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(m.theme.ScoreText)
	linkStyle := lipgloss.NewStyle().Foreground(m.theme.LinkText)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	titleStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText).Bold(true)
	if selected {
		titleStyle = titleStyle.
			Background(m.theme.SelectedBackground).
			Foreground(m.theme.SelectedForeground)
	}

	var b strings.Builder
	title := fmt.Sprintf("%d. %s", card.Index+1, card.Caption)
	b.WriteString(titleStyle.Render(title))
	b.WriteString(" ")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%.0f%%", card.SimilarityScore*100)))

	if card.DisplayURL != "" {
		b.WriteString("\n   ")
		b.WriteString(linkStyle.Render(card.DisplayURL))
	} else {
		b.WriteString("\n   ")
		b.WriteString(faint.Render("Image not available"))
	}

	for _, field := range card.ImportantFields {
		b.WriteString(fmt.Sprintf("\n   %s: %s", field.Label, field.Value))
	}

	if len(card.AlternativeLinks) > 0 {
		b.WriteString("\n   ")
		b.WriteString(faint.Render(fmt.Sprintf("%d alternative links available", len(card.AlternativeLinks))))
	}

	switch card.Feedback {
	case imagecard.FeedbackAvailable:
		if selected {
			b.WriteString("\n   ")
			b.WriteString(faint.Render("Was this helpful? Press + or -"))
		}
	case imagecard.FeedbackRecorded:
		b.WriteString("\n   ")
		b.WriteString(lipgloss.NewStyle().
			Foreground(m.theme.BannerSuccess).
			Render("Thanks for your feedback!"))
	}

	return b.String()
}

// renderHistoryOverlay renders the query history list in place of the
// transcript.
func (m Model) renderHistoryOverlay() string {
	headerStyle := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground)

	lines := []string{headerStyle.Render("Your Query History"), ""}

	if len(m.historyEntries) == 0 {
		lines = append(lines, faint.Render("No queries yet"))
	}

	visible := m.viewport.Height - 2
	for i, h := range m.historyEntries {
		if i >= visible {
			break
		}
		line := fmt.Sprintf("%s  %s", h.Timestamp, h.Query)
		if i == m.historyCursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	// Pad to the viewport height so the input line stays put.
	for len(lines) < m.viewport.Height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:m.viewport.Height], "\n")
}
