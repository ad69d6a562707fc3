package chatui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the chat TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Chat roles.
	UserLabel      lipgloss.Color
	AssistantLabel lipgloss.Color

	// Banner kinds.
	BannerInfo    lipgloss.Color
	BannerSuccess lipgloss.Color
	BannerError   lipgloss.Color

	// Image cards.
	CardBorder         lipgloss.Color
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
	ScoreText          lipgloss.Color
	LinkText           lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	UserLabel:      lipgloss.Color("75"),  // blue
	AssistantLabel: lipgloss.Color("114"), // green

	BannerInfo:    lipgloss.Color("245"), // gray
	BannerSuccess: lipgloss.Color("114"), // green
	BannerError:   lipgloss.Color("196"), // red

	CardBorder:         lipgloss.Color("240"),
	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),
	ScoreText:          lipgloss.Color("220"), // amber
	LinkText:           lipgloss.Color("141"), // light purple

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
}
