package client

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pitchside/cricpix/internal/chatui"
	"github.com/pitchside/cricpix/internal/config"
	"github.com/pitchside/cricpix/internal/session"
)

// ChatCmd creates the chat command: the interactive terminal UI.
func ChatCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long:  "Opens the full-screen chat UI for querying cricket images, rating results, and adjusting the similarity threshold.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, logFile)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write background logs as JSON to this file (default from CRICPIX_LOG_FILE)")

	return cmd
}

func runChat(cmd *cobra.Command, logFile string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if logFile == "" {
		logFile = cfg.LogFile
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}
	api.SetTimeout(cfg.HTTPTimeout)

	// Logs must not hit the terminal while the alt-screen is up. With
	// no log file configured, records are discarded.
	logger, closeLog, err := openChatLogger(logFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	state := session.New(cfg.SimilarityThreshold)
	model := chatui.New(api, state, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}

// openChatLogger builds the background logger for the chat UI: a JSON
// handler on the given file, or a discard handler when no path is set.
func openChatLogger(path string, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if path == "" {
		handler := slog.NewJSONHandler(io.Discard, nil)
		return slog.New(handler), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { file.Close() }, nil
}
