package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// HistoryCmd creates the history command listing the account's past
// queries, most recent first.
func HistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past queries",
		Long:  "Lists the authenticated account's query history, most recent first. Requires a login session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runHistory(cmd, limit, outputJSON)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many entries (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	queries, err := api.UserQueries()
	if err != nil {
		return err
	}

	if limit > 0 && len(queries) > limit {
		queries = queries[:limit]
	}

	if outputJSON {
		data, err := json.MarshalIndent(queries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(queries) == 0 {
		fmt.Println("No queries yet")
		return nil
	}

	for _, entry := range queries {
		fmt.Printf("%s  %s\n", entry.Timestamp, entry.Query)
	}
	return nil
}
