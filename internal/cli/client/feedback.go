package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pitchside/cricpix/internal/domain"
)

// FeedbackCmd creates the feedback command for rating an image result
// outside the chat UI.
func FeedbackCmd() *cobra.Command {
	var (
		docID    string
		imageURL string
		queryFor string
		negative bool
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Rate an image result",
		Long:  "Submits a +1/-1 rating for an image, identified by its document ID and URL, against the query that surfaced it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedback(cmd, docID, imageURL, queryFor, negative)
		},
	}

	cmd.Flags().StringVar(&docID, "doc-id", "", "Document ID of the image (shown on its card)")
	cmd.Flags().StringVar(&imageURL, "url", "", "Image URL")
	cmd.Flags().StringVar(&queryFor, "query", "", "The query that produced the image")
	cmd.Flags().BoolVar(&negative, "negative", false, "Submit a negative rating instead of positive")

	cmd.MarkFlagRequired("doc-id")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("query")

	return cmd
}

func runFeedback(cmd *cobra.Command, docID, imageURL, queryFor string, negative bool) error {
	rating := domain.RatingPositive
	if negative {
		rating = domain.RatingNegative
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	req := domain.FeedbackRequest{
		DocID:    docID,
		ImageURL: imageURL,
		Rating:   rating,
		Query:    queryFor,
	}
	if err := api.SubmitFeedback(req); err != nil {
		return err
	}

	fmt.Println("Thanks for your feedback!")
	return nil
}
