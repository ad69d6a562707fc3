package client

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchside/cricpix/internal/config"
	"github.com/pitchside/cricpix/internal/domain"
	"github.com/pitchside/cricpix/internal/imagecard"
	"github.com/pitchside/cricpix/internal/query"
	"github.com/pitchside/cricpix/internal/session"
)

// AskCmd creates the ask command: a one-shot query through the full
// pipeline, including the automatic similarity fallback.
func AskCmd() *cobra.Command {
	var (
		threshold float64
		saveURLs  string
	)

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask for cricket images",
		Long:  "Submits a query to the chatbot backend and prints the response with any matching image cards.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(cmd, args[0], threshold, saveURLs, outputJSON)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", -1, "Similarity threshold in [0,1] (default from config)")
	cmd.Flags().StringVar(&saveURLs, "save-urls", "", "Write a plain-text URL manifest of the results to this file")

	return cmd
}

// askResult is the JSON output shape of a one-shot ask.
type askResult struct {
	Query             string                `json:"query"`
	Primary           *domain.QueryResponse `json:"primary"`
	FallbackAttempted bool                  `json:"fallback_attempted"`
	Fallback          *domain.QueryResponse `json:"fallback,omitempty"`
}

func runAsk(cmd *cobra.Command, queryText string, threshold float64, saveURLs string, outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if threshold < 0 {
		threshold = cfg.SimilarityThreshold
	}
	if threshold > 1 {
		return fmt.Errorf("threshold %.2f out of range [0,1]", threshold)
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}
	api.SetTimeout(cfg.HTTPTimeout)

	state := session.New(threshold)
	pipeline := query.NewPipeline(state)
	if !pipeline.Start(queryText) {
		// Empty input is a silent no-op, same as the chat surface.
		return nil
	}

	result := askResult{Query: pipeline.Query()}

	primary, err := api.Query(domain.QueryRequest{Query: pipeline.Query()})
	step := pipeline.HandlePrimary(primary, err)
	result.Primary = primary

	if !outputJSON {
		printBanners(step.Banners)
		if step.Message != nil {
			printMessage(state, pipeline.Query(), *step.Message, threshold, saveURLs)
		}
	}

	if step.IssueFallback {
		result.FallbackAttempted = true
		fallback, err := api.Query(domain.QueryRequest{Query: pipeline.Query(), ForceSimilarity: true})
		fallbackStep := pipeline.HandleFallback(fallback, err)
		result.Fallback = fallback

		if !outputJSON {
			printBanners(fallbackStep.Banners)
			if fallbackStep.Message != nil {
				printMessage(state, pipeline.Query(), *fallbackStep.Message, threshold, saveURLs)
			}
		}
	}

	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
	}

	return nil
}

func printBanners(banners []query.Banner) {
	for _, banner := range banners {
		switch banner.Kind {
		case query.BannerError:
			fmt.Fprintf(os.Stderr, "error: %s\n", banner.Text)
		default:
			fmt.Println(banner.Text)
		}
	}
}

func printMessage(state *session.State, queryText string, msg query.Message, threshold float64, saveURLs string) {
	fmt.Println(msg.Text)

	if len(msg.Images) == 0 {
		return
	}

	view := query.NewResultView(queryText, msg, threshold)
	if msg.UsedSimilarity {
		view = view.WithThreshold(threshold)
		if view.EmptyDirective != "" {
			fmt.Println(view.EmptyDirective)
			return
		}
	}
	fmt.Printf("\n%s\n", view.Header)
	if view.Note != "" {
		fmt.Println(view.Note)
	}
	fmt.Println()

	for i, img := range view.Display {
		card := imagecard.Build(img, i, state)
		printCard(card)
		if i < len(view.Display)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	if saveURLs != "" {
		if err := os.WriteFile(saveURLs, []byte(imagecard.Manifest(view.Images())), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write manifest: %v\n", err)
		} else {
			fmt.Printf("\nWrote URL manifest to %s\n", saveURLs)
		}
	} else if imagecard.ShouldOfferManifest(len(view.Display)) {
		fmt.Println("\nLarge result set: use --save-urls <file> to export the image URLs.")
	}
}

func printCard(card imagecard.Card) {
	title := card.Caption
	if title == "" {
		title = card.PlayerName
	}
	fmt.Printf("%d. %s (%.2f)\n", card.Index+1, title, card.SimilarityScore)

	if card.DisplayURL != "" {
		fmt.Printf("   Image: %s\n", card.DisplayURL)
	} else {
		fmt.Println("   Image: not available")
	}

	for _, field := range card.ImportantFields {
		fmt.Printf("   %s: %s\n", field.Label, field.Value)
	}
	for _, field := range card.ExtraFields {
		fmt.Printf("   %s: %s\n", field.Label, field.Value)
	}

	if len(card.AlternativeLinks) > 0 {
		fmt.Println("   Alternative links:")
		for _, link := range card.AlternativeLinks {
			fmt.Printf("     %s: %s\n", link.Label, link.URL)
		}
	}

	if card.DocID != "" {
		fmt.Printf("   ID: %s\n", card.DocID)
	}
}
