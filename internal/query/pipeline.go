package query

import (
	"strings"

	"github.com/pitchside/cricpix/internal/domain"
	"github.com/pitchside/cricpix/internal/session"
)

// Phase is the pipeline's position in the two-request protocol.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingPrimary
	PhaseAwaitingFallback
	PhaseDone
	PhaseFailed
)

// User-visible notice texts. Kept verbatim from the product copy.
const (
	searchingSimilarText = "Looking for similar images that might be relevant to your query..."
	foundSimilarText     = "Found some similar images that might be relevant:"
	tryDifferentText     = "Please try a different search term for cricket images."
	fallbackErrorText    = "An error occurred while searching for similar images."
	genericErrorText     = "An error occurred while processing your query. Please try again."
	fallbackIntroText    = "Here are some images that might be relevant to your query:"
)

// BannerKind classifies a notice for presentation.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner is a transient notice shown between chat messages.
type Banner struct {
	Kind BannerKind
	Text string
}

// Message is an assistant chat message ready for rendering: response
// text plus the raw, unfiltered image set it arrived with.
type Message struct {
	Text           string
	Images         []domain.ImageResult
	UsedSimilarity bool
}

// Step tells the caller what to do after feeding a response into the
// pipeline: which banners to show, which assistant message to render,
// and whether to issue the similarity fallback request. The caller
// owns the transport; the pipeline only sequences it.
type Step struct {
	Banners []Banner
	Message *Message

	// IssueFallback is set when the caller must POST the same query
	// again with force_similarity=true. At most one fallback is ever
	// requested per pipeline, and only after the primary response has
	// been fully processed.
	IssueFallback bool
}

// Pipeline runs one chat submission through the primary request and,
// when policy allows, the similarity fallback. It owns the turn
// accounting in the session state. A Pipeline is single-use: create
// one per submission.
type Pipeline struct {
	state *session.State
	phase Phase
	query string
}

// NewPipeline creates an idle pipeline bound to the session state.
func NewPipeline(state *session.State) *Pipeline {
	return &Pipeline{state: state}
}

// Phase returns the pipeline's current phase.
func (p *Pipeline) Phase() Phase {
	return p.phase
}

// Query returns the trimmed query this pipeline is processing.
func (p *Pipeline) Query() string {
	return p.query
}

// Start validates the query and records the user turn. Returns false
// for empty (or all-whitespace) input, in which case the submission
// is a silent no-op and the pipeline stays idle. On success the
// caller must issue the primary request with force_similarity=false.
func (p *Pipeline) Start(query string) bool {
	if p.phase != PhaseIdle {
		return false
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return false
	}

	p.query = trimmed
	p.state.SetCurrentQuery(trimmed)
	p.state.AppendTurn(session.Turn{Role: session.RoleUser, Content: trimmed})
	p.phase = PhaseAwaitingPrimary
	return true
}

// ShouldFallback implements the fallback policy gate: a similarity
// re-search fires only when the primary pass produced zero images and
// the response text is plain prose: not an explicit no-match answer,
// not a table, and not a counting answer. Tabular and counting
// responses are definitionally complete.
func ShouldFallback(resp *domain.QueryResponse) bool {
	if resp == nil || !resp.Success {
		return false
	}
	if len(resp.SimilarImages) > 0 {
		return false
	}
	text := resp.ResponseText
	return !IsNoMatchResponse(text) && !IsTabularResponse(text) && !IsCountingResponse(text)
}

// HandlePrimary consumes the primary response (or transport error)
// and returns the resulting step. Calling it in any phase other than
// AwaitingPrimary returns an empty step; this is how stale responses
// from an abandoned submission are dropped.
func (p *Pipeline) HandlePrimary(resp *domain.QueryResponse, err error) Step {
	if p.phase != PhaseAwaitingPrimary {
		return Step{}
	}

	if err != nil {
		p.phase = PhaseFailed
		return Step{Banners: []Banner{{Kind: BannerError, Text: genericErrorText}}}
	}
	if !resp.Success {
		p.phase = PhaseFailed
		text := resp.Message
		if text == "" {
			text = genericErrorText
		}
		return Step{Banners: []Banner{{Kind: BannerError, Text: text}}}
	}

	p.state.AppendTurn(session.Turn{
		Role:           session.RoleAssistant,
		Content:        resp.ResponseText,
		ImageCount:     len(resp.SimilarImages),
		UsedSimilarity: resp.UsedSimilarity,
	})

	step := Step{
		Message: &Message{
			Text:           resp.ResponseText,
			Images:         resp.SimilarImages,
			UsedSimilarity: resp.UsedSimilarity,
		},
	}

	if ShouldFallback(resp) {
		p.phase = PhaseAwaitingFallback
		step.IssueFallback = true
		step.Banners = append(step.Banners, Banner{Kind: BannerInfo, Text: searchingSimilarText})
		return step
	}

	p.phase = PhaseDone
	return step
}

// HandleFallback consumes the fallback response (or transport error).
// A fallback that fails or comes back empty downgrades the interim
// banner to a "try a different search" notice; it is never retried.
func (p *Pipeline) HandleFallback(resp *domain.QueryResponse, err error) Step {
	if p.phase != PhaseAwaitingFallback {
		return Step{}
	}
	p.phase = PhaseDone

	if err != nil {
		return Step{Banners: []Banner{{Kind: BannerError, Text: fallbackErrorText}}}
	}
	if !resp.Success || len(resp.SimilarImages) == 0 {
		return Step{Banners: []Banner{{Kind: BannerInfo, Text: tryDifferentText}}}
	}

	p.state.AppendTurn(session.Turn{
		Role:           session.RoleAssistant,
		Content:        fallbackIntroText,
		ImageCount:     len(resp.SimilarImages),
		UsedSimilarity: true,
	})

	return Step{
		Banners: []Banner{{Kind: BannerSuccess, Text: foundSimilarText}},
		Message: &Message{
			Text:           fallbackIntroText,
			Images:         resp.SimilarImages,
			UsedSimilarity: true,
		},
	}
}
