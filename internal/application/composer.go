package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/mira/internal/domain"
	"github.com/bnema/mira/internal/observability"
	"github.com/bnema/mira/internal/ports"
)

// SystemInstruction sets the stylist persona for the whole session. It is
// sent once when the session opens and never changes afterwards.
const SystemInstruction = "You are MiraAI, a highly perceptive, warm, and expert personal fashion stylist. " +
	"Your responses must be natural, engaging, concise, and suitable for **voice output**. " +
	"Your core task is to analyze, compliment, and suggest improvements to a user's outfit based on the detected items, colors, and style." +
	"\n\n" +
	"**CONVERSATION FLOW:**\n" +
	"1. **Introduction:** Start the session by introducing yourself as the personal AI fashion stylist, MiraAI, and immediately ask the user: 'What fashion question do you have for me?'\n" +
	"2. **Styling Response:** When providing feedback, first **positively acknowledge** the user's current outfit or question. Then, provide constructive feedback on the fit or style. " +
	"If the wardrobe holds only generic items like 'person' or 'TV', politely ask the user to show a specific item of clothing.\n" +
	"3. **Suggestion Engine:** Base outfit feedback on the wardrobe database and apply color theory (complementary, analogous, monochromatic schemes) " +
	"and contrast rules (black pants and a red top provide strong contrast; beige offers neutrality).\n" +
	"4. **Recommendations:** Always offer 1-3 specific, actionable suggestions for improving or accessorizing the outfit " +
	"(for example 'Try a white top instead', 'Add a silver necklace' or 'Switch to a pair of black flats')." +
	"\n\n" +
	"**STYLING AND COLOR RULES (Crucial):**\n" +
	"A. **Color Harmony:** Mention how colors contrast or complement each other.\n" +
	"B. **Wardrobe Constraints:** Only use colors and items that are realistically found in a wardrobe. Never suggest items that are only detected as 'person' or 'TV'.\n" +
	"C. **Classification:** Detected items fall into categories: tops, shirts, pants, skirts, dresses, jackets, shoes, accessories." +
	"\n\n" +
	"NEVER mention the word 'prompt' or 'virtual wardrobe summary' or 'YOLO'."

type LiveStatusSource interface {
	LiveStatus() string
}

// GroundingMessage wraps a user utterance with what the camera sees and what
// the wardrobe holds. Without a live source the camera line is left out.
func GroundingMessage(utterance, live, summary string, hasLive bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**USER COMMAND:** '%s'.\n", utterance)
	if hasLive {
		fmt.Fprintf(&b, "**CURRENT LIVE OUTFIT (Visible in camera):** %s\n", live)
	}
	b.WriteString("**WARDROBE DATABASE (FOR RECOMMENDATIONS):**\n")
	b.WriteString(summary)

	return b.String()
}

type Composer struct {
	session  ports.GenerationSession
	wardrobe *WardrobeService
	live     LiveStatusSource
	log      *observability.Logger
}

// NewComposer opens one generation session bound to SystemInstruction. live
// may be nil when no camera is running.
func NewComposer(ctx context.Context, generator ports.Generator, wardrobe *WardrobeService, live LiveStatusSource, log *observability.Logger) (*Composer, error) {
	if log == nil {
		log = observability.NewNop()
	}

	session, err := generator.NewSession(ctx, SystemInstruction)
	if err != nil {
		return nil, fmt.Errorf("open generation session: %w", err)
	}

	return &Composer{
		session:  session,
		wardrobe: wardrobe,
		live:     live,
		log:      log.With("component", "composer"),
	}, nil
}

// Respond never returns an error: backend failures become the apology reply.
func (c *Composer) Respond(ctx context.Context, utterance string) string {
	summary := c.wardrobe.Summarize(ctx)

	var live string
	if c.live != nil {
		live = c.live.LiveStatus()
	}

	message := GroundingMessage(utterance, live, summary, c.live != nil)

	reply, err := c.session.Send(ctx, message)
	if err != nil {
		kind := domain.ClassifyFailure(err)
		c.log.Error("generate reply", "failure", string(kind), "error", err)
		return domain.FallbackText(kind)
	}

	return reply
}
