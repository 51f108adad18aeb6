package state

import "github.com/trendin/postforge/internal/webhook"

// DraftsGenerated is the completion message for GenerateDrafts.
type DraftsGenerated struct {
	Topic  string
	Result *webhook.GenerateResult
	Err    error
}

// PostRefined is the completion message for SendChatMessage.
type PostRefined struct {
	Result *webhook.RefineResult
	Err    error
}

// Greetings shown when the editor opens.
const (
	greetingDraft  = "I'm ready to help you refine this post. What would you like to change?"
	greetingCustom = "I've loaded your draft. How can I help you improve it?"
)

// Canned assistant confirmations, used when the backend sends no
// summary message of its own.
var successReplies = []string{
	"I've updated the post based on your request.",
	"Great! I've made those changes to your post.",
	"Done! Your post has been refined.",
	"Perfect! I've applied your suggestions.",
	"Updated! Check out the new version.",
	"All set! I've enhanced your post as requested.",
}

// Canned assistant apologies for failed refinements.
var errorReplies = []string{
	"Sorry, I couldn't update the post. Please try again.",
	"Oops! Something went wrong. Mind trying that again?",
	"I encountered an issue. Let's give it another shot.",
}
