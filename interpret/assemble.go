package interpret

import (
	"time"

	"github.com/google/uuid"
)

// BuildResult combines the original message, a validated model response,
// and the slug map into the final Result. Metrics and red flags pass
// through unchanged, red flag ordering is preserved, and slugs attach only
// for characters present in slugMap. The id and timestamp are freshly
// generated, so repeated calls with identical inputs still produce distinct
// results.
func BuildResult(message string, resp ModelResponse, slugMap map[string]string) Result {
	emojis := make([]EmojiMeaning, len(resp.Emojis))
	for i, e := range resp.Emojis {
		em := EmojiMeaning{Character: e.Character, Meaning: e.Meaning}
		if slug, ok := slugMap[e.Character]; ok {
			em.Slug = slug
		}
		emojis[i] = em
	}

	return Result{
		ID:             newResultID(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Message:        message,
		Emojis:         emojis,
		Interpretation: resp.Interpretation,
		Metrics:        resp.Metrics,
		RedFlags:       resp.RedFlags,
	}
}

func newResultID() string {
	return "int_" + uuid.NewString()
}
