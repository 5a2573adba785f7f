package driving

import (
	"context"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

// ChunkHandler receives successive answer fragments in order.
type ChunkHandler func(chunk string)

// Assistant answers questions using web-grounded generation.
type Assistant interface {
	// Ask streams the answer through onChunk and returns the full answer with
	// deduplicated sources. The answer equals the concatenation of every
	// chunk delivered. Mid-stream failures return domain.ErrAssistantFailure;
	// chunks already delivered are not retracted.
	Ask(ctx context.Context, question string, onChunk ChunkHandler) (*domain.AssistantResponse, error)
}
