package minutes

import (
	"context"
	"fmt"

	"meeting-minutes-pipeline/internal/models"
)

// Generate prompts the LLM with the rendered transcript and returns the
// parsed minutes document. Transport failures are returned; unparseable
// model output is not an error (ParseDocument degrades instead).
func Generate(ctx context.Context, c *Client, transcript string) (models.MinutesDocument, error) {
	content, err := c.Chat(ctx, systemPrompt, "Transcript:\n\n"+transcript)
	if err != nil {
		return models.MinutesDocument{}, fmt.Errorf("generate minutes: %w", err)
	}
	return ParseDocument(content), nil
}
