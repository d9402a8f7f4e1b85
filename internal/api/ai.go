package api

import "context"

// AIGenerateRequest asks the platform to draft a post about a topic.
type AIGenerateRequest struct {
	Topic string `json:"topic" validate:"required,min=3,max=200"`
}

// AIEnhanceRequest asks the platform to improve existing post content.
type AIEnhanceRequest struct {
	Content string `json:"content" validate:"required,min=20"`
}

// AISuggestIdeasRequest asks the platform for post ideas around keywords.
type AISuggestIdeasRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1,dive,min=2"`
}

// AIContentResponse carries generated or enhanced post content.
type AIContentResponse struct {
	Content string `json:"content"`
}

// AIIdeasResponse carries suggested post ideas.
type AIIdeasResponse struct {
	Ideas []string `json:"ideas"`
}

// GenerateBlog drafts post content for a topic. Pure pass-through.
func (c *Client) GenerateBlog(ctx context.Context, req AIGenerateRequest) (*AIContentResponse, error) {
	var resp AIContentResponse
	if err := c.post(ctx, "ai_generate", "/ai/generate-blog", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EnhanceBlog improves existing post content. Pure pass-through.
func (c *Client) EnhanceBlog(ctx context.Context, req AIEnhanceRequest) (*AIContentResponse, error) {
	var resp AIContentResponse
	if err := c.post(ctx, "ai_enhance", "/ai/enhance-blog", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SuggestIdeas proposes post ideas for a keyword set. Pure pass-through.
func (c *Client) SuggestIdeas(ctx context.Context, req AISuggestIdeasRequest) (*AIIdeasResponse, error) {
	var resp AIIdeasResponse
	if err := c.post(ctx, "ai_suggest", "/ai/suggest-ideas", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
