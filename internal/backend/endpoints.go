package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"clipstudio/internal/api"
)

// GenerateScript asks one LLM provider for a complete short-form script.
func (c *Client) GenerateScript(ctx context.Context, req api.ScriptRequest) (*api.ScriptData, error) {
	if strings.TrimSpace(req.Theme) == "" {
		return nil, errors.New("generate script: theme required")
	}
	if strings.TrimSpace(req.Provider) == "" {
		return nil, errors.New("generate script: provider required")
	}
	var resp api.ScriptResponse
	if err := c.postJSON(ctx, "production/generate-script", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("generate script", resp.Error)
	}
	return &resp.Data, nil
}

// Battle runs the same theme through several providers and returns each result.
func (c *Client) Battle(ctx context.Context, req api.BattleRequest) (map[string]api.BattleEntry, error) {
	if strings.TrimSpace(req.Theme) == "" {
		return nil, errors.New("ai battle: theme required")
	}
	if len(req.Providers) == 0 {
		return nil, errors.New("ai battle: at least one provider required")
	}
	var resp api.BattleResponse
	if err := c.postJSON(ctx, "production/ai-battle", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("ai battle", resp.Error)
	}
	return resp.Data.BattleResults, nil
}

// GenerateGoogleAudio synthesizes narration with the Google TTS provider.
func (c *Client) GenerateGoogleAudio(ctx context.Context, req api.AudioRequest) (*api.AudioResponse, error) {
	return c.generateAudio(ctx, "production/generate-google-tts", req)
}

// GenerateElevenLabsAudio synthesizes narration with the ElevenLabs provider.
func (c *Client) GenerateElevenLabsAudio(ctx context.Context, req api.AudioRequest) (*api.AudioResponse, error) {
	return c.generateAudio(ctx, "production/generate-elevenlabs-audio", req)
}

func (c *Client) generateAudio(ctx context.Context, endpoint string, req api.AudioRequest) (*api.AudioResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New("generate audio: text required")
	}
	var resp api.AudioResponse
	if err := c.postJSON(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("generate audio", resp.Error)
	}
	if resp.Ref() == "" {
		return nil, errors.New("generate audio: backend returned no audio reference")
	}
	return &resp, nil
}

// GenerateImages produces one image per storyboard scene.
func (c *Client) GenerateImages(ctx context.Context, req api.ImagesRequest) (*api.ImagesResponse, error) {
	var resp api.ImagesResponse
	if err := c.postJSON(ctx, "production/generate-images", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("generate images", resp.Error)
	}
	return &resp, nil
}

// AnimateImages runs Leonardo motion over the supplied images. Entries in the
// result are empty where a single image failed to animate.
func (c *Client) AnimateImages(ctx context.Context, req api.AnimateRequest) (*api.AnimateResponse, error) {
	if len(req.Images) == 0 {
		return nil, errors.New("animate images: at least one image required")
	}
	var resp api.AnimateResponse
	if err := c.postJSON(ctx, "production/animate-images", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("animate images", resp.Error)
	}
	return &resp, nil
}

// RenderVideo submits the storyboard for final assembly. The answer is either
// an immediate video reference or a job id to poll via WaitForVideo.
func (c *Client) RenderVideo(ctx context.Context, req api.RenderRequest) (*api.RenderResponse, error) {
	if len(req.Storyboard.Scenes) == 0 {
		return nil, errors.New("render video: storyboard must contain scenes")
	}
	var resp api.RenderResponse
	if err := c.postJSON(ctx, "production/render-complete-video", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("render video", resp.Error)
	}
	if resp.VideoRef() == "" && strings.TrimSpace(resp.JobID) == "" && strings.TrimSpace(resp.JobKey) == "" {
		return nil, errors.New("render video: backend returned neither a video nor a job id")
	}
	return &resp, nil
}

// JobStatus fetches the current state of an asynchronous render job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*api.JobStatusResponse, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, errors.New("job status: job id required")
	}
	var resp api.JobStatusResponse
	endpoint := "production/job-status?job_id=" + url.QueryEscape(jobID)
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health pings the backend.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.getJSON(ctx, "health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status fetches aggregate system metrics.
func (c *Client) Status(ctx context.Context) (*api.SystemStatus, error) {
	var resp api.SystemStatus
	if err := c.getJSON(ctx, "status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TrendingTopics lists currently trending themes.
func (c *Client) TrendingTopics(ctx context.Context) ([]api.TrendingTopic, error) {
	var resp api.TrendingResponse
	if err := c.getJSON(ctx, "trending/topics", &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Error) != "" {
		return nil, backendFailure("trending topics", resp.Error)
	}
	return resp.Topics, nil
}

// StoryTypes lists the narrative templates script generation accepts.
func (c *Client) StoryTypes(ctx context.Context) ([]string, error) {
	var resp api.StoryTypesResponse
	if err := c.getJSON(ctx, "production/story-types", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("story types", resp.Error)
	}
	return resp.StoryTypes, nil
}

// Voices lists available ElevenLabs voices, preconfigured ones included.
func (c *Client) Voices(ctx context.Context) (*api.VoicesResponse, error) {
	var resp api.VoicesResponse
	if err := c.getJSON(ctx, "production/elevenlabs-voices", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, backendFailure("elevenlabs voices", resp.Error)
	}
	return &resp, nil
}

func backendFailure(op, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%s: backend reported failure", op)
	}
	return fmt.Errorf("%s: %s", op, strings.TrimSpace(message))
}
