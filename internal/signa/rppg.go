package signa

import (
	"context"
	"net/http"

	"signa-dashboard/internal/models"
)

const (
	pathRPPG = "/rppg/"

	defaultClipName = "recording.webm"
	defaultClipType = "video/webm"
)

// Clip is a recorded video posted to the rPPG endpoint.
type Clip struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AnalyzeRPPG uploads a clip as multipart field "file" and returns the vital
// signs computed by the inference service. It uses the upload timeout.
func (c *Client) AnalyzeRPPG(ctx context.Context, clip Clip) (*models.VitalSigns, error) {
	if len(clip.Data) == 0 {
		return nil, &ValidationError{Entity: "rppg", Field: "file", Rule: RuleRequired}
	}
	if clip.Filename == "" {
		clip.Filename = defaultClipName
	}
	if clip.ContentType == "" {
		clip.ContentType = defaultClipType
	}

	raw, err := c.do(ctx, call{
		method:  http.MethodPost,
		path:    pathRPPG,
		clip:    &clip,
		want:    ShapeObject,
		timeout: c.cfg.UploadTimeout,
	})
	if err != nil {
		return nil, err
	}
	var vitals models.VitalSigns
	if err := decode(pathRPPG, ShapeObject, raw, &vitals); err != nil {
		return nil, err
	}
	return &vitals, nil
}
