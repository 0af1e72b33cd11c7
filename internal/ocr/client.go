// Package ocr is the client for the external OCR sidecar. The sidecar
// shares the upload volume with this process, so requests carry file
// paths rather than image bytes, and the response is the ordered list
// of recognized text fragments.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"battle-analyzer/internal/config"

	"github.com/valyala/fasthttp"
)

type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.OCRBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         60 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type recognizeRequest struct {
	ImagePath string `json:"image_path"`
}

type recognizeResponse struct {
	RecTexts []string `json:"rec_texts"`
}

// Recognize runs OCR on the image at imagePath and returns the
// recognized text fragments in detection order. An empty result is
// returned as-is; the caller decides whether that is a failure.
func (c *Client) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	body, err := json.Marshal(recognizeRequest{ImagePath: imagePath})
	if err != nil {
		return nil, fmt.Errorf("marshal ocr request: %w", err)
	}

	req.SetRequestURI(c.baseURL + "/ocr")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("ocr request failed: %w", err)
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("ocr request failed: %w", err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("ocr engine error: %d", resp.StatusCode())
	}

	var result recognizeResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	return result.RecTexts, nil
}
