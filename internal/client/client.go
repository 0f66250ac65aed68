package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/DocSum/internal/analysis"
	"github.com/yildizm/DocSum/internal/document"
	"github.com/yildizm/DocSum/internal/logger"
)

// Form field names understood by the analysis service
const (
	FieldFile = "file"
	FieldMode = "type"
)

// RequestIDHeader carries a per-request identifier for service-side logs
const RequestIDHeader = "X-Request-ID"

const (
	maxResponseBytes = 16 << 20
	maxErrorBytes    = 4 << 10
)

// Client submits documents to the analysis service
type Client struct {
	config   *Config
	http     *http.Client
	endpoint *url.URL
	log      *logger.Logger
}

// New creates a client for the configured endpoint
func New(config *Config, log *logger.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid service endpoint: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		config:   config,
		http:     &http.Client{Timeout: config.Timeout},
		endpoint: endpoint,
		log:      log.WithComponent("client"),
	}, nil
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Analyze uploads one file with the requested mode and returns the
// validated result. Exactly one HTTP request is made; nothing is retried.
func (c *Client) Analyze(ctx context.Context, file *document.File, mode analysis.Mode) (*analysis.Result, error) {
	if file == nil {
		return nil, analysis.NewError(analysis.KindInternal, "no file to upload")
	}

	body, contentType, err := encodeForm(file, mode)
	if err != nil {
		return nil, analysis.NewErrorWithCause(analysis.KindInternal, "failed to encode upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), body)
	if err != nil {
		return nil, analysis.NewErrorWithCause(analysis.KindInternal, "failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	c.log.Debug("uploading document",
		logger.F("request_id", requestID),
		logger.F("file", file.Name),
		logger.F("bytes", len(file.Content)),
		logger.F("mode", mode))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		c.log.Debug("service returned error status",
			logger.F("request_id", requestID),
			logger.F("status", resp.StatusCode))
		return nil, analysis.NewStatusError(resp.StatusCode, statusMessage(resp, errBody))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	result, err := analysis.Decode(raw, mode)
	if err != nil {
		return nil, err
	}

	c.log.Debug("analysis received",
		logger.F("request_id", requestID),
		logger.Duration(time.Since(start)))

	return result, nil
}

// encodeForm builds the multipart body carrying the file and the mode
func encodeForm(file *document.File, mode analysis.Mode) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = document.MediaTypeUnknown
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     FieldFile,
		"filename": file.Name,
	}))
	header.Set("Content-Type", mediaType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", err
	}

	if err := w.WriteField(FieldMode, mode.String()); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// classifyTransportError separates timeouts from other network failures
func classifyTransportError(err error) *analysis.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return analysis.NewErrorWithCause(analysis.KindTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return analysis.NewErrorWithCause(analysis.KindTimeout, "request timed out", err)
	}
	return analysis.NewErrorWithCause(analysis.KindTransport, "request failed", err)
}

// statusMessage extracts the service's error detail when it sent one
func statusMessage(resp *http.Response, body []byte) string {
	var detail struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(body, &detail) == nil {
		switch d := detail.Detail.(type) {
		case string:
			if d != "" {
				return d
			}
		case nil:
		default:
			if encoded, err := json.Marshal(d); err == nil {
				return string(encoded)
			}
		}
		if detail.Error != "" {
			return detail.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}
