package verifierimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/verifier"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

const (
	uploadPath       = "/upload"
	fieldName        = "image"
	fileName         = "friend_connection.jpg"
	imageContentType = "image/jpeg"
	maxResponseBytes = 1 << 20

	RejectedMessage  = "Could not verify the friend in the picture."
	TransportMessage = "An error occurred while verifying the friend."
	NoPictureMessage = "No picture available to submit."
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type VerifierImpl struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

var _ verifier.Client = (*VerifierImpl)(nil)

func New(opts Opts) *VerifierImpl {
	return NewWithClient(
		opts.Config.Verifier.BaseURL,
		&http.Client{Timeout: opts.Config.Verifier.Timeout},
		opts.Logger,
	)
}

func NewWithClient(baseURL string, client *http.Client, log logger.Logger) *VerifierImpl {
	return &VerifierImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  log.WithComponent("Verifier"),
	}
}

type failureBody struct {
	Error         *string `json:"error"`
	DetectedFaces *int    `json:"detected_faces"`
}

// Verify uploads the image once. There is no retry: a failed request is reported
// and the user decides whether to submit again.
func (v *VerifierImpl) Verify(ctx context.Context, image domain.CapturedImage) ([]string, error) {
	body, contentType, err := encode(image)
	if err != nil {
		v.logger.Error("Failed to encode upload", "uri", image.URI, "error", err)
		return nil, errors.Kind(errors.ErrPrecondition, NoPictureMessage, err)
	}

	url := v.baseURL + uploadPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, errors.Kind(errors.ErrTransport, TransportMessage, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	v.logger.Info("Uploading friend connection photo", "url", url)
	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("Error verifying friend", "url", url, "error", err)
		return nil, errors.Kind(errors.ErrTransport, TransportMessage, err)
	}
	defer safeClose(resp.Body, v.logger)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		v.logger.Error("Error reading verification response", "error", err)
		return nil, errors.Kind(errors.ErrTransport, TransportMessage, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, v.rejection(resp.StatusCode, data)
	}
	return v.recognized(data)
}

func (v *VerifierImpl) recognized(data []byte) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		v.logger.Error("Malformed verification response", "error", err)
		return nil, errors.Kind(errors.ErrTransport, TransportMessage, fmt.Errorf("malformed response: %w", err))
	}

	field, ok := raw["recognized_ids"]
	if !ok || string(field) == "null" {
		v.logger.Error("Verification response lacks recognized_ids")
		return nil, errors.Kind(errors.ErrTransport, TransportMessage, fmt.Errorf("malformed response: missing recognized_ids"))
	}

	var ids []string
	if err := json.Unmarshal(field, &ids); err != nil {
		v.logger.Error("Verification response has invalid recognized_ids", "error", err)
		return nil, errors.Kind(errors.ErrTransport, TransportMessage, fmt.Errorf("malformed response: %w", err))
	}

	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			v.logger.Error("Verification response has an empty recognized id")
			return nil, errors.Kind(errors.ErrTransport, TransportMessage, fmt.Errorf("malformed response: empty recognized id"))
		}
	}

	if len(ids) == 0 {
		v.logger.Warn("Verification succeeded without recognized identities")
		return nil, errors.Kind(errors.ErrVerificationRejected, RejectedMessage, nil)
	}

	v.logger.Info("Friend verified", "recognized", len(ids))
	return ids, nil
}

func (v *VerifierImpl) rejection(status int, data []byte) error {
	var body failureBody
	if err := json.Unmarshal(data, &body); err != nil {
		v.logger.Warn("Verification failure without JSON body", "status", status, "error", err)
	}

	message := RejectedMessage
	if body.Error != nil && *body.Error != "" {
		message = *body.Error
	}

	args := []any{"status", status, "reason", message}
	if body.DetectedFaces != nil {
		args = append(args, "detected_faces", *body.DetectedFaces)
	}
	v.logger.Warn("Verification failed", args...)

	return errors.Kind(errors.ErrVerificationRejected, message, fmt.Errorf("status %d", status))
}

func encode(image domain.CapturedImage) (io.Reader, string, error) {
	if image.URI == "" {
		return nil, "", fmt.Errorf("empty image uri")
	}

	src, err := camera.Open(image.URI)
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldName, fileName))
	h.Set("Content-Type", imageContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("copy image bytes: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}

func safeClose(closer io.ReadCloser, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
