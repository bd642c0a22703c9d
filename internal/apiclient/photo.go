package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"healthdiary/internal/domain"
	apperrors "healthdiary/internal/errors"
)

// UploadPhoto sends a meal photo for recognition. The response carries the
// id of the meal created server-side in its processing state.
func (c *Client) UploadPhoto(ctx context.Context, dayID uint, category, filename, contentType string, data []byte) (*domain.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("category", category); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	url := c.baseURL + fmt.Sprintf("/api/v1/days/%d/photo", dayID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-ID", strconv.FormatUint(uint64(c.userID), 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "diary")
	}
	defer resp.Body.Close()

	var result domain.UploadResult
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProcessingStatus polls the recognition job for a meal.
func (c *Client) ProcessingStatus(ctx context.Context, mealID uint) (*domain.ProcessingStatus, error) {
	var status domain.ProcessingStatus
	if err := c.get(ctx, fmt.Sprintf("/api/v1/meals/%d/processing-status", mealID), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
