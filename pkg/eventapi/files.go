package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

// UploadImage forwards one image to POST /upload/image as multipart
// form data. The whole payload is buffered first so the form can be
// rebuilt if the transport retries the body.
func (c *Client) UploadImage(ctx context.Context, filename string, reader io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	size, err := io.Copy(&buf, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if size == 0 {
		return nil, fmt.Errorf("empty file, size is 0 bytes")
	}
	fileBytes := buf.Bytes()

	createForm := func() (*bytes.Buffer, string, error) {
		formBuf := &bytes.Buffer{}
		writer := multipart.NewWriter(formBuf)

		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(fileBytes)); err != nil {
			return nil, "", fmt.Errorf("failed to copy file: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("failed to close writer: %w", err)
		}
		return formBuf, writer.FormDataContentType(), nil
	}

	formBuf, contentType, err := createForm()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/image", formBuf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.GetBody = func() (io.ReadCloser, error) {
		newForm, _, err := createForm()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(newForm), nil
	}
	req.Header.Set("Content-Type", contentType)
	if token := c.tokenSource(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	var result models.UploadResult
	if err := json.Unmarshal(unwrapData(data), &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &result, nil
}

func (c *Client) EventFiles(ctx context.Context, eventID uint) ([]models.EventFile, error) {
	var files []models.EventFile
	path := fmt.Sprintf("/events/%d/files", eventID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) DeleteFile(ctx context.Context, filename string) error {
	path := "/files/" + url.PathEscape(filename)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
