package controller

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/querycache"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
	"github.com/sefazor/gatherly-gateway/pkg/utils"
)

type FileController struct {
	api        *eventapi.Client
	cache      *querycache.Cache
	invalidate *querycache.Dispatcher
	log        *zap.SugaredLogger
}

func NewFileController(api *eventapi.Client, cache *querycache.Cache, invalidate *querycache.Dispatcher, log *zap.SugaredLogger) *FileController {
	return &FileController{
		api:        api,
		cache:      cache,
		invalidate: invalidate,
		log:        log,
	}
}

// Upload forwards an image to the platform. eventID is optional; when
// set, the event's cached file list is invalidated.
func (c *FileController) Upload(ctx context.Context, filename string, reader io.Reader, eventID uint) (*models.UploadResult, error) {
	if filename == "" {
		filename = utils.GenerateRandomString(16)
	}

	result, err := c.api.UploadImage(ctx, filename, reader)
	if err != nil {
		c.invalidateIfRejected(err, eventID)
		return nil, err
	}
	c.invalidate.FileMutated(eventID)
	c.log.Infow("image uploaded", "filename", result.Filename)
	return result, nil
}

func (c *FileController) EventFiles(ctx context.Context, eventID uint) ([]models.EventFile, error) {
	return querycache.Through(ctx, c.cache, querycache.EventFilesKey(eventID), func(ctx context.Context) ([]models.EventFile, error) {
		return c.api.EventFiles(ctx, eventID)
	})
}

func (c *FileController) Delete(ctx context.Context, filename string, eventID uint) error {
	if err := c.api.DeleteFile(ctx, filename); err != nil {
		c.invalidateIfRejected(err, eventID)
		return err
	}
	c.invalidate.FileMutated(eventID)
	return nil
}

// invalidateIfRejected drops the event's cached file list after a
// rejected mutation; a rejection (duplicate name, file already gone)
// means the cached list no longer matches the server.
func (c *FileController) invalidateIfRejected(err error, eventID uint) {
	var apiErr *eventapi.APIError
	if errors.As(err, &apiErr) {
		c.invalidate.FileMutated(eventID)
	}
}
