package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/querycache"
	"github.com/sefazor/gatherly-gateway/internal/session"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
)

type AuthController struct {
	api        *eventapi.Client
	store      *session.Store
	invalidate *querycache.Dispatcher
	log        *zap.SugaredLogger
}

func NewAuthController(api *eventapi.Client, store *session.Store, invalidate *querycache.Dispatcher, log *zap.SugaredLogger) *AuthController {
	return &AuthController{
		api:        api,
		store:      store,
		invalidate: invalidate,
		log:        log,
	}
}

func (c *AuthController) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	payload, err := c.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.store.Login(payload.Token, payload.User); err != nil {
		return nil, err
	}
	c.invalidate.ProfileMutated()
	c.log.Infow("session opened", "user_id", payload.User.ID, "role", payload.User.Role)

	return &models.Session{User: &payload.User, IsAuthenticated: true}, nil
}

func (c *AuthController) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	payload, err := c.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.store.Login(payload.Token, payload.User); err != nil {
		return nil, err
	}
	c.invalidate.ProfileMutated()

	return &models.Session{User: &payload.User, IsAuthenticated: true}, nil
}

func (c *AuthController) Logout() error {
	if err := c.store.Logout(); err != nil {
		return err
	}
	c.invalidate.ProfileMutated()
	return nil
}

// Session reports the persisted identity without touching the network.
func (c *AuthController) Session() models.Session {
	user, _, ok := c.store.Current()
	if !ok {
		return models.Session{}
	}
	return models.Session{User: user, IsAuthenticated: true}
}

func (c *AuthController) Profile(ctx context.Context) (*models.User, error) {
	if _, _, ok := c.store.Current(); !ok {
		return nil, session.ErrNotAuthenticated
	}
	return c.api.GetProfile(ctx)
}

// UpdateProfile pushes the edit to the platform first; only a confirmed
// change is merged into the persisted session copy.
func (c *AuthController) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if _, _, ok := c.store.Current(); !ok {
		return nil, session.ErrNotAuthenticated
	}

	user, err := c.api.UpdateProfile(ctx, req)
	if err != nil {
		// A rejected edit means the cached identity-derived reads may
		// already disagree with the server; drop them too.
		var apiErr *eventapi.APIError
		if errors.As(err, &apiErr) {
			c.invalidate.ProfileMutated()
		}
		return nil, err
	}

	if err := c.store.UpdateUser(req); err != nil {
		c.log.Warnw("profile updated remotely but session merge failed", "error", err)
	}
	c.invalidate.ProfileMutated()

	return user, nil
}
