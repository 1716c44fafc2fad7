package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/seyitm/baby-ai/internal"
)

// RemoteAuthProvider asks the hosted auth service who the token belongs to.
type RemoteAuthProvider struct {
	client *resty.Client
	logger internal.Logger
}

func NewRemoteAuthProvider(baseURL, apiKey string, logger internal.Logger) *RemoteAuthProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetHeader("apikey", apiKey)
	return &RemoteAuthProvider{client: client, logger: logger}
}

func (a *RemoteAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	return nil, errors.New("not implemented in RemoteAuthProvider")
}

func (a *RemoteAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	var user internal.User
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		Get("/auth/v1/user")
	if err != nil {
		a.logger.Errorf("failed to call auth service: %v", err)
		return nil, err
	}
	if resp.IsError() {
		a.logger.Warnf("auth service returned %d", resp.StatusCode())
		return nil, errors.New("auth service rejected token")
	}
	if user.ID == "" {
		return nil, errors.New("auth service returned no user id")
	}
	return &user, nil
}

var _ Provider = (*RemoteAuthProvider)(nil)
