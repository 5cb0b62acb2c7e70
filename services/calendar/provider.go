package calendar

import (
	"context"
	"fmt"

	"schedulit/config"
	userRepo "schedulit/database/repository/user"
	"schedulit/utils"

	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// DefaultGatewayProvider builds Google Calendar gateways from stored
// refresh tokens.
type DefaultGatewayProvider struct {
	Users userRepo.UserRepository
	Cache *redis.Client
}

// OAuthConfig returns the OAuth2 config used for both login and calendar calls.
func OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

// ForUser unseals the user's refresh token and builds an authenticated gateway.
func (p *DefaultGatewayProvider) ForUser(ctx context.Context, userID string) (Gateway, error) {
	sealed, err := p.Users.GetRefreshToken(userID)
	if err != nil {
		return nil, gatewayErr("credentials", err)
	}

	refreshToken, err := utils.OpenString(sealed, config.AppConfig.TokenEncryptionKey)
	if err != nil {
		return nil, gatewayErr("credentials", fmt.Errorf("failed to unseal refresh token: %w", err))
	}

	// The token source mints fresh access tokens from the refresh token on demand.
	ts := OAuthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, gatewayErr("connect", err)
	}
	return &googleGateway{svc: svc, userID: userID, cache: p.Cache}, nil
}
