package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/config"
	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
)

// OAuth2ProviderClient implements interfaces.OAuthProvider on top of
// golang.org/x/oauth2, driven entirely by the oauth_providers map in the
// configuration. Each provider supplies its own token and userinfo
// endpoints, so adding one is a config change, not a code change.
type OAuth2ProviderClient struct {
	configs      map[string]*oauth2.Config
	userInfoURLs map[string]string
	logger       *zap.Logger
}

// NewOAuth2ProviderClient builds the provider client from configuration.
func NewOAuth2ProviderClient(providers map[string]config.OAuthProviderConfig, logger *zap.Logger) *OAuth2ProviderClient {
	configs := make(map[string]*oauth2.Config, len(providers))
	userInfoURLs := make(map[string]string, len(providers))
	for name, providerCfg := range providers {
		configs[name] = &oauth2.Config{
			ClientID:     providerCfg.ClientID,
			ClientSecret: providerCfg.ClientSecret,
			RedirectURL:  providerCfg.RedirectURL,
			Scopes:       providerCfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  providerCfg.AuthURL,
				TokenURL: providerCfg.TokenURL,
			},
		}
		userInfoURLs[name] = providerCfg.UserInfoURL
	}
	return &OAuth2ProviderClient{
		configs:      configs,
		userInfoURLs: userInfoURLs,
		logger:       logger.Named("oauth_provider"),
	}
}

// userInfoPayload tolerates the field spellings of the common providers:
// Google uses id/picture on v2 and sub/picture on OIDC, GitHub uses
// avatar_url.
type userInfoPayload struct {
	Sub       string `json:"sub"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Picture   string `json:"picture"`
	AvatarURL string `json:"avatar_url"`
}

// FetchProfile exchanges the authorization code and fetches the user's
// profile. Every failure is wrapped in ErrProviderFailure so callers
// surface a single upstream-failure condition without leaking transport
// details to clients.
func (c *OAuth2ProviderClient) FetchProfile(ctx context.Context, provider, code string) (*models.ExternalProfile, error) {
	oauthCfg, ok := c.configs[provider]
	if !ok {
		return nil, domainErrors.ErrProviderUnknown
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		c.logger.Error("Failed to exchange authorization code",
			zap.Error(err),
			zap.String("provider", provider),
		)
		return nil, fmt.Errorf("%w: code exchange: %v", domainErrors.ErrProviderFailure, err)
	}

	resp, err := oauthCfg.Client(ctx, token).Get(c.userInfoURLs[provider])
	if err != nil {
		c.logger.Error("Failed to fetch provider profile",
			zap.Error(err),
			zap.String("provider", provider),
		)
		return nil, fmt.Errorf("%w: userinfo fetch: %v", domainErrors.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Provider userinfo endpoint returned error status",
			zap.String("provider", provider),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: userinfo status %d", domainErrors.ErrProviderFailure, resp.StatusCode)
	}

	var payload userInfoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: userinfo decode: %v", domainErrors.ErrProviderFailure, err)
	}

	externalID := payload.Sub
	if externalID == "" {
		externalID = payload.ID
	}
	avatar := payload.Picture
	if avatar == "" {
		avatar = payload.AvatarURL
	}

	return &models.ExternalProfile{
		Provider:       provider,
		ExternalUserID: externalID,
		Email:          payload.Email,
		Name:           payload.Name,
		AvatarURL:      avatar,
	}, nil
}

var _ interfaces.OAuthProvider = (*OAuth2ProviderClient)(nil)
