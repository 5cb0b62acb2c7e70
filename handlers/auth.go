package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"schedulit/config"
	userRepo "schedulit/database/repository/user"
	"schedulit/models"
	"schedulit/services/calendar"
	"schedulit/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	oauthStatePrefix = "oauthstate:"
	oauthStateTTL    = 10 * time.Minute
	sessionDuration  = 24 * time.Hour
	jwtCookieName    = "jwt_token"
)

// AuthHandler owns the Google OAuth flow and session endpoints.
type AuthHandler struct {
	Users userRepo.UserRepository
}

func NewAuthHandler(users userRepo.UserRepository) *AuthHandler {
	return &AuthHandler{Users: users}
}

// LoginHandler redirects the browser to Google's consent screen.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	state := uuid.NewString()
	cache := utils.GetCacheClient()
	if err := cache.Set(c.Request.Context(), oauthStatePrefix+state, "1", oauthStateTTL).Err(); err != nil {
		getLogger(c).Error("failed to store oauth state", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to initiate login", "")
		return
	}

	// access_type=offline with prompt=consent guarantees a refresh token.
	url := calendar.OAuthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	c.Redirect(http.StatusFound, url)
}

// CallbackHandler exchanges the authorization code, upserts the user, seals
// the refresh token and issues the session cookie.
func (h *AuthHandler) CallbackHandler(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	state := c.Query("state")
	cache := utils.GetCacheClient()
	if state == "" || cache.Del(ctx, oauthStatePrefix+state).Val() == 0 {
		logger.Warn("oauth callback with unknown state")
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
		return
	}

	token, err := calendar.OAuthConfig().Exchange(ctx, code)
	if err != nil {
		logger.Error("oauth code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
		return
	}

	info, err := fetchGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Error("failed to fetch google profile", zap.Error(err))
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
		return
	}

	user, err := h.Users.GetByGoogleID(info.ID)
	if err == userRepo.ErrNotFound {
		user = &models.User{
			ID:       uuid.NewString(),
			GoogleID: info.ID,
			Email:    info.Email,
			Name:     info.Name,
			Picture:  info.Picture,
		}
		if err := h.Users.Create(user); err != nil {
			logger.Error("failed to create user", zap.Error(err))
			c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
			return
		}
	} else if err != nil {
		logger.Error("failed to look up user", zap.Error(err))
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
		return
	}

	// Google only returns a refresh token on the first consent; keep the
	// stored one when this exchange came back without it.
	if token.RefreshToken != "" {
		sealed, err := utils.SealString(token.RefreshToken, config.AppConfig.TokenEncryptionKey)
		if err != nil {
			logger.Error("failed to seal refresh token", zap.Error(err))
			c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
			return
		}
		if err := h.Users.SetRefreshToken(user.ID, sealed); err != nil {
			logger.Error("failed to store refresh token", zap.Error(err))
			c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
			return
		}
	}

	jwtToken, err := utils.GenerateToken(user.ID, user.Email, sessionDuration)
	if err != nil {
		logger.Error("failed to issue session token", zap.Error(err))
		c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"?error=auth_failed")
		return
	}

	c.SetCookie(jwtCookieName, jwtToken, int(sessionDuration.Seconds()), "/", "",
		config.IsProduction(), true)
	c.Redirect(http.StatusFound, config.AppConfig.FrontendURL+"/dashboard")
}

// CurrentUserHandler returns the authenticated user's profile.
func (h *AuthHandler) CurrentUserHandler(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.Users.GetByID(userID)
	if err == userRepo.ErrNotFound {
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
		return
	}
	if err != nil {
		getLogger(c).Error("failed to fetch user", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch user", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// LogoutHandler clears the session cookie.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.SetCookie(jwtCookieName, "", -1, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

var userInfoClient = &http.Client{Timeout: 5 * time.Second}

func fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := userInfoClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
