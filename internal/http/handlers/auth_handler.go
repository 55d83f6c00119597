package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// AuthHandler вход, выход и текущий аккаунт администратора.
type AuthHandler struct {
	auth         *service.AuthService
	personalInfo *service.PersonalInfoService
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler создаёт хэндлер. Cookie admin_token живёт столько же, сколько токен.
func NewAuthHandler(auth *service.AuthService, personalInfo *service.PersonalInfoService, tokens *service.TokenManager, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		personalInfo: personalInfo,
		cookieMaxAge: int(tokens.TTL().Seconds()),
		cookieSecure: cookieSecure,
	}
}

// Login обрабатывает POST /api/auth/login.
// Ответ {success, user, token} без конверта data, токен дублируется в httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookieName, result.Token, h.cookieMaxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		User:    result.User,
		Token:   result.Token,
	})
}

// Logout обрабатывает POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookieName, "", -1, "/", "", h.cookieSecure, true)
	common.RespondMessage(c, "выход выполнен")
}

// Me обрабатывает GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	info, err := h.personalInfo.Find(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondOK(c, dto.MeResponse{User: user, PersonalInfo: info})
}
