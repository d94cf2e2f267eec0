package handlers

import (
	"net/http"

	"careerpath/models"
	"careerpath/services/user"
	"careerpath/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves account registration and sessions.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterUserHandler creates a student account.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req models.UserRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidRequest("Invalid request: "+err.Error()))
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("User registered", zap.String("userID", resp.User.ID))
	utils.JSONSuccess(c, http.StatusCreated, resp, "User registered successfully.")
}

// RegisterCounselorHandler creates a counselor account with its profile.
func (h *UserHandler) RegisterCounselorHandler(c *gin.Context) {
	var req models.CounselorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidRequest("Invalid request: "+err.Error()))
		return
	}
	resp, err := h.Service.RegisterCounselor(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, resp, "Counselor registered successfully.")
}

// LoginHandler exchanges credentials for a session token.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewInvalidRequest("Email and password are required."))
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resp, "Logged in successfully.")
}

// LogoutHandler revokes the caller's session token.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Service.Logout(c.Request.Context(), userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "Logged out successfully.")
}
