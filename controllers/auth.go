package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*services.AuthResult, error)
	Me(ctx context.Context, actor services.Actor) (*models.User, error)
}

type RegisterInput struct {
	Email        string       `json:"email" binding:"required,email"`
	Phone        string       `json:"phone"`
	Name         string       `json:"name" binding:"required"`
	Password     string       `json:"password" binding:"required,min=8"`
	SalonName    string       `json:"salonName" binding:"required"`
	SalonAddress string       `json:"salonAddress"`
	WorkingHours models.JSONB `json:"workingHours"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

type AuthController struct {
	auth         Authenticator
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthController(auth Authenticator, tokenTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{auth: auth, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

// Register creates an account, its owner and first salon
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ac.auth.Register(c.Request.Context(), services.RegisterInput{
		Email:        input.Email,
		Phone:        input.Phone,
		Name:         input.Name,
		Password:     input.Password,
		SalonName:    input.SalonName,
		SalonAddress: input.SalonAddress,
		WorkingHours: input.WorkingHours,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	ac.setCookie(c, result.Token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), input.Identifier, input.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	ac.setCookie(c, result.Token)
	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := ac.auth.Me(c.Request.Context(), actor)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) setCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, int(ac.tokenTTL.Seconds()), "/", "", ac.secureCookie, true)
}
