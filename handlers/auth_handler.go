package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/config"
	"github.com/buckneer/CheckMateV2/database"
	"github.com/buckneer/CheckMateV2/models"
)

type AuthHandler struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
}

func (h *AuthHandler) signToken(sub uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(h.TokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type RegisterReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid payload."})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalErr(err, "Registration failed.")
	}

	var rec models.Professor
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Professor{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"message": "Registration failed. Email might be already in use.",
			})
		}
		rec = models.Professor{
			Name:     strings.TrimSpace(req.Name),
			Email:    email,
			Password: string(hash),
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return storeErr(err, "Registration failed. Email might be already in use.", "Registration failed.")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":   "Professor registered successfully!",
		"professor": map[string]any{"id": rec.ID, "name": rec.Name, "email": rec.Email},
	})
}

// POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid payload."})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	var p models.Professor
	if err := database.DB.Where("email = ?", email).First(&p).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Login failed. Check email and password."})
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Login failed. Check email and password."})
	}

	token, err := h.signToken(p.ID)
	if err != nil {
		return internalErr(err, "Login failed.")
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token})
}
