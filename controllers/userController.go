package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/cart"
	"cafe-ordering/helpers"
	"cafe-ordering/middleware"
	"cafe-ordering/models"

	"github.com/gin-gonic/gin"
)

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UserExists(ctx context.Context, email, phone string) (bool, error)
	InsertUser(ctx context.Context, u models.User) error
	UpdateTokens(ctx context.Context, userID, token, refreshToken string, at time.Time) error
}

type UserController struct {
	store    UserStore
	tokens   *helpers.TokenMaker
	sessions *cart.Registry
	now      func() time.Time
}

func NewUserController(store UserStore, tokens *helpers.TokenMaker, sessions *cart.Registry) *UserController {
	return &UserController{store: store, tokens: tokens, sessions: sessions, now: time.Now}
}

var errBadCredentials = &apperr.Error{Kind: apperr.Unauthenticated, Msg: helpers.ErrBadCredentials.Error()}

func (uc *UserController) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "users.SignUp"
		ctx, cancel := requestContext(c)
		defer cancel()

		var user models.User
		if err := bind(c, op, &user); err != nil {
			helpers.RespondError(c, err)
			return
		}
		email := strings.ToLower(strings.TrimSpace(*user.Email))
		user.Email = &email

		exists, err := uc.store.UserExists(ctx, email, *user.Phone)
		if err != nil {
			helpers.RespondError(c, apperr.Wrap(op, err))
			return
		}
		if exists {
			helpers.RespondError(c, apperr.Validationf(op, "email or phone number already exists"))
			return
		}

		password, err := helpers.HashPassword(*user.Password)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		user.Password = &password
		user.CreatedAt = uc.now().UTC()
		user.UpdatedAt = user.CreatedAt
		user.ID = models.NewID()

		token, refreshToken, err := uc.tokens.GenerateAllTokens(*user.Email, *user.Name, user.ID, *user.Role)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		user.Token = &token
		user.RefreshToken = &refreshToken

		if err := uc.store.InsertUser(ctx, user); err != nil {
			helpers.RespondError(c, apperr.Wrap(op, err))
			return
		}
		middleware.LoggerFrom(c).Info().Str("user_id", user.ID).Str("role", *user.Role).Msg("staff signed up")
		user.Password = nil
		c.JSON(http.StatusCreated, user)
	}
}

func (uc *UserController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "users.Login"
		ctx, cancel := requestContext(c)
		defer cancel()

		var creds models.Credentials
		if err := bind(c, op, &creds); err != nil {
			helpers.RespondError(c, err)
			return
		}
		foundUser, err := uc.store.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
		if apperr.IsNotFound(err) {
			helpers.RespondError(c, errBadCredentials)
			return
		}
		if err != nil {
			helpers.RespondError(c, apperr.Wrap(op, err))
			return
		}
		if foundUser.Password == nil || helpers.VerifyPassword(creds.Password, *foundUser.Password) != nil {
			helpers.RespondError(c, errBadCredentials)
			return
		}

		token, refreshToken, err := uc.tokens.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.ID, *foundUser.Role)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if err := uc.store.UpdateTokens(ctx, foundUser.ID, token, refreshToken, uc.now().UTC()); err != nil {
			helpers.RespondError(c, apperr.Wrap(op, err))
			return
		}
		foundUser.Token = &token
		foundUser.RefreshToken = &refreshToken
		foundUser.Password = nil
		c.JSON(http.StatusOK, foundUser)
	}
}

// Logout drops the caller's ordering session. The JWT itself stays valid
// until it expires.
func (uc *UserController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		uc.sessions.Drop(middleware.UserID(c))
		c.JSON(http.StatusOK, gin.H{"message": "logged out", "redirect": helpers.LoginPath})
	}
}
