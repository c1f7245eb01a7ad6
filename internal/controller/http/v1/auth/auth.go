package auth

import (
	"net/http"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/commands"
	"workforce/backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user           User
	privateKeyFile string
}

func NewController(user User, privateKeyFile string) *Controller {
	return &Controller{user: user, privateKeyFile: privateKeyFile}
}

func (uc Controller) SignIn(c *web.Context) error {
	var request user.SignInRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	if request.Email == "" || request.Password == "" {
		return c.RespondError(web.NewRequestError(errors.New("email and password are required"), http.StatusBadRequest))
	}

	detail, err := uc.user.GetByEmail(c.Ctx, request.Email)
	if err != nil {
		return c.RespondError(err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(request.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect email or password"), http.StatusUnauthorized))
	}

	claims := auth.Claims{UserId: detail.ID}
	if detail.Role != nil {
		claims.Role = *detail.Role
	}

	accessToken, refreshToken, err := commands.GenToken(claims, uc.privateKeyFile)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating tokens"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"user": map[string]interface{}{
				"id":        detail.ID,
				"full_name": detail.FullName,
				"role":      detail.Role,
			},
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var request user.RefreshTokenRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	if request.AccessToken == "" || request.RefreshToken == "" {
		return c.RespondError(web.NewRequestError(errors.New("both tokens are required"), http.StatusBadRequest))
	}

	_, refreshClaims, err := commands.VerifyTokens(request.AccessToken, request.RefreshToken, uc.privateKeyFile)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "verifying tokens"), http.StatusUnauthorized))
	}

	claims := auth.Claims{UserId: refreshClaims.UserId, Role: refreshClaims.Role}

	accessToken, refreshToken, err := commands.GenToken(claims, uc.privateKeyFile)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating tokens"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"status": true,
	}, http.StatusOK)
}
