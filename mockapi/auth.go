package mockapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/orderapi/contract-tests/apidef"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

var errBadToken = errors.New("invalid access token")

type credentialsBody struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type accessClaims struct {
	jwt.RegisteredClaims
}

// issueTokens replaces the account's token pair. The caller must hold the lock.
func (s *Server) issueTokens(a *account) (apidef.AuthResponse, error) {
	now := time.Now()
	claims := accessClaims{jwt.RegisteredClaims{
		Subject:   a.id,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.Secret)
	if err != nil {
		return apidef.AuthResponse{}, err
	}
	a.refreshToken = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	return apidef.AuthResponse{
		Envelope:     apidef.Envelope{Success: true},
		AccessToken:  bearerPrefix + signed,
		RefreshToken: a.refreshToken,
		User:         apidef.UserInfo{Email: a.email, Name: a.name},
	}, nil
}

// authenticate resolves the Authorization header to an account. The caller must hold the lock.
func (s *Server) authenticate(header string) (*account, error) {
	raw := strings.TrimPrefix(header, bearerPrefix)
	if raw == header || raw == "" {
		return nil, errBadToken
	}
	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.config.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	a, ok := s.accounts[claims.Subject]
	if !ok {
		return nil, errBadToken
	}
	return a, nil
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.lock.Lock()
		a, err := s.authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
		s.lock.Unlock()
		if err != nil {
			return fail(c, http.StatusUnauthorized, apidef.MessageUnauthorised)
		}
		c.Set(contextKeyAccount, a)
		return next(c)
	}
}

// optionalAuth lets anonymous requests through, but rejects a token that is present and invalid.
func (s *Server) optionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}
		return s.requireAuth(next)(c)
	}
}

func currentAccount(c echo.Context) *account {
	a, _ := c.Get(contextKeyAccount).(*account)
	return a
}

func (s *Server) register(c echo.Context) error {
	var body credentialsBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if empty(body.Email) || empty(body.Name) || empty(body.Password) {
		return fail(c, http.StatusForbidden, apidef.MessageRequiredFields)
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	email := normalizeEmail(*body.Email)
	if s.findByEmail(email) != nil {
		return fail(c, http.StatusForbidden, apidef.MessageUserExists)
	}
	ts := s.now().Format(timestampLayout)
	a := &account{
		id:        uuid.NewString(),
		email:     email,
		name:      *body.Name,
		password:  *body.Password,
		createdAt: ts,
		updatedAt: ts,
	}
	resp, err := s.issueTokens(a)
	if err != nil {
		return err
	}
	s.accounts[a.id] = a
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) login(c echo.Context) error {
	var body credentialsBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if empty(body.Email) || empty(body.Password) {
		return fail(c, http.StatusUnauthorized, apidef.MessageIncorrectLogin)
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	a := s.findByEmail(normalizeEmail(*body.Email))
	if a == nil || a.password != *body.Password {
		return fail(c, http.StatusUnauthorized, apidef.MessageIncorrectLogin)
	}
	resp, err := s.issueTokens(a)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) updateUser(c echo.Context) error {
	var body credentialsBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	a := currentAccount(c)
	if !empty(body.Email) {
		email := normalizeEmail(*body.Email)
		if other := s.findByEmail(email); other != nil && other != a {
			return fail(c, http.StatusForbidden, apidef.MessageEmailTaken)
		}
		a.email = email
	}
	if !empty(body.Name) {
		a.name = *body.Name
	}
	if !empty(body.Password) {
		a.password = *body.Password
	}
	a.updatedAt = s.now().Format(timestampLayout)
	return c.JSON(http.StatusOK, apidef.AuthResponse{
		Envelope: apidef.Envelope{Success: true},
		User:     apidef.UserInfo{Email: a.email, Name: a.name},
	})
}

func (s *Server) deleteUser(c echo.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	a := currentAccount(c)
	delete(s.accounts, a.id)
	return c.JSON(http.StatusAccepted, apidef.Envelope{Success: true, Message: userRemovedMessage})
}

func empty(s *string) bool {
	return s == nil || *s == ""
}
