// Package mockapi is an in-memory implementation of the order API's documented contract.
//
// It exists so that the client and the scenario suite can be exercised under "go test" without a
// live deployment. It is deliberately small: it validates what the contract documents and nothing
// else, and it keeps all state in process memory.
package mockapi

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/orderapi/contract-tests/apidef"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	defaultTokenTTL    = time.Minute * 20
	firstOrderNumber   = 10000
	timestampLayout    = "2006-01-02T15:04:05.000Z07:00"
	contextKeyAccount  = "account"
	internalErrorPage  = "<!DOCTYPE html><html><body><pre>Internal Server Error</pre></body></html>"
	userRemovedMessage = "User successfully removed"
)

// Config contains the parameters for New. The zero value is usable.
type Config struct {
	// Catalog is the ingredient list served by GET /ingredients. Nil means DefaultCatalog().
	Catalog []apidef.Ingredient

	// ListLimit is the number of orders returned by GET /orders. Zero means apidef.OrderListCap.
	// Setting it higher reproduces a service that ignores the documented cap.
	ListLimit int

	// Descending makes GET /orders return the newest order first.
	Descending bool

	// Secret signs access tokens. Empty means a random secret.
	Secret []byte

	// TokenTTL is the lifetime of access tokens. Zero means 20 minutes.
	TokenTTL time.Duration

	Logger *zap.Logger
}

type account struct {
	id           string
	email        string
	name         string
	password     string
	createdAt    string
	updatedAt    string
	refreshToken string
}

func (a *account) info() apidef.UserInfo {
	return apidef.UserInfo{Email: a.email, Name: a.name, CreatedAt: a.createdAt, UpdatedAt: a.updatedAt}
}

type storedOrder struct {
	order   apidef.OrderReturned
	ownerID string
	updated time.Time
}

// Server holds the state of one mock API instance.
type Server struct {
	config     Config
	catalog    map[string]apidef.Ingredient
	accounts   map[string]*account
	orders     []*storedOrder
	nextNumber int
	lastTime   time.Time
	logger     *zap.Logger
	echo       *echo.Echo
	lock       sync.Mutex
}

// New creates a Server and its routes.
func New(config Config) *Server {
	if config.Catalog == nil {
		config.Catalog = DefaultCatalog()
	}
	if config.ListLimit <= 0 {
		config.ListLimit = apidef.OrderListCap
	}
	if len(config.Secret) == 0 {
		config.Secret = []byte(uuid.NewString())
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = defaultTokenTTL
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:     config,
		catalog:    make(map[string]apidef.Ingredient, len(config.Catalog)),
		accounts:   make(map[string]*account),
		nextNumber: firstOrderNumber,
		logger:     logger.Named("mockapi"),
	}
	for _, item := range config.Catalog {
		s.catalog[item.ID] = item
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.logRequests)

	api := e.Group("/api")
	api.POST(apidef.PathRegister, s.register)
	api.POST(apidef.PathLogin, s.login)
	api.PATCH(apidef.PathUser, s.updateUser, s.requireAuth)
	api.DELETE(apidef.PathUser, s.deleteUser, s.requireAuth)
	api.GET(apidef.PathIngredients, s.ingredients)
	api.POST(apidef.PathOrders, s.createOrder, s.optionalAuth)
	api.GET(apidef.PathOrders, s.listOrders, s.requireAuth)
	s.echo = e

	return s
}

// Handler returns the HTTP handler serving the API under /api.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// UserCount returns the number of registered accounts.
func (s *Server) UserCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.accounts)
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.logger.Debug("request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("elapsed", time.Since(start)),
		)
		return err
	}
}

// now returns a strictly increasing time, so that orders created within the same millisecond still
// have distinct update times. The caller must hold the lock.
func (s *Server) now() time.Time {
	t := time.Now().UTC().Truncate(time.Millisecond)
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Millisecond)
	}
	s.lastTime = t
	return t
}

func (s *Server) findByEmail(email string) *account {
	for _, a := range s.accounts {
		if a.email == email {
			return a
		}
	}
	return nil
}

func (s *Server) ordersOf(accountID string) []*storedOrder {
	var ret []*storedOrder
	for _, o := range s.orders {
		if o.ownerID == accountID {
			ret = append(ret, o)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].updated.Before(ret[j].updated) })
	return ret
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, apidef.Envelope{Success: false, Message: message})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
