package apitests

import (
	"context"
	"sync"

	"github.com/orderapi/contract-tests/apiclient"
	"github.com/orderapi/contract-tests/framework"
	"github.com/orderapi/contract-tests/model"
	"github.com/orderapi/contract-tests/verify"
)

// HarnessConfig contains the parameters for NewHarness.
type HarnessConfig struct {
	Client *apiclient.Client

	// Logger receives the request logs of every test, prefixed with the test ID, in addition to
	// each test's own captured output. Nil means they are only captured.
	Logger framework.Logger

	// SortDirection is the order the listing is expected to be in.
	SortDirection verify.Direction
}

// Harness is the state shared by all tests in a run.
type Harness struct {
	config        HarnessConfig
	catalog       model.Catalog
	catalogLoaded bool
	catalogLock   sync.Mutex
}

func NewHarness(config HarnessConfig) *Harness {
	if config.Logger == nil {
		config.Logger = framework.NullLogger()
	}
	return &Harness{config: config}
}

// Catalog fetches the ingredient catalog and keeps it for the rest of the run, since it is not
// expected to change. A failed fetch is not kept: the next call tries again.
func (h *Harness) Catalog(ctx context.Context) (model.Catalog, error) {
	h.catalogLock.Lock()
	defer h.catalogLock.Unlock()
	if h.catalogLoaded {
		return h.catalog, nil
	}
	items, err := h.config.Client.Ingredients(ctx)
	if err != nil {
		return model.Catalog{}, err
	}
	h.catalog, h.catalogLoaded = model.NewCatalog(items), true
	return h.catalog, nil
}
