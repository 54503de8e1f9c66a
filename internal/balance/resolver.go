package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tokengate/internal/address"
)

// Config carries everything the resolver needs to talk to the balance
// service. Injected by the host at construction so the resolver never reads
// process-wide state and tests can point it at a mock transport.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// HTTPClient overrides the transport when set; otherwise a client with
	// Timeout is built. The resolver itself does no retries, caching, or rate
	// limiting; that is the caller's policy.
	HTTPClient *http.Client
}

// Resolver fetches held balances for an address, either from a caller-provided
// snapshot or with a single best-effort call to the remote balance service.
type Resolver struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewResolver constructs a Resolver from an explicit Config.
func NewResolver(cfg Config, logger *slog.Logger) *Resolver {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cfg: cfg, client: client, logger: logger}
}

// balanceDocument is the wire shape of a successful lookup. All integers are
// decimal strings to preserve exactness across the wire.
type balanceDocument struct {
	Balances []Balance `json:"balances"`
}

// Resolve returns the balances held by addr in the given collection.
//
// With a snapshot the call is synchronous and performs no I/O: the address is
// canonicalized, looked up, and a missing key yields an empty slice. Without
// one, a single request is issued to the balance service; transport failures
// and non-2xx responses surface as ResolutionError, untried and uncached.
func (r *Resolver) Resolve(ctx context.Context, chain, collectionID, addr string, snapshot Snapshot) ([]Balance, error) {
	if chain != SupportedChain {
		return nil, &UnsupportedChainError{Chain: chain}
	}
	if isListCollection(collectionID) {
		return nil, &UnsupportedCollectionKindError{CollectionID: collectionID}
	}

	canonical, err := address.Canonicalize(addr)
	if err != nil {
		return nil, err
	}

	if snapshot != nil {
		return snapshot[canonical], nil
	}
	return r.fetch(ctx, collectionID, canonical)
}

func (r *Resolver) fetch(ctx context.Context, collectionID, canonical string) ([]Balance, error) {
	endpoint := fmt.Sprintf("%s/api/v0/collection/%s/balance/%s",
		strings.TrimRight(r.cfg.BaseURL, "/"), url.PathEscape(collectionID), url.PathEscape(canonical))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ResolutionError{CollectionID: collectionID, Address: canonical, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.cfg.APIKey != "" {
		req.Header.Set("x-api-key", r.cfg.APIKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &ResolutionError{CollectionID: collectionID, Address: canonical, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("balance lookup failed",
			"collection", collectionID, "status", resp.StatusCode)
		return nil, &ResolutionError{CollectionID: collectionID, Address: canonical, StatusCode: resp.StatusCode}
	}

	var doc balanceDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &ResolutionError{CollectionID: collectionID, Address: canonical, Err: fmt.Errorf("malformed body: %w", err)}
	}
	return doc.Balances, nil
}

// isListCollection recognizes aggregate membership-list identifiers. Numeric
// identifiers name badge collections; anything else is list mode.
func isListCollection(collectionID string) bool {
	if collectionID == "" || strings.HasPrefix(collectionID, "lists:") || collectionID == "lists" {
		return true
	}
	for _, c := range collectionID {
		if c < '0' || c > '9' {
			return true
		}
	}
	return false
}
