package sdk

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Person is the domain resource managed by the service.
type Person struct {
	ID        string    `json:"id,omitempty"`
	Username  string    `json:"username"`
	GivenName string    `json:"givenName,omitempty"`
	Surname   string    `json:"surname,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status,omitempty"`
	Creation  time.Time `json:"creation,omitempty"`
}

// SearchResult is one page of search matches. The wire protocol carries no
// exact total count, so MayHaveMore is a heuristic: a page filled to exactly
// the requested size may be followed by another page, and the only way to
// know is to ask for it.
type SearchResult struct {
	// Persons holds the matches for the requested page, in service order.
	Persons []Person

	// Page is the page descriptor the results correspond to.
	Page Page

	// MayHaveMore is true when the page came back completely full.
	MayHaveMore bool
}

// PersonSDK configures and builds PersonClient instances. All parts are
// optional except the base URL; unset parts fall back to sensible defaults
// (no caching, anonymous credentials, default transport configuration, no
// observability).
//
// Example:
//
//	spec, _ := sdk.NewCacheSpec().
//	    Expiration(5*time.Minute, sdk.ExpireAfterWrite).
//	    MaxElements(1000).
//	    Build()
//
//	client, err := sdk.NewPersonSDK("https://api.example.com").
//	    WithClientConfig(sdk.DefaultClientConfig().WithSocketTimeout(2 * time.Second)).
//	    WithCacheSpec(spec).
//	    WithCredentialProvider(sdk.StaticTokenProvider{Token: token}).
//	    Create()
type PersonSDK struct {
	baseURL     string
	config      *ClientConfig
	cacheSpec   *CacheSpec
	credentials CredentialProvider
	observer    Observer
}

// NewPersonSDK starts a client builder for the service at baseURL.
func NewPersonSDK(baseURL string) *PersonSDK {
	return &PersonSDK{baseURL: baseURL}
}

// WithClientConfig sets the transport configuration. It is validated when
// Create is called.
func (s *PersonSDK) WithClientConfig(config *ClientConfig) *PersonSDK {
	s.config = config
	return s
}

// WithCacheSpec enables response caching under the given policy. Only safe
// reads (Get, Search) are cached; mutations always hit the service.
func (s *PersonSDK) WithCacheSpec(spec *CacheSpec) *PersonSDK {
	s.cacheSpec = spec
	return s
}

// WithCredentialProvider sets the source of per-request credentials.
func (s *PersonSDK) WithCredentialProvider(provider CredentialProvider) *PersonSDK {
	s.credentials = provider
	return s
}

// WithObserver attaches an observer for logs or metrics. Combine several with
// NewCompositeObserver.
func (s *PersonSDK) WithObserver(observer Observer) *PersonSDK {
	s.observer = observer
	return s
}

// Create validates the accumulated configuration and builds the client.
// Invalid configuration fails here, before any request is made, with a
// ServiceException carrying StatusInvalidConfig.
func (s *PersonSDK) Create() (*PersonClient, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &ServiceException{
			Message:    "base URL must be an absolute http(s) URL: " + s.baseURL,
			StatusCode: StatusInvalidConfig,
			wrapped:    ErrInvalidConfig,
		}
	}

	config := s.config
	if config == nil {
		config = DefaultClientConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var cache *responseCache
	if s.cacheSpec != nil {
		cache = newResponseCache(s.cacheSpec)
	}

	credentials := s.credentials
	if credentials == nil {
		credentials = AnonymousCredentials{}
	}

	var observer Observer = NoopObserver{}
	if s.observer != nil {
		observer = s.observer
	}

	return &PersonClient{
		executor: newRequestExecutor(base, config, cache, credentials, observer),
	}, nil
}

// PersonClient issues operations against the person service. Every method
// returns immediately with an AsyncResult; the request itself runs in the
// background, bounded by the configured concurrency limit.
//
// A PersonClient is safe for concurrent use by multiple goroutines.
type PersonClient struct {
	executor *requestExecutor
}

// Get fetches one person by id. An empty id fails without any I/O.
func (c *PersonClient) Get(ctx context.Context, id string) *AsyncResult[Person] {
	if id == "" {
		return failedResult[Person](newValidationError(StatusInvalidID, "person id must not be empty"))
	}
	raw := c.executor.execute(ctx, request{
		method:    http.MethodGet,
		route:     "/persons/{id}",
		path:      "/persons/" + url.PathEscape(id),
		cacheable: true,
	})
	return transformResult(raw, decodePerson)
}

// Search queries persons matching the filter, sorted and paged as requested.
// filter may be nil for "everything"; pass SortNone for service-default
// order. The zero Page means DefaultPage.
func (c *PersonClient) Search(ctx context.Context, filter *Multimap, sort SortCriteria, page Page) *AsyncResult[SearchResult] {
	if page.isZero() {
		page = DefaultPage
	}
	if page.Index() < 1 || page.Size() < 1 {
		return failedResult[SearchResult](newValidationError(StatusInvalidPage,
			"page index and size must be at least 1"))
	}

	query := url.Values{}
	filter.appendTo(query)
	// Each sort token is its own sortBy parameter; the service reads their
	// order as tie-break precedence.
	for _, token := range sort.tokens() {
		query.Add("sortBy", token)
	}
	query.Set("page", strconv.Itoa(page.Index()))
	query.Set("pageSize", strconv.Itoa(page.Size()))

	raw := c.executor.execute(ctx, request{
		method:    http.MethodGet,
		route:     "/persons",
		path:      "/persons",
		query:     query,
		cacheable: true,
	})
	return transformResult(raw, func(resp rawResponse) (SearchResult, *ServiceException) {
		var persons []Person
		if exc := unmarshalBody(resp.body, &persons); exc != nil {
			return SearchResult{}, exc
		}
		return SearchResult{
			Persons:     persons,
			Page:        page,
			MayHaveMore: len(persons) == page.Size(),
		}, nil
	})
}

// Create registers a new person and returns the stored resource, including
// any server-assigned fields. A duplicate identifier fails with
// StatusIDConflict unless the service supplies its own code.
func (c *PersonClient) Create(ctx context.Context, person Person) *AsyncResult[Person] {
	body, exc := marshalBody(person)
	if exc != nil {
		return failedResult[Person](exc)
	}
	raw := c.executor.execute(ctx, request{
		method: http.MethodPost,
		route:  "/persons",
		path:   "/persons",
		body:   body,
	})
	return transformResult(raw, decodePerson)
}

// Activate transitions the person into the active state and returns the
// updated resource. The service rejects state transitions it considers
// illegal with its own status code, for example "person.illegal.state.change".
func (c *PersonClient) Activate(ctx context.Context, id string) *AsyncResult[Person] {
	if id == "" {
		return failedResult[Person](newValidationError(StatusInvalidID, "person id must not be empty"))
	}
	raw := c.executor.execute(ctx, request{
		method: http.MethodPost,
		route:  "/persons/{id}/activate",
		path:   "/persons/" + url.PathEscape(id) + "/activate",
	})
	return transformResult(raw, decodePerson)
}

// Delete removes the person and returns the deleted resource when the
// service echoes it in the response. A bodyless 204 resolves to nil.
func (c *PersonClient) Delete(ctx context.Context, id string) *AsyncResult[*Person] {
	if id == "" {
		return failedResult[*Person](newValidationError(StatusInvalidID, "person id must not be empty"))
	}
	raw := c.executor.execute(ctx, request{
		method: http.MethodDelete,
		route:  "/persons/{id}",
		path:   "/persons/" + url.PathEscape(id),
	})
	return transformResult(raw, func(resp rawResponse) (*Person, *ServiceException) {
		if len(bytes.TrimSpace(resp.body)) == 0 {
			return nil, nil
		}
		var p Person
		if exc := unmarshalBody(resp.body, &p); exc != nil {
			return nil, exc
		}
		return &p, nil
	})
}

func decodePerson(resp rawResponse) (Person, *ServiceException) {
	var p Person
	if exc := unmarshalBody(resp.body, &p); exc != nil {
		return Person{}, exc
	}
	return p, nil
}
