package elasticlog

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// DocumentSink is the destination for indexed, queryable log documents. The
// remote client owns transport concerns (TLS, retries, timeouts); the core
// only needs a blocking indexing call.
type DocumentSink interface {
	Index(index string, doc Document) error
}

// Environment fallbacks consulted by EnableDocumentSink when the endpoint or
// index is not passed explicitly.
const (
	envElasticsearchURL   = "ELASTICSEARCH_URL"
	envElasticsearchIndex = "ELASTICSEARCH_INDEX"
)

// elasticConfig is the resolved document sink configuration.
type elasticConfig struct {
	Endpoint string `validate:"required,url"`
	Index    string `validate:"required"`

	Username  string
	Password  string
	CACert    []byte
	Transport http.RoundTripper
}

// DocumentSinkOption configures the Elasticsearch-backed document sink.
type DocumentSinkOption func(*elasticConfig)

// WithBasicAuth sets basic auth credentials for the document sink client.
func WithBasicAuth(username, password string) DocumentSinkOption {
	return func(cfg *elasticConfig) {
		cfg.Username = username
		cfg.Password = password
	}
}

// WithCACert sets the PEM-encoded certificate authority used to verify the
// document sink endpoint.
func WithCACert(pem []byte) DocumentSinkOption {
	return func(cfg *elasticConfig) {
		cfg.CACert = pem
	}
}

// WithTransport replaces the HTTP transport of the document sink client.
func WithTransport(rt http.RoundTripper) DocumentSinkOption {
	return func(cfg *elasticConfig) {
		cfg.Transport = rt
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// resolveElasticConfig applies the explicit-argument-first, environment-second
// resolution policy and fails fast when neither yields a value.
func resolveElasticConfig(endpoint, index string, opts ...DocumentSinkOption) (*elasticConfig, error) {
	if endpoint == "" {
		endpoint = os.Getenv(envElasticsearchURL)
	}

	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	if index == "" {
		index = os.Getenv(envElasticsearchIndex)
	}

	if index == "" {
		return nil, ErrMissingIndex
	}

	cfg := &elasticConfig{
		Endpoint: endpoint,
		Index:    index,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg, nil
}

// elasticSink indexes documents into an Elasticsearch-compatible backend.
type elasticSink struct {
	client *elasticsearch.Client
}

func newElasticSink(cfg *elasticConfig) (*elasticSink, error) {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(cfg); err != nil {
		return nil, &SinkConfigurationError{Err: err}
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Endpoint},
		Username:  cfg.Username,
		Password:  cfg.Password,
		CACert:    cfg.CACert,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, &SinkConfigurationError{Err: err}
	}

	return &elasticSink{client: client}, nil
}

// Index serializes the document and performs a blocking index call. Every
// failure mode surfaces as a SinkWriteError so a dropped document is always
// visible to the caller of the severity method.
func (s *elasticSink) Index(index string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &SinkWriteError{Index: index, Err: err}
	}

	res, err := s.client.Index(index, bytes.NewReader(body))
	if err != nil {
		return &SinkWriteError{Index: index, Err: err}
	}

	defer res.Body.Close()

	if res.IsError() {
		return &SinkWriteError{Index: index, Err: fmt.Errorf("unexpected response: %s", res.Status())}
	}

	// Drain so the underlying connection can be reused.
	_, _ = io.Copy(io.Discard, res.Body)

	return nil
}
