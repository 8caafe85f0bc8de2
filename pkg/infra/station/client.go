package station

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/m-mizutani/gdstation/pkg/domain/interfaces"
	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/domain/types"
	"github.com/m-mizutani/gdstation/pkg/utils/logging"
	"github.com/m-mizutani/gdstation/pkg/utils/metrics"
	"github.com/m-mizutani/gdstation/pkg/utils/safe"
)

const (
	apiPath  = "/api/1.3"
	authPath = "/oauth/token"

	DefaultTimeout = 60 * time.Second
)

// Client talks to the Station REST API with OAuth2 client credentials.
type Client struct {
	apiEndpoint string
	httpClient  *http.Client
	metatag     types.ClientMetatag
}

var _ interfaces.Station = (*Client)(nil)

type config struct {
	apiEndpoint  string
	authEndpoint string
	httpProxy    string
	httpsProxy   string
	timeout      time.Duration
	metatag      types.ClientMetatag
	transport    http.RoundTripper
}

type Option func(*config)

// WithAPIEndpoint overrides "<base URL>/api/1.3".
func WithAPIEndpoint(endpoint string) Option {
	return func(x *config) {
		x.apiEndpoint = endpoint
	}
}

// WithAuthEndpoint overrides "<base URL>/oauth/token".
func WithAuthEndpoint(endpoint string) Option {
	return func(x *config) {
		x.authEndpoint = endpoint
	}
}

// WithProxy routes requests through the proxies. Empty values fall back to the
// proxy settings of the environment.
func WithProxy(httpProxy, httpsProxy string) Option {
	return func(x *config) {
		x.httpProxy = httpProxy
		x.httpsProxy = httpsProxy
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(x *config) {
		x.timeout = timeout
	}
}

func WithClientMetatag(tag types.ClientMetatag) Option {
	return func(x *config) {
		x.metatag = tag
	}
}

// WithTransport replaces the base transport. Proxy options are ignored then.
func WithTransport(rt http.RoundTripper) Option {
	return func(x *config) {
		x.transport = rt
	}
}

func New(ctx context.Context, baseURL string, key types.StationAPIKey, secret types.StationAPISecret, options ...Option) (*Client, error) {
	cfg := &config{
		timeout: DefaultTimeout,
		metatag: types.DefaultClientMetatag,
	}
	for _, opt := range options {
		opt(cfg)
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if cfg.apiEndpoint == "" {
		cfg.apiEndpoint = baseURL + apiPath
	}
	if cfg.authEndpoint == "" {
		cfg.authEndpoint = baseURL + authPath
	}
	if baseURL == "" && (cfg.apiEndpoint == apiPath || cfg.authEndpoint == authPath) {
		return nil, goerr.Wrap(types.ErrInvalidOption, "station URL or both endpoints are required")
	}
	if key == "" || secret == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "station API key and secret are required")
	}

	transport := cfg.transport
	if transport == nil {
		t, err := newTransport(cfg.httpProxy, cfg.httpsProxy)
		if err != nil {
			return nil, err
		}
		transport = t
	}

	base := &http.Client{Transport: transport, Timeout: cfg.timeout}
	credentials := clientcredentials.Config{
		ClientID:     string(key),
		ClientSecret: string(secret),
		TokenURL:     cfg.authEndpoint,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	httpClient := credentials.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
	httpClient.Timeout = cfg.timeout

	return &Client{
		apiEndpoint: strings.TrimSuffix(cfg.apiEndpoint, "/"),
		httpClient:  httpClient,
		metatag:     cfg.metatag,
	}, nil
}

func newTransport(httpProxy, httpsProxy string) (*http.Transport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if httpProxy == "" && httpsProxy == "" {
		transport.Proxy = http.ProxyFromEnvironment
		return transport, nil
	}

	proxies := map[string]*url.URL{}
	for scheme, raw := range map[string]string{"http": httpProxy, "https": httpsProxy} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid proxy URL", goerr.V("scheme", scheme), goerr.V("error", err.Error()))
		}
		proxies[scheme] = u
	}
	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		if u, ok := proxies[req.URL.Scheme]; ok {
			return u, nil
		}
		return http.ProxyFromEnvironment(req)
	}
	return transport, nil
}

type response struct {
	status int
	body   []byte
}

func (x *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any) (*response, error) {
	endpoint := x.apiEndpoint + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var (
		reader  io.Reader
		reqBody []byte
	)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode request body", goerr.V("operation", operation))
		}
		reqBody = raw
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", endpoint))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if x.metatag != "" {
		req.Header.Set("Client-Metatag", string(x.metatag))
	}

	started := time.Now()
	resp, err := x.httpClient.Do(req)
	if err != nil {
		metrics.StationRequestDuration.WithLabelValues(operation, "error").Observe(time.Since(started).Seconds())
		return nil, goerr.Wrap(err, "failed to send request to station",
			goerr.V("operation", operation),
			goerr.V("url", endpoint),
		)
	}
	defer safe.DrainClose(resp.Body)
	metrics.StationRequestDuration.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Observe(time.Since(started).Seconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read station response", goerr.V("operation", operation))
	}

	logging.From(ctx).Debug("station API called",
		slog.String("operation", operation),
		slog.String("method", method),
		slog.String("url", endpoint),
		slog.Int("status", resp.StatusCode),
	)
	logging.From(ctx).Log(ctx, logging.LevelTrace, "station API payload",
		slog.String("operation", operation),
		slog.String("request", string(reqBody)),
		slog.String("response", string(raw)),
	)

	return &response{status: resp.StatusCode, body: raw}, nil
}

func apiError(operation string, resp *response) error {
	return goerr.Wrap(types.ErrStationAPI, "unexpected response from station",
		goerr.V("operation", operation),
		goerr.V("status", resp.status),
		goerr.V("body", string(resp.body)),
	)
}

// GetEnclavePermissions implements interfaces.Station.
func (x *Client) GetEnclavePermissions(ctx context.Context) ([]*model.EnclavePermission, error) {
	resp, err := x.do(ctx, "get_enclaves", http.MethodGet, "/enclaves", nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, apiError("get_enclaves", resp)
	}

	var perms []*model.EnclavePermission
	if err := json.Unmarshal(resp.body, &perms); err != nil {
		return nil, goerr.Wrap(err, "failed to decode enclaves", goerr.V("body", string(resp.body)))
	}
	return perms, nil
}

// GetReport implements interfaces.Station. Station answers 404 for unknown
// external IDs, which is (nil, nil).
func (x *Client) GetReport(ctx context.Context, externalID types.ExternalID) (*model.Report, error) {
	query := url.Values{"idType": {"EXTERNAL"}}
	resp, err := x.do(ctx, "get_report", http.MethodGet, "/reports/"+url.PathEscape(externalID.String()), query, nil)
	if err != nil {
		return nil, err
	}

	switch resp.status {
	case http.StatusOK:
		var report model.Report
		if err := json.Unmarshal(resp.body, &report); err != nil {
			return nil, goerr.Wrap(err, "failed to decode report", goerr.V("external_id", externalID))
		}
		return &report, nil

	case http.StatusNotFound:
		return nil, nil

	default:
		return nil, apiError("get_report", resp)
	}
}

// SubmitReport implements interfaces.Station.
func (x *Client) SubmitReport(ctx context.Context, report *model.Report) (*model.Report, error) {
	resp, err := x.do(ctx, "submit_report", http.MethodPost, "/reports", nil, report)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK && resp.status != http.StatusCreated {
		return nil, apiError("submit_report", resp)
	}

	id, err := parseReportID(resp.body)
	if err != nil {
		return nil, err
	}

	submitted := report.Clone()
	submitted.ID = id
	return submitted, nil
}

// UpdateReport implements interfaces.Station.
func (x *Client) UpdateReport(ctx context.Context, report *model.Report) (*model.Report, error) {
	if report.ID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "report ID is required to update", goerr.V("external_id", report.ExternalID))
	}

	query := url.Values{"idType": {"INTERNAL"}}
	resp, err := x.do(ctx, "update_report", http.MethodPut, "/reports/"+url.PathEscape(report.ID.String()), query, report)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK && resp.status != http.StatusNoContent {
		return nil, apiError("update_report", resp)
	}

	return report.Clone(), nil
}

// parseReportID reads the ID Station returns for a new report: the bare ID as
// text, a JSON string, or an object with "reportId" or "id".
func parseReportID(body []byte) (types.ReportID, error) {
	text := strings.TrimSpace(string(body))

	switch {
	case strings.HasPrefix(text, "{"):
		var obj struct {
			ReportID string `json:"reportId"`
			ID       string `json:"id"`
		}
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return "", goerr.Wrap(err, "failed to decode report ID", goerr.V("body", text))
		}
		if obj.ReportID != "" {
			text = obj.ReportID
		} else {
			text = obj.ID
		}

	case strings.HasPrefix(text, `"`):
		if err := json.Unmarshal([]byte(text), &text); err != nil {
			return "", goerr.Wrap(err, "failed to decode report ID", goerr.V("body", string(body)))
		}
	}

	if text == "" {
		return "", goerr.Wrap(types.ErrStationAPI, "station returned no report ID", goerr.V("body", string(body)))
	}
	return types.ReportID(text), nil
}
