package requests

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"clashfinder/pkg/logger"
	"clashfinder/pkg/messages"
)

// ErrNotFound is matched by every 404 returned by the API.
var ErrNotFound = errors.New("resource not found")

// StatusError is returned when the API answers with anything other than 200.
type StatusError struct {
	StatusCode int
	URL        string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.BadStatusCodeMsg, e.StatusCode, e.URL)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// StatusCode extracts the status code of a wrapped StatusError, 0 when there is none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// ClientOptions configures the Riot client.
type ClientOptions struct {
	ApiKey     string
	HostFormat string
	Timeout    time.Duration
	Retry      RetryPolicy
	Logger     *logger.Logger
}

// Client does authenticated requests to the Riot API.
type Client struct {
	apiKey         string
	hostFormat     string
	httpClient     *http.Client
	insecureClient *http.Client
	retry          RetryPolicy
	logger         *logger.Logger
}

// NewClient creates a client shared by every fetcher.
func NewClient(opts ClientOptions) *Client {
	if opts.HostFormat == "" {
		opts.HostFormat = "https://%s.api.riotgames.com"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	insecureTransport := http.DefaultTransport.(*http.Transport).Clone()
	insecureTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &Client{
		apiKey:         opts.ApiKey,
		hostFormat:     opts.HostFormat,
		httpClient:     &http.Client{Timeout: opts.Timeout},
		insecureClient: &http.Client{Timeout: opts.Timeout, Transport: insecureTransport},
		retry:          opts.Retry.withDefaults(),
		logger:         opts.Logger,
	}
}

// URL formats a API url for the given route host.
func (c *Client) URL(host string, path string, args ...any) string {
	return fmt.Sprintf(c.hostFormat, host) + fmt.Sprintf(path, args...)
}

// Get does a single attempt, only falling back to a insecure connection on certificate errors.
func (c *Client) Get(ctx context.Context, limiter *RateLimiter, url string, out any) error {
	err := c.attempt(ctx, limiter, url, out, false)
	if isTLSError(err) {
		c.logger.Warnf("TLS verification failed for %s, retrying without verification: %v", url, err)
		err = c.attempt(ctx, limiter, url, out, true)
	}
	return err
}

// GetWithRetry is Get wrapped on the retry policy.
func (c *Client) GetWithRetry(ctx context.Context, limiter *RateLimiter, url string, out any) error {
	usedFallback := false

	return c.retry.Do(ctx, func() error {
		err := c.attempt(ctx, limiter, url, out, false)
		if isTLSError(err) && !usedFallback {
			usedFallback = true
			c.logger.Warnf("TLS verification failed for %s, retrying without verification: %v", url, err)
			err = c.attempt(ctx, limiter, url, out, true)
		}
		if err != nil {
			c.logger.Debugf("attempt on %s failed: %v", url, err)
		}
		return err
	})
}

// attempt runs a single request and decodes a 200 body into out.
func (c *Client) attempt(ctx context.Context, limiter *RateLimiter, url string, out any, insecure bool) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("couldn't create the request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	httpClient := c.httpClient
	if insecure {
		httpClient = c.insecureClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(messages.RequestFailedMsg+": %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}

// DecodeError means the API answered with a body we can't read, retrying won't help.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s on URL %s: %v", messages.FailedToParseMsg, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// parseRetryAfter reads the header either as seconds or as a http date.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}

// isTLSError reports certificate verification failures.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}

	var (
		verificationErr *tls.CertificateVerificationError
		unknownAuthErr  x509.UnknownAuthorityError
		hostnameErr     x509.HostnameError
		invalidErr      x509.CertificateInvalidError
	)

	return errors.As(err, &verificationErr) ||
		errors.As(err, &unknownAuthErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}
