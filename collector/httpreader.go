package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

type IHttpReader interface {
	Read(url string, params map[string]string) (string, error)
}

// HttpReader performs provider requests. The rate limiter is shared across
// every reader of a worker pool so that the pool as a whole respects the
// provider's implicit request budget.
type HttpReader struct {
	client  *http.Client
	limiter *rate.Limiter
}

func NewHttpReader(c *http.Client, limiter *rate.Limiter) *HttpReader {
	return &HttpReader{client: c, limiter: limiter}
}

func NewRateLimiter(requestsPerSecond float64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}

func (r *HttpReader) Read(url string, params map[string]string) (string, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(context.Background()); err != nil {
			return "", fmt.Errorf("rate limiter interrupted for %s: %v", url, err)
		}
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create GET request for %s: %v", url, err)
	}

	q := req.URL.Query()
	for key, val := range params {
		q.Add(key, val)
	}
	req.URL.RawQuery = q.Encode()

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to perform request for %s: %v", url, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body for %s: %v", url, err)
	}

	if res.StatusCode != http.StatusOK {
		return "", NewHttpServerError(
			res.StatusCode, string(body),
			fmt.Sprintf("Received non-success status %s when requesting %s.", res.Status, url))
	}

	return string(body), nil
}

func NewLocalClient() *http.Client {
	return &http.Client{}
}

// NewProxyClient builds an http client that tunnels through a SOCKS5 proxy
// specified as host:port:user:password.
func NewProxyClient(proxyURL string) (*http.Client, error) {
	proxyParts := strings.Split(proxyURL, ":")
	if len(proxyParts) != 4 {
		return nil, fmt.Errorf("failed to parse proxy string %s", proxyURL)
	}
	proxyAddr := fmt.Sprintf("%s:%s", proxyParts[0], proxyParts[1])
	auth := proxy.Auth{
		User:     proxyParts[2],
		Password: proxyParts[3],
	}

	dialer, err := proxy.SOCKS5("tcp", proxyAddr, &auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 proxy %s: %v", proxyAddr, err)
	}

	httpTransport := &http.Transport{
		Dial: dialer.Dial,
	}
	return &http.Client{Transport: httpTransport}, nil
}
