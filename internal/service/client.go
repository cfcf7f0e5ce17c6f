package service

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// newRestyClient builds the shared HTTP client: resty on top of a
// retryable transport, short timeout, identifying User-Agent.
func newRestyClient(baseURL string) *resty.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 250 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil // Disable logging

	client := resty.New()
	client.
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "WebTop-Desktop/1.0").
		SetTransport(retryClient.HTTPClient.Transport)

	return client
}
