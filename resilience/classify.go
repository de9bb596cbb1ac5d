package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// APIError represents a failure response from an upstream provider.
// Wallet provider clients return it so the retry executor can classify
// failures by status code instead of message text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// StatusCode returns the HTTP status code of the provider response.
func (e *APIError) StatusCode() int { return e.Status }

// statusCoder is satisfied by errors carrying an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

// retryableStatuses are the upstream status codes treated as transient.
var retryableStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// retryableFragments mark an error transient by message text when no
// structured code is available. Matching is case-insensitive.
var retryableFragments = []string{
	"timeout",
	"network",
	"connection",
	"service unavailable",
	"rate limit",
	"quota",
}

// IsRetryable reports whether err is a transient failure worth
// retrying. Structured status codes are checked first, then network
// failure classes, then message text as a fallback.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var sc statusCoder
	if errors.As(err, &sc) && retryableStatuses[sc.StatusCode()] {
		return true
	}

	if isNetworkError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, frag := range retryableFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}

	return false
}

// isNetworkError matches connection resets, refused connections,
// unresolvable hosts, and timeouts.
func isNetworkError(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsNotFound || dnsErr.IsTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
