package utils

import (
	"net/http"
	"time"
)

// GetHttpClient returns a client for one-shot probe requests.
func GetHttpClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}
