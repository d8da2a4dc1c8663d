package checkup

import (
	"fmt"
	"net/http"

	"github.com/armosec/utils-go/httputils"
)

// CheckProxyReachable performs the day-to-day reachability probe: a single
// GET against the configured endpoint, success meaning HTTP 200.
func CheckProxyReachable(client *http.Client, url string) error {
	res, err := httputils.HttpGet(client, url, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return nil
}
