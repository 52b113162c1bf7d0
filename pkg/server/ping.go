package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// PingUntil polls /api/ping until the server answers, then calls callback.
// It gives up after a minute.
func PingUntil(ctx context.Context, baseURL string, callback func(candles int)) {
	pingURL := baseURL + "/api/ping"
	timeout := time.NewTimer(time.Minute)
	defer timeout.Stop()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {

		case <-timeout.C:
			log.Warnf("ping hits 1 minute timeout")
			return

		case <-ctx.Done():
			return

		case <-ticker.C:
			var response struct {
				Candles int `json:"candles"`
			}
			if err := getJSON(ctx, pingURL, &response); err == nil {
				callback(response.Candles)
				return
			}
		}
	}
}

func getJSON(ctx context.Context, url string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(data)
}
