package api

import (
	"context"
	"net/http"
	"time"
)

// InvalidateProfilePath is the endpoint notified when the client exits.
const InvalidateProfilePath = "/profile/invalidate"

// BeaconTimeout bounds how long a beacon goroutine keeps trying.
const BeaconTimeout = 2 * time.Second

// Beacon posts to path in the background and returns immediately. The
// returned channel is closed when the attempt finishes, successfully or not.
// Delivery is best effort and may not arrive: callers that exit without
// waiting on the channel abandon the request.
func (c *Client) Beacon(path string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), BeaconTimeout)
		defer cancel()
		if err := c.do(ctx, "api.Beacon", http.MethodPost, path, nil, nil); err != nil {
			c.log.Debug("beacon not delivered", "path", path, "error", err)
		}
	}()
	return done
}

// InvalidateProfile tells the backend to drop its cached learner profile.
func (c *Client) InvalidateProfile() <-chan struct{} {
	return c.Beacon(InvalidateProfilePath)
}
