package lib

import (
	"github.com/pusher/pusher-http-go/v5"
)

const bookingsChannel = "bookings"

// Broadcaster pushes events to realtime subscribers. Delivery is
// fire-and-forget; callers log failures and move on.
type Broadcaster interface {
	Broadcast(event string, payload map[string]string) error
}

type pusherBroadcaster struct {
	client *pusher.Client
}

func NewPusherBroadcaster(appID, key, secret, cluster string) Broadcaster {
	return &pusherBroadcaster{
		client: &pusher.Client{
			AppID:   appID,
			Key:     key,
			Secret:  secret,
			Cluster: cluster,
		},
	}
}

func (b *pusherBroadcaster) Broadcast(event string, payload map[string]string) error {
	return b.client.Trigger(bookingsChannel, event, payload)
}
