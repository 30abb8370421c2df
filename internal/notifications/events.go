package notifications

import (
	"encoding/json"
)

type EventType string

const (
	EventTypeEmail    EventType = "EMAIL"
	EventTypePush     EventType = "PUSH"
	EventTypeRealtime EventType = "REALTIME"
)

// Realtime channels consumed by connected UI clients.
const (
	ChannelTaskUpdated     = "taskUpdated"
	ChannelBottleneckAlert = "bottleneckAlert"
)

// Event is a pending outbound notification. Services append events after
// their transaction commits; the dispatcher queues them and the worker
// delivers, so delivery failure can never roll back domain state.
type Event struct {
	Type EventType `json:"type"`

	// email
	To      string `json:"to,omitempty"`
	Subject string `json:"subject,omitempty"`

	// push
	PushToken string            `json:"pushToken,omitempty"`
	Title     string            `json:"title,omitempty"`
	Data      map[string]string `json:"data,omitempty"`

	// realtime
	Channel string `json:"channel,omitempty"`

	// message body, or JSON payload for realtime events
	Body string `json:"body,omitempty"`
}

func EmailEvent(to, subject, body string) Event {
	return Event{
		Type:    EventTypeEmail,
		To:      to,
		Subject: subject,
		Body:    body,
	}
}

func PushEvent(token, title, body string, data map[string]string) Event {
	return Event{
		Type:      EventTypePush,
		PushToken: token,
		Title:     title,
		Body:      body,
		Data:      data,
	}
}

func RealtimeEvent(channel string, payload any) Event {
	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte("{}")
	}

	return Event{
		Type:    EventTypeRealtime,
		Channel: channel,
		Body:    string(body),
	}
}
