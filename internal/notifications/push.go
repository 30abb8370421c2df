package notifications

import (
	"fmt"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

// PushService delivers Expo push notifications to registered device tokens.
type PushService struct {
	client *expo.PushClient
}

func NewPushService() *PushService {
	return &PushService{
		client: expo.NewPushClient(nil),
	}
}

func (s *PushService) SendPush(token, title, body string, data map[string]string) error {
	pushToken, err := expo.NewExponentPushToken(token)
	if err != nil {
		return fmt.Errorf("invalid expo push token: %w", err)
	}

	response, err := s.client.Publish(&expo.PushMessage{
		To:    []expo.ExponentPushToken{pushToken},
		Title: title,
		Body:  body,
		Data:  data,
		Sound: "default",
	})
	if err != nil {
		return fmt.Errorf("failed to publish push notification: %w", err)
	}

	if err := response.ValidateResponse(); err != nil {
		return fmt.Errorf("push notification rejected: %w", err)
	}

	return nil
}
