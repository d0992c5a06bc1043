package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"kanban-project/microservices/board-service/logging"

	"github.com/sony/gobreaker"
)

// Notifier posts user-visible notices to the notifications service. Calls go
// through a circuit breaker; failures are logged and swallowed, never
// propagated to the mutation that triggered them, and never retried.
type Notifier struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
}

func NewNotifier(client *http.Client, breaker *gobreaker.CircuitBreaker, baseURL string) *Notifier {
	return &Notifier{client: client, breaker: breaker, baseURL: baseURL}
}

// Notify sends a notice to the given user. Fire and forget.
func (n *Notifier) Notify(userID, message string) {
	if n == nil || n.baseURL == "" {
		return
	}

	payload, err := json.Marshal(map[string]string{
		"userId":  userID,
		"message": message,
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: NOTIFICATION_MARSHAL_FAILED, Description: Failed to marshal notification payload: %v", err)
		return
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		resp, err := n.client.Post(n.baseURL+"/api/notifications", "application/json", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("notifications service returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: NOTIFICATION_SEND_FAILED, Description: Failed to send notification to user %s: %v", userID, err)
	}
}
