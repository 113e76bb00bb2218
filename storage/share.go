package storage

import (
	"context"
	"encoding/json"

	"eventify-api/domain"
)

// shareEnvelope wraps a share message with the user requesting it.
type shareEnvelope struct {
	UserID  string              `json:"userId"`
	Message domain.ShareMessage `json:"message"`
}

// EnqueueShareMessages sends the given share dispatches to the share
// queue for asynchronous delivery.
func (s *Storage) EnqueueShareMessages(ctx context.Context, userID string, msgs []domain.ShareMessage) error {
	for _, msg := range msgs {
		data, err := json.Marshal(shareEnvelope{UserID: userID, Message: msg})
		if err != nil {
			return err
		}
		if _, err := s.shareQueue.EnqueueMessage(ctx, string(data), nil); err != nil {
			return err
		}
	}
	return nil
}
