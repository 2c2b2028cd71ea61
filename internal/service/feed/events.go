package feed

import (
	"encoding/json"
	"time"

	"github.com/vanessaike/social-feed-graphql-api/internal/domain"
)

const (
	eventPostCreated = "post_created"
	eventPostDeleted = "post_deleted"
)

type feedEvent struct {
	Type string    `json:"type"`
	Post eventPost `json:"post"`
}

type eventPost struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatorID string    `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Service) notify(eventType string, post *domain.Post) {
	if s.stream == nil {
		return
	}
	payload, err := json.Marshal(feedEvent{
		Type: eventType,
		Post: eventPost{
			ID:        post.ID,
			Content:   post.Content,
			CreatorID: post.CreatorID,
			CreatedAt: post.CreatedAt,
		},
	})
	if err != nil {
		s.logger.Warn("marshal feed event failed", "error", err)
		return
	}
	s.stream.Broadcast(payload)
}
