package message

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sumasrimallavolu/buddha-ceo-api/internal/application/verification"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/infrastructure/email"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/pkg/id"
)

// Service handles contact-form messages: public submission and the admin
// inbox with read/reply/delete.
type Service interface {
	Submit(ctx context.Context, in *domain.MessageInput) (*domain.Message, error)
	Get(ctx context.Context, messageID string) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
	MarkRead(ctx context.Context, messageID string) error
	Reply(ctx context.Context, messageID string, req *domain.ReplyMessageRequest) error
	Delete(ctx context.Context, messageID string) error
}

type messageStore interface {
	Put(ctx context.Context, m *domain.Message) error
	Get(ctx context.Context, messageID string) (*domain.Message, error)
	Scan(ctx context.Context) ([]domain.Message, error)
	Update(ctx context.Context, messageID string, updates map[string]interface{}) error
	Delete(ctx context.Context, messageID string) error
}

type service struct {
	store  messageStore
	mailer email.Mailer
}

func NewService(store messageStore, mailer email.Mailer) Service {
	return &service{store: store, mailer: mailer}
}

func (s *service) Submit(ctx context.Context, in *domain.MessageInput) (*domain.Message, error) {
	m := &domain.Message{
		MessageID: id.New(),
		Name:      in.Name,
		Email:     verification.Normalize(in.Email),
		Subject:   in.Subject,
		Body:      in.Body,
		Status:    domain.MessageUnread,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, messageID string) (*domain.Message, error) {
	return s.store.Get(ctx, messageID)
}

// List returns the inbox, newest first.
func (s *service) List(ctx context.Context) ([]domain.Message, error) {
	msgs, err := s.store.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.After(msgs[j].CreatedAt) })
	return msgs, nil
}

func (s *service) MarkRead(ctx context.Context, messageID string) error {
	m, err := s.store.Get(ctx, messageID)
	if err != nil {
		return err
	}
	// Replied messages stay replied.
	if m.Status != domain.MessageUnread {
		return nil
	}
	return s.store.Update(ctx, messageID, map[string]interface{}{
		"status": domain.MessageRead,
	})
}

// Reply stores the reply text and emails it to the sender. The status update
// is committed first; a delivery failure is surfaced so the admin can retry.
func (s *service) Reply(ctx context.Context, messageID string, req *domain.ReplyMessageRequest) error {
	m, err := s.store.Get(ctx, messageID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.store.Update(ctx, messageID, map[string]interface{}{
		"status":     domain.MessageReplied,
		"reply_text": req.Reply,
		"replied_at": now.Format(time.RFC3339),
	}); err != nil {
		return err
	}

	if err := s.mailer.Send(m.Email, email.TemplateMessageReply, email.ReplyData{
		Name:  m.Name,
		Reply: req.Reply,
	}); err != nil {
		slog.Error("reply email delivery failed", "message_id", messageID, "error", err)
		return fmt.Errorf("deliver reply: %w", err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, messageID string) error {
	if _, err := s.store.Get(ctx, messageID); err != nil {
		return err
	}
	return s.store.Delete(ctx, messageID)
}
