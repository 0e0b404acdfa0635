package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

var messageColumns = []interface{}{
	"id", "sender_id", "sender_name", "receiver_id", "receiver_name",
	"content", "sent_at", "read",
}

// MessageAdapter implements the MessageRepository interface on PostgreSQL
type MessageAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMessageAdapter creates a new message adapter
func NewMessageAdapter(client *postgres.Client) repositories.MessageRepository {
	return &MessageAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new message
func (a *MessageAdapter) Create(ctx context.Context, message *entities.Message) error {
	record := goqu.Record{
		"id":            message.ID,
		"sender_id":     message.SenderID,
		"sender_name":   message.SenderName,
		"receiver_id":   message.ReceiverID,
		"receiver_name": message.ReceiverName,
		"content":       message.Content,
		"sent_at":       message.Timestamp,
		"read":          message.Read,
	}

	query, args, err := a.db.Insert("messages").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create message", err)
	}
	return nil
}

// ListBetween retrieves the thread between two users, oldest first
func (a *MessageAdapter) ListBetween(ctx context.Context, userID, otherUserID string) ([]*entities.Message, error) {
	where := goqu.Or(
		goqu.Ex{"sender_id": userID, "receiver_id": otherUserID},
		goqu.Ex{"sender_id": otherUserID, "receiver_id": userID},
	)
	return a.list(ctx, where, goqu.I("sent_at").Asc())
}

// ListForUser retrieves every message a user sent or received, newest first
func (a *MessageAdapter) ListForUser(ctx context.Context, userID string) ([]*entities.Message, error) {
	where := goqu.Or(
		goqu.Ex{"sender_id": userID},
		goqu.Ex{"receiver_id": userID},
	)
	return a.list(ctx, where, goqu.I("sent_at").Desc())
}

// MarkRead flips the read flag on unread messages sent by senderID to receiverID
func (a *MessageAdapter) MarkRead(ctx context.Context, receiverID, senderID string) error {
	query, args, err := a.db.Update("messages").
		Set(goqu.Record{"read": true}).
		Where(goqu.Ex{"receiver_id": receiverID, "sender_id": senderID, "read": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to mark messages read", err)
	}
	return nil
}

func (a *MessageAdapter) list(ctx context.Context, where goqu.Expression, order exp.OrderedExpression) ([]*entities.Message, error) {
	query, args, err := a.db.Select(messageColumns...).From("messages").
		Where(where).Order(order).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list messages", err)
	}
	defer rows.Close()

	var out []*entities.Message
	for rows.Next() {
		msg := &entities.Message{}
		err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.SenderName,
			&msg.ReceiverID,
			&msg.ReceiverName,
			&msg.Content,
			&msg.Timestamp,
			&msg.Read,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan message", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate messages", err)
	}
	return out, nil
}
