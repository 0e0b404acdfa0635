package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

var notificationColumns = []interface{}{
	"id", "user_id", "title", "message", "type", "read", "created_at", "link",
}

// NotificationAdapter implements the NotificationRepository interface on
// PostgreSQL
type NotificationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new notification
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	record := goqu.Record{
		"id":         notification.ID,
		"user_id":    notification.UserID,
		"title":      notification.Title,
		"message":    notification.Message,
		"type":       notification.Type,
		"read":       notification.Read,
		"created_at": notification.Timestamp,
		"link":       nullString(notification.Link),
	}

	query, args, err := a.db.Insert("notifications").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}
	return nil
}

// ListForUser retrieves a user's notifications, newest first
func (a *NotificationAdapter) ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	query, args, err := a.db.Select(notificationColumns...).From("notifications").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	defer rows.Close()

	var out []*entities.Notification
	for rows.Next() {
		n := &entities.Notification{}
		var link sql.NullString
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.Read,
			&n.Timestamp,
			&link,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan notification", err)
		}
		n.Link = link.String
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate notifications", err)
	}
	return out, nil
}

// MarkRead flips the read flag on one notification; no-op when absent
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	query, args, err := a.db.Update("notifications").
		Set(goqu.Record{"read": true}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to mark notification read", err)
	}
	return nil
}

// MarkAllRead flips the read flag on all of a user's unread notifications
func (a *NotificationAdapter) MarkAllRead(ctx context.Context, userID string) error {
	query, args, err := a.db.Update("notifications").
		Set(goqu.Record{"read": true}).
		Where(goqu.Ex{"user_id": userID, "read": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}
