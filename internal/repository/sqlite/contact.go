package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
)

type ContactRepo struct {
	conn *sql.DB
}

var _ repository.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `id, name, email, subject, project_type, message, is_read, starred, created_at`

// Create stores a new, unread, unstarred message.
func (r *ContactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	m.ID = xid.New().String()
	m.CreatedAt = time.Now().UTC()
	m.Read = false
	m.Starred = false

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO contact_messages (`+contactColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Subject, m.ProjectType, m.Message, m.Read, m.Starred, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting contact message: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	m, err := scanContact(r.conn.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("message", id)
		}
		return nil, fmt.Errorf("sqlite: getting contact message %s: %w", id, err)
	}
	return m, nil
}

func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_messages ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contact messages: %w", err)
	}
	defer rows.Close()

	msgs := []model.ContactMessage{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning contact message row: %w", err)
		}
		msgs = append(msgs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contact message rows: %w", err)
	}
	return msgs, nil
}

// SetFlags updates only the flags that are non-nil. With no flags set it
// still verifies the message exists.
func (r *ContactRepo) SetFlags(ctx context.Context, id string, flags model.MessageFlags) error {
	var sets []string
	var args []any
	if flags.Read != nil {
		sets = append(sets, "is_read = ?")
		args = append(args, *flags.Read)
	}
	if flags.Starred != nil {
		sets = append(sets, "starred = ?")
		args = append(args, *flags.Starred)
	}
	if len(sets) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	args = append(args, id)

	res, err := r.conn.ExecContext(ctx,
		`UPDATE contact_messages SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating flags of contact message %s: %w", id, err)
	}
	return checkAffected(res, apperror.NotFound("message", id))
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting contact message %s: %w", id, err)
	}
	return checkAffected(res, apperror.NotFound("message", id))
}

func (r *ContactRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE is_read = 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting unread messages: %w", err)
	}
	return n, nil
}

func scanContact(s rowScanner) (*model.ContactMessage, error) {
	var m model.ContactMessage
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.ProjectType, &m.Message,
		&m.Read, &m.Starred, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
