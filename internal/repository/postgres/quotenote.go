package postgres

import (
	"context"

	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
	"github.com/quoteflow/quote-service/internal/types"
)

type quoteNoteRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewQuoteNoteRepository(db *postgres.DB, logger *logger.Logger) quotenote.Repository {
	return &quoteNoteRepository{db: db, logger: logger}
}

func (r *quoteNoteRepository) Create(ctx context.Context, n *quotenote.Note) error {
	query := `
		INSERT INTO quote_notes (
			id, quote_id, author_type, author_name, note_type, body, read, created_at, updated_at
		) VALUES (
			:id, :quote_id, :author_type, :author_name, :note_type, :body, :read, :created_at, :updated_at
		)`

	r.logger.Debugw("creating quote note", "note_id", n.ID, "quote_id", n.QuoteID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, n)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create note").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteNoteRepository) ListByQuote(ctx context.Context, quoteID string) ([]*quotenote.Note, error) {
	var notes []*quotenote.Note
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &notes,
		`SELECT * FROM quote_notes WHERE quote_id = $1 ORDER BY created_at ASC`, quoteID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list notes").
			Mark(ierr.ErrDatabase)
	}
	return notes, nil
}

func (r *quoteNoteRepository) ListUnreadForUser(ctx context.Context, userID string) ([]*quotenote.Note, error) {
	var notes []*quotenote.Note
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &notes, `
		SELECT n.* FROM quote_notes n
		JOIN quotes q ON q.id = n.quote_id
		WHERE q.user_id = $1 AND n.author_type = $2 AND n.read = false
		ORDER BY n.created_at DESC`,
		userID, types.NoteAuthorClient)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list unread notes").
			Mark(ierr.ErrDatabase)
	}
	return notes, nil
}

func (r *quoteNoteRepository) MarkRead(ctx context.Context, quoteID string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE quote_notes SET read = true WHERE quote_id = $1 AND author_type = $2`,
		quoteID, types.NoteAuthorClient)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to mark notes read").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
