package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/prajan97/diamond-intel/pkg/types"
)

var contactColumns = []string{
	"id", "name", "company", "type", "email", "phone", "location",
	"preferences", "notes", "last_contact", "date_added",
}

func (b *Backend) contactQuery() sq.SelectBuilder {
	return b.sb.Select(contactColumns...).From("contacts")
}

// ListContacts returns contacts matching filter, ordered by name.
func (b *Backend) ListContacts(ctx context.Context, filter types.ContactFilter) ([]types.Contact, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	q := b.contactQuery()
	if filter.Type != "" {
		q = q.Where(sq.Eq{"type": filter.Type})
	}
	contacts, err := fetchAll[types.Contact](ctx, b.db, q.OrderBy("name COLLATE NOCASE", "id"))
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return contacts, nil
}

// GetContact returns a single contact.
func (b *Backend) GetContact(ctx context.Context, id int64) (*types.Contact, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.getContact(ctx, b.db, id)
}

func (b *Backend) getContact(ctx context.Context, q sqlx.QueryerContext, id int64) (*types.Contact, error) {
	return fetchOne[types.Contact](ctx, q, b.contactQuery().Where(sq.Eq{"id": id}))
}

// CreateContact inserts a contact. date_added is today; last_contact
// defaults to today when not supplied.
func (b *Backend) CreateContact(ctx context.Context, in types.ContactInput) (*types.Contact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	today := b.today()
	res, err := b.execute(ctx, b.sb.Insert("contacts").
		Columns(
			"name", "company", "type", "email", "phone", "location",
			"preferences", "notes", "last_contact", "date_added",
		).
		Values(
			in.Name, in.Company, in.Type, in.Email, in.Phone, in.Location,
			in.Preferences, in.Notes, sq.Expr("COALESCE(?, ?)", in.LastContact, today), today,
		))
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return b.getContact(ctx, b.db, id)
}

// UpdateContact replaces every mutable field of a contact. It returns
// types.ErrNotFound when id does not exist.
func (b *Backend) UpdateContact(ctx context.Context, id int64, in types.ContactInput) (*types.Contact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	res, err := b.execute(ctx, b.sb.Update("contacts").
		SetMap(map[string]any{
			"name":         in.Name,
			"company":      in.Company,
			"type":         in.Type,
			"email":        in.Email,
			"phone":        in.Phone,
			"location":     in.Location,
			"preferences":  in.Preferences,
			"notes":        in.Notes,
			"last_contact": in.LastContact,
		}).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, fmt.Errorf("updating contact %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, types.ErrNotFound
	}
	return b.getContact(ctx, b.db, id)
}

// DeleteContact removes a contact. Stones and deals that reference it keep
// the dangling id. Deleting a missing id is not an error.
func (b *Backend) DeleteContact(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return err
	}
	if _, err := b.execute(ctx, b.sb.Delete("contacts").Where(sq.Eq{"id": id})); err != nil {
		return fmt.Errorf("deleting contact %d: %w", id, err)
	}
	return nil
}
