package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"propwise/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct {
	db *sql.DB
	d  Dialect
}

func New(db *sql.DB, driver string) (*Repo, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &Repo{db: db, d: d}, nil
}

// bind fills the %s slots of a statement with the dialect's placeholders.
func (r *Repo) bind(stmt string, n int) string {
	ph := make([]any, n)
	for i := range ph {
		ph[i] = r.d.placeholder(i + 1)
	}
	return fmt.Sprintf(stmt, ph...)
}

// Migrate creates the tables when they do not exist yet.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range r.d.schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (r *Repo) insert(ctx context.Context, stmt string, args ...any) (int64, error) {
	if r.d.returningID {
		var id int64
		err := r.db.QueryRowContext(ctx, stmt+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) InsertListing(ctx context.Context, l domain.Listing) (int64, error) {
	id, err := r.insert(ctx, r.bind(insertListingSQL, 6),
		l.Location,
		l.Sqft,
		l.Bath,
		l.BHK,
		l.ListedPrice,
		valStr(l.Image),
	)
	if err != nil {
		return 0, fmt.Errorf("insert listing: %w", err)
	}
	return id, nil
}

func (r *Repo) InsertInquiry(ctx context.Context, i domain.Inquiry) (int64, error) {
	id, err := r.insert(ctx, r.bind(insertInquirySQL, 4), i.PropertyID, i.Name, i.Phone, i.Message)
	if err != nil {
		return 0, fmt.Errorf("insert inquiry: %w", err)
	}
	return id, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (domain.Listing, error) {
	var l domain.Listing
	var image sql.NullString
	if err := s.Scan(&l.ID, &l.Location, &l.Sqft, &l.Bath, &l.BHK, &l.ListedPrice, &image); err != nil {
		return domain.Listing{}, err
	}
	if image.Valid && image.String != "" {
		img := image.String
		l.Image = &img
	}
	return l, nil
}

func (r *Repo) GetListing(ctx context.Context, id int64) (domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, r.bind(getListingSQL, 1), id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Listing{}, domain.ErrNotFound
		}
		return domain.Listing{}, fmt.Errorf("get listing %d: %w", id, err)
	}
	return l, nil
}

func (r *Repo) queryListings(ctx context.Context, q *sql.Tx, stmt string, args ...any) ([]domain.Listing, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if q != nil {
		rows, err = q.QueryContext(ctx, stmt, args...)
	} else {
		rows, err = r.db.QueryContext(ctx, stmt, args...)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Listing, 0, domain.PageSize)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// FindListings returns the total match count and one page of matches.
// Both statements run in one transaction so the count and the page agree.
func (r *Repo) FindListings(ctx context.Context, f domain.ListingFilter) (domain.ListingPage, error) {
	bq := buildListingQuery(r.d, f)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, bq.countSQL, bq.countArgs...).Scan(&total); err != nil {
		return domain.ListingPage{}, fmt.Errorf("count listings: %w", err)
	}

	items := []domain.Listing{}
	if total > 0 {
		items, err = r.queryListings(ctx, tx, bq.pageSQL, bq.pageArgs...)
		if err != nil {
			return domain.ListingPage{}, fmt.Errorf("find listings: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.ListingPage{}, fmt.Errorf("commit: %w", err)
	}

	return domain.ListingPage{
		Items:      items,
		Total:      total,
		Page:       bq.page,
		TotalPages: domain.TotalPages(total),
	}, nil
}

func (r *Repo) AllListings(ctx context.Context) ([]domain.Listing, error) {
	ls, err := r.queryListings(ctx, nil, allListingsSQL)
	if err != nil {
		return nil, fmt.Errorf("all listings: %w", err)
	}
	return ls, nil
}

func (r *Repo) DistinctLocations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, distinctLocationsSQL)
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func (r *Repo) ListInquiries(ctx context.Context) ([]domain.InquiryView, error) {
	rows, err := r.db.QueryContext(ctx, listInquiriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	out := []domain.InquiryView{}
	for rows.Next() {
		var iv domain.InquiryView
		if err := rows.Scan(
			&iv.ID,
			&iv.PropertyID,
			&iv.Name,
			&iv.Phone,
			&iv.Message,
			&iv.Location,
			&iv.Sqft,
			&iv.BHK,
			&iv.Bath,
			&iv.ListedPrice,
		); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}
