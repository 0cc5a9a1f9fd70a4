package repository

import (
	"context"
	"fmt"

	"job_board_service/internal/chat/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DirectoryRepository resolves party identities. A missing row is
// "not found", reported as (nil, nil) rather than an error.
type DirectoryRepository interface {
	FindJobSeeker(ctx context.Context, id string) (*domain.Party, error)
	FindEmployer(ctx context.Context, id string) (*domain.Party, error)
}

type directoryRepository struct {
	db *pgxpool.Pool
}

// NewDirectoryRepository create a DirectoryRepository
func NewDirectoryRepository(db *pgxpool.Pool) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) FindJobSeeker(ctx context.Context, id string) (*domain.Party, error) {
	row := r.db.QueryRow(ctx, "SELECT id, first_name, last_name FROM job_seekers WHERE id = $1", id)

	var party domain.Party
	var firstName, lastName string
	if err := row.Scan(&party.ID, &firstName, &lastName); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	party.DisplayName = fmt.Sprintf("%s %s", firstName, lastName)

	return &party, nil
}

func (r *directoryRepository) FindEmployer(ctx context.Context, id string) (*domain.Party, error) {
	row := r.db.QueryRow(ctx, "SELECT id, company_name FROM employers WHERE id = $1", id)

	var party domain.Party
	if err := row.Scan(&party.ID, &party.DisplayName); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &party, nil
}
