package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/entity"
	repo "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/repository"
)

const accountColumns = `id, name, email, password_hash, role, phone, organization, profile_picture, is_verified, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(a *entity.Account) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, email, password_hash, role, phone, organization, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.Name, a.Email, a.PasswordHash, string(a.Role), a.Phone, a.Organization, a.ProfilePicture)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return repo.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(id string) (*entity.Account, error) {
	return r.getOne(`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) GetByEmail(email string) (*entity.Account, error) {
	return r.getOne(`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

func (r *AccountRepository) getOne(query string, arg any) (*entity.Account, error) {
	ctx := context.Background()
	a := &entity.Account{}

	row := r.pool.QueryRow(ctx, query, arg)
	if err := scanAccount(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) Update(a *entity.Account) error {
	ctx := context.Background()
	a.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, phone = $2, organization = $3, profile_picture = $4, updated_at = $5
		WHERE id = $6
	`, a.Name, a.Phone, a.Organization, a.ProfilePicture, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) List() ([]*entity.Account, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Account
	for rows.Next() {
		a := &entity.Account{}
		if err := scanAccount(rows, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) SetVerified(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts SET is_verified = TRUE, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row, a *entity.Account) error {
	var role string
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &role, &a.Phone,
		&a.Organization, &a.ProfilePicture, &a.IsVerified, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return err
	}
	a.Role = entity.Role(role)
	return nil
}

var _ repo.AccountRepository = (*AccountRepository)(nil)
