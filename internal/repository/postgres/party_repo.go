package postgres

import (
	"context"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/jackc/pgx/v5"
)

var _ returns.PartyReader = (*PartyRepo)(nil)

type PartyRepo struct {
	db *DB
}

func NewPartyRepo(db *DB) *PartyRepo { return &PartyRepo{db: db} }

const (
	qPartyByID = `
SELECT id, role, name, full_name, email, mobile
FROM contractors
WHERE id = $1;`

	qPartyByIDAndRole = `
SELECT id, role, name, full_name, email, mobile
FROM contractors
WHERE id = $1 AND role = $2;`
)

func (r *PartyRepo) FindSellerByID(ctx context.Context, id int64) (*returns.Party, error) {
	return r.findByRole(ctx, id, returns.RoleSeller, "seller")
}

func (r *PartyRepo) FindEmployeeByID(ctx context.Context, id int64) (*returns.Party, error) {
	return r.findByRole(ctx, id, returns.RoleEmployee, "employee")
}

// FindContractorByID returns the contractor whatever its role.
func (r *PartyRepo) FindContractorByID(ctx context.Context, id int64) (*returns.Party, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var p returns.Party
	if err := scanParty(r.db.Pool.QueryRow(ctx, qPartyByID, id), &p); err != nil {
		return nil, notFound(err, "contractor", id)
	}
	return &p, nil
}

func (r *PartyRepo) findByRole(ctx context.Context, id int64, role returns.Role, what string) (*returns.Party, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var p returns.Party
	if err := scanParty(r.db.Pool.QueryRow(ctx, qPartyByIDAndRole, id, string(role)), &p); err != nil {
		return nil, notFound(err, what, id)
	}
	return &p, nil
}

func scanParty(row pgx.Row, p *returns.Party) error {
	var role string
	if err := row.Scan(&p.ID, &role, &p.Name, &p.FullName, &p.Email, &p.Mobile); err != nil {
		return err
	}
	p.Role = returns.Role(role)
	return nil
}
