package repository

import (
	"context"

	"rategrid/internal/domain/rate"
	"rategrid/internal/infra"
	"rategrid/internal/infra/db"
	"rategrid/internal/infra/repository/converter"
	"rategrid/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// RateRepository persists rate aggregates as one document row per rate. The
// filterable attributes are mirrored into indexed columns on every write; the
// document is what reads rebuild the aggregate from.
type RateRepository struct {
	db db.DBTX
}

func NewRateRepository(dbx db.DBTX) *RateRepository {
	return &RateRepository{db: dbx}
}

const createRateQuery = `
INSERT INTO rates (
	id, group_id, name, rate_type, priority, approval_status, sync_status,
	valid_from, valid_to, version, document, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

const updateRateQuery = `
UPDATE rates SET
	name = $2, rate_type = $3, priority = $4, approval_status = $5,
	sync_status = $6, valid_from = $7, valid_to = $8, version = $9,
	document = $10, updated_at = $11
WHERE id = $1 AND version = $12
`

const deleteRateQuery = `
DELETE FROM rates WHERE id = $1
`

const findRateQuery = `
SELECT id, group_id, version, created_by, created_at, updated_at, document
FROM rates
WHERE id = $1
`

const findRateForUpdateQuery = findRateQuery + `FOR UPDATE
`

const findApprovedByGroupQuery = `
SELECT id, group_id, version, created_by, created_at, updated_at, document
FROM rates
WHERE group_id = $1 AND approval_status = 'approved'
ORDER BY id
`

const findApprovedByGroupForUpdateQuery = findApprovedByGroupQuery + `FOR UPDATE
`

func (r *RateRepository) Create(ctx context.Context, tx db.DBTX, snap rate.Snapshot) error {
	doc, err := converter.MarshalRateDocument(snap)
	if err != nil {
		return infra.WrapRepoErr("failed to encode rate document", err)
	}
	_, err = tx.Exec(ctx, createRateQuery,
		snap.ID, snap.GroupID, snap.Name, snap.RateType.String(), snap.Priority,
		snap.ApprovalStatus.String(), snap.SyncStatus.String(),
		pgconv.DateToPgtype(snap.Validity.Start), pgconv.DateToPgtype(snap.Validity.End),
		snap.Version, doc, snap.CreatedBy,
		pgconv.TimeToPgtype(snap.CreatedAt), pgconv.TimeToPgtype(snap.UpdatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create rate", err)
	}
	return nil
}

func (r *RateRepository) Update(ctx context.Context, tx db.DBTX, snap rate.Snapshot, expectedVersion int64) error {
	doc, err := converter.MarshalRateDocument(snap)
	if err != nil {
		return infra.WrapRepoErr("failed to encode rate document", err)
	}
	tag, err := tx.Exec(ctx, updateRateQuery,
		snap.ID, snap.Name, snap.RateType.String(), snap.Priority,
		snap.ApprovalStatus.String(), snap.SyncStatus.String(),
		pgconv.DateToPgtype(snap.Validity.Start), pgconv.DateToPgtype(snap.Validity.End),
		snap.Version, doc, pgconv.TimeToPgtype(snap.UpdatedAt), expectedVersion,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update rate", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rate version changed", nil, infra.KindConflict)
	}
	return nil
}

func (r *RateRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteRateQuery, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete rate", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rate not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RateRepository) FindByID(ctx context.Context, dbx db.DBTX, id uuid.UUID) (*rate.Snapshot, error) {
	return r.findOne(ctx, dbx, findRateQuery, id)
}

func (r *RateRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*rate.Snapshot, error) {
	return r.findOne(ctx, tx, findRateForUpdateQuery, id)
}

// FindSnapshotByID serves the quote path, which reads outside any
// transaction.
func (r *RateRepository) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*rate.Snapshot, error) {
	return r.findOne(ctx, r.db, findRateQuery, id)
}

func (r *RateRepository) findOne(ctx context.Context, dbx db.DBTX, query string, id uuid.UUID) (*rate.Snapshot, error) {
	snap, err := scanRate(dbx.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rate not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rate", err)
	}
	return snap, nil
}

func (r *RateRepository) FindApprovedByGroup(ctx context.Context, dbx db.DBTX, groupID uuid.UUID) ([]rate.Snapshot, error) {
	return r.findGroup(ctx, dbx, findApprovedByGroupQuery, groupID)
}

func (r *RateRepository) FindApprovedByGroupForUpdate(ctx context.Context, tx db.DBTX, groupID uuid.UUID) ([]rate.Snapshot, error) {
	return r.findGroup(ctx, tx, findApprovedByGroupForUpdateQuery, groupID)
}

func (r *RateRepository) findGroup(ctx context.Context, dbx db.DBTX, query string, groupID uuid.UUID) ([]rate.Snapshot, error) {
	rows, err := dbx.Query(ctx, query, groupID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query group rates", err)
	}
	defer rows.Close()

	var snaps []rate.Snapshot
	for rows.Next() {
		snap, err := scanRate(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan group rate", err)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read group rates", err)
	}
	return snaps, nil
}

func scanRate(row pgx.Row) (*rate.Snapshot, error) {
	var (
		cols      converter.RateColumns
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		doc       []byte
	)
	if err := row.Scan(&cols.ID, &cols.GroupID, &cols.Version, &cols.CreatedBy, &createdAt, &updatedAt, &doc); err != nil {
		return nil, err
	}
	cols.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	cols.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	snap, err := converter.UnmarshalRateDocument(doc, cols)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
