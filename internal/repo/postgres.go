package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"huffpress/internal/model"
)

type jobRepoPostgres struct {
	pool *pgxpool.Pool
}

func NewJobRepoPostgres(pool *pgxpool.Pool) JobRepo {
	return &jobRepoPostgres{pool: pool}
}

func (r *jobRepoPostgres) Save(j *model.Job) error {
	_, err := r.pool.Exec(context.Background(), `
INSERT INTO compression_jobs (id, kind, input_name, output_name, format, input_size, output_size, ratio, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
  kind = EXCLUDED.kind,
  input_name = EXCLUDED.input_name,
  output_name = EXCLUDED.output_name,
  format = EXCLUDED.format,
  input_size = EXCLUDED.input_size,
  output_size = EXCLUDED.output_size,
  ratio = EXCLUDED.ratio,
  created_at = EXCLUDED.created_at`,
		j.ID, string(j.Kind), j.InputName, j.OutputName, j.Format,
		j.InputSize, j.OutputSize, j.Ratio, j.CreatedAt)
	return err
}

func (r *jobRepoPostgres) FindByID(id string) (*model.Job, error) {
	row := r.pool.QueryRow(context.Background(), `
SELECT id, kind, input_name, output_name, format, input_size, output_size, ratio, created_at
FROM compression_jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return j, err
}

func (r *jobRepoPostgres) List() ([]*model.Job, error) {
	rows, err := r.pool.Query(context.Background(), `
SELECT id, kind, input_name, output_name, format, input_size, output_size, ratio, created_at
FROM compression_jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var j model.Job
	var kind string
	if err := row.Scan(&j.ID, &kind, &j.InputName, &j.OutputName, &j.Format,
		&j.InputSize, &j.OutputSize, &j.Ratio, &j.CreatedAt); err != nil {
		return nil, err
	}
	j.Kind = model.JobKind(kind)
	return &j, nil
}
