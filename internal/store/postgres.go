package store

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"agenda/internal/model"
)

// Postgres keeps the same two tables in a database. Save rewrites both in one transaction.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate runs the schema file; every statement in it is idempotent.
func (p *Postgres) Migrate(ctx context.Context, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := p.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context) ([]model.User, []model.Meeting, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT name, password, email, phone FROM agenda_users ORDER BY seq`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Name, &u.Password, &u.Email, &u.Phone); err != nil {
			return nil, nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	mrows, err := p.pool.Query(ctx,
		`SELECT sponsor, participants, start_time, end_time, title
		 FROM agenda_meetings ORDER BY seq`)
	if err != nil {
		return nil, nil, err
	}
	defer mrows.Close()

	var meetings []model.Meeting
	for mrows.Next() {
		var m model.Meeting
		if err := mrows.Scan(&m.Sponsor, &m.Participants, &m.Start, &m.End, &m.Title); err != nil {
			return nil, nil, err
		}
		if len(m.Participants) == 0 {
			m.Participants = nil
		}
		meetings = append(meetings, m)
	}
	return users, meetings, mrows.Err()
}

func (p *Postgres) Save(ctx context.Context, users []model.User, meetings []model.Meeting) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// whole-dataset rewrite
	if _, err := tx.Exec(ctx, `DELETE FROM agenda_meetings`); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM agenda_users`); err != nil {
		return err
	}

	for i, u := range users {
		_, err = tx.Exec(ctx,
			`INSERT INTO agenda_users (seq, name, password, email, phone) VALUES ($1,$2,$3,$4,$5)`,
			i, u.Name, u.Password, u.Email, u.Phone,
		)
		if err != nil {
			return err
		}
	}

	for i, m := range meetings {
		parts := m.Participants
		if parts == nil {
			parts = []string{}
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO agenda_meetings (seq, title, sponsor, participants, start_time, end_time)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			i, m.Title, m.Sponsor, parts, m.Start, m.End,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
