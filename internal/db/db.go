package db

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return conn, conn.Ping()
}

// Migrate applies the schema. Statements are idempotent so the app can run
// it on every start. Unique constraints on the like tables are the real
// guard against duplicate likes under concurrent toggles.
func Migrate(conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users(
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE,
			phone_number TEXT UNIQUE,
			auth_type TEXT NOT NULL CHECK(auth_type IN ('email','phone')),
			user_status TEXT NOT NULL DEFAULT 'new'
				CHECK(user_status IN ('new','code_verified','done','photo_done')),
			username TEXT UNIQUE NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			photo TEXT NOT NULL DEFAULT '',
			refresh_token TEXT,
			refresh_expires_at TIMESTAMPTZ,
			refresh_revoked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS user_confirmations(
			id BIGSERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			code TEXT NOT NULL,
			auth_type TEXT NOT NULL CHECK(auth_type IN ('email','phone')),
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS password_resets(
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT UNIQUE NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			used_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS posts(
			id BIGSERIAL PRIMARY KEY,
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			image TEXT NOT NULL,
			caption TEXT NOT NULL CHECK(char_length(caption) <= 2200),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS post_comments(
			id BIGSERIAL PRIMARY KEY,
			post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL CHECK(char_length(content) <= 1000),
			parent_id BIGINT REFERENCES post_comments(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS post_likes(
			id BIGSERIAL PRIMARY KEY,
			post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_post_like UNIQUE(post_id, author_id)
		);`,
		`CREATE TABLE IF NOT EXISTS comment_likes(
			id BIGSERIAL PRIMARY KEY,
			comment_id BIGINT NOT NULL REFERENCES post_comments(id) ON DELETE CASCADE,
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_comment_like UNIQUE(comment_id, author_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_confirmations_user ON user_confirmations(user_id, expires_at);`,
		`CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post ON post_comments(post_id);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_parent ON post_comments(parent_id);`,
	}
	ctx := context.Background()
	for _, s := range stmts {
		if _, err := conn.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
