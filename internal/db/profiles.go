package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/redflag/internal/types"
)

// UpsertProfile inserts or replaces the stored profile for rec.Username.
// CreatedAt is populated from the database.
func (db *DB) UpsertProfile(ctx context.Context, rec *ProfileRecord) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (username, analysis_id, followers, following, posts, bio, avatar_url, captions,
		                       flag, reasoning, red_flags, green_flags, message_opener, analyzed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (username) DO UPDATE SET
		     analysis_id = EXCLUDED.analysis_id,
		     followers = EXCLUDED.followers,
		     following = EXCLUDED.following,
		     posts = EXCLUDED.posts,
		     bio = EXCLUDED.bio,
		     avatar_url = EXCLUDED.avatar_url,
		     captions = EXCLUDED.captions,
		     flag = EXCLUDED.flag,
		     reasoning = EXCLUDED.reasoning,
		     red_flags = EXCLUDED.red_flags,
		     green_flags = EXCLUDED.green_flags,
		     message_opener = EXCLUDED.message_opener,
		     analyzed_at = EXCLUDED.analyzed_at
		 RETURNING created_at`,
		rec.Username, rec.AnalysisID, rec.Followers, rec.Following, rec.Posts, rec.Bio, rec.AvatarURL, rec.Captions,
		string(rec.Flag), rec.Reasoning, rec.RedFlags, rec.GreenFlags, rec.MessageOpener, rec.AnalyzedAt,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", rec.Username, err)
	}
	return nil
}

// GetProfile retrieves the stored profile for username.
// Returns nil, nil when no record exists.
func (db *DB) GetProfile(ctx context.Context, username string) (*ProfileRecord, error) {
	var rec ProfileRecord
	var flag string
	err := db.pool.QueryRow(ctx,
		`SELECT username, analysis_id, followers, following, posts, bio, avatar_url, captions,
		        flag, reasoning, red_flags, green_flags, message_opener, analyzed_at, created_at
		 FROM profiles WHERE username = $1`,
		username,
	).Scan(&rec.Username, &rec.AnalysisID, &rec.Followers, &rec.Following, &rec.Posts, &rec.Bio, &rec.AvatarURL,
		&rec.Captions, &flag, &rec.Reasoning, &rec.RedFlags, &rec.GreenFlags, &rec.MessageOpener,
		&rec.AnalyzedAt, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", username, err)
	}
	rec.Flag = types.Flag(flag)
	return &rec, nil
}
