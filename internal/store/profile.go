package store

import (
	"context"
	"fmt"

	"ecarry-photography/internal/database"
	"ecarry-photography/internal/model"

	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, user_id, name, email, image_url, created_at, updated_at`

// ProfileUpdate 部分更新內容，nil 欄位維持原值
type ProfileUpdate struct {
	Name     *string
	ImageURL *string
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	p := &model.Profile{}
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func GetProfileByUserID(ctx context.Context, db database.DB, userID string) (*model.Profile, error) {
	row := db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles WHERE user_id = $1`,
		userID,
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("GetProfileByUserID: %w", err)
	}
	return p, nil
}

// CreateProfile 新增 profile；同一 user_id 已存在時回傳既有資料
func CreateProfile(ctx context.Context, db database.DB, p *model.Profile) (*model.Profile, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, name, email, image_url)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING `+profileColumns,
		p.UserID,
		p.Name,
		p.Email,
		p.ImageURL,
	)
	created, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("CreateProfile: %w", err)
	}
	return created, nil
}

// UpdateProfile 只更新有帶值的欄位，回傳更新後的資料
func UpdateProfile(ctx context.Context, db database.DB, userID string, u ProfileUpdate) (*model.Profile, error) {
	row := db.QueryRow(ctx,
		`UPDATE profiles
		 SET name = COALESCE($2, name),
		     image_url = COALESCE($3, image_url),
		     updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+profileColumns,
		userID,
		u.Name,
		u.ImageURL,
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}
	return p, nil
}
