package service

import (
	"context"
	"errors"

	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/types"
	"gorm.io/gorm"
)

func checkRecipeLimit(limit *int) error {
	if limit != nil && *limit < 0 {
		return invalid("recipe_limits must not be negative")
	}
	return nil
}

// ListSubscriptions returns the users followerID follows, each with a
// preview of at most recipeLimit recipes (all when nil) and their recipe count.
func (s *UserService) ListSubscriptions(ctx context.Context, followerID uint, params pagination.Params, recipeLimit *int, baseURL string) (pagination.Page[types.SubscriptionResponse], error) {
	if err := checkRecipeLimit(recipeLimit); err != nil {
		return pagination.Page[types.SubscriptionResponse]{}, err
	}

	var (
		total    int64
		users    []models.User
		previews map[uint][]models.Recipe
		counts   map[uint]int64
	)
	err := readTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).Where("follower_id = ?", followerID).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Joins("JOIN subscriptions ON subscriptions.following_id = users.id").
			Where("subscriptions.follower_id = ?", followerID).
			Order("users.id").
			Offset(params.Offset()).
			Limit(params.Size).
			Find(&users).Error; err != nil {
			return err
		}
		var err error
		ids := userIDs(users)
		if previews, err = recipePreviews(tx, ids, recipeLimit); err != nil {
			return err
		}
		counts, err = recipeCounts(tx, ids)
		return err
	})
	if err != nil {
		return pagination.Page[types.SubscriptionResponse]{}, err
	}

	// every listed user is followed by construction
	v := Viewer{ID: &followerID, Following: newIDSet(userIDs(users))}
	results := make([]types.SubscriptionResponse, len(users))
	for i := range users {
		results[i] = toSubscriptionResponse(&users[i], previews[users[i].ID], counts[users[i].ID], v)
	}
	return pagination.NewPage(results, total, params, baseURL), nil
}

// Subscribe makes followerID follow followingID
func (s *UserService) Subscribe(ctx context.Context, followerID, followingID uint, recipeLimit *int) (*types.SubscriptionResponse, error) {
	if err := checkRecipeLimit(recipeLimit); err != nil {
		return nil, err
	}
	if followerID == followingID {
		return nil, invalid("You cannot subscribe to yourself")
	}

	var resp types.SubscriptionResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := findUser(tx, followingID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Subscription{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("You are already subscribed to this user")
		}
		err = tx.Create(&models.Subscription{FollowerID: followerID, FollowingID: followingID}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict("You are already subscribed to this user")
		}
		if err != nil {
			return err
		}

		previews, err := recipePreviews(tx, []uint{author.ID}, recipeLimit)
		if err != nil {
			return err
		}
		counts, err := recipeCounts(tx, []uint{author.ID})
		if err != nil {
			return err
		}
		v := Viewer{ID: &followerID, Following: newIDSet([]uint{author.ID})}
		resp = toSubscriptionResponse(author, previews[author.ID], counts[author.ID], v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unsubscribe removes the follow edge; a missing edge is a validation error
func (s *UserService) Unsubscribe(ctx context.Context, followerID, followingID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, followingID); err != nil {
			return err
		}
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalid("You are not subscribed to this user")
		}
		return nil
	})
}
