package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lenarsag/foodgram/backend/internal/logging"
	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/storage"
	"github.com/lenarsag/foodgram/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles accounts, profiles and subscriptions
type UserService struct {
	db         *gorm.DB
	images     storage.ImageStore
	bcryptCost int
}

func NewUserService(db *gorm.DB, images storage.ImageStore) *UserService {
	return &UserService{db: db, images: images, bcryptCost: bcrypt.DefaultCost}
}

// SignupInput is the data needed to register a user
type SignupInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Signup registers a new active user
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*types.UserResponse, error) {
	if !types.ValidUsername(in.Username) {
		return nil, invalid("username may contain only letters, digits and @/./+/-/_")
	}
	if !types.ValidPassword(in.Password) {
		return nil, invalid("password must be at least 8 characters with upper and lower case letters, a digit and one of @$!%%*?&")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ? OR email = ?", user.Username, user.Email).First(&existing).Error
		switch {
		case err == nil && existing.Username == user.Username:
			return conflict("Username already taken")
		case err == nil:
			return conflict("Email already registered")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		err = tx.Create(&user).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict("Username or email already registered")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("user registered")
	resp := toUserResponse(&user, Viewer{})
	return &resp, nil
}

// ListUsers returns one page of users in id order
func (s *UserService) ListUsers(ctx context.Context, viewerID *uint, params pagination.Params, baseURL string) (pagination.Page[types.UserResponse], error) {
	var (
		total int64
		users []models.User
		v     = Viewer{ID: viewerID}
	)
	err := readTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Order("users.id").Offset(params.Offset()).Limit(params.Size).Find(&users).Error; err != nil {
			return err
		}
		var err error
		v.Following, err = followingAmong(tx, viewerID, userIDs(users))
		return err
	})
	if err != nil {
		return pagination.Page[types.UserResponse]{}, err
	}

	results := make([]types.UserResponse, len(users))
	for i := range users {
		results[i] = toUserResponse(&users[i], v)
	}
	return pagination.NewPage(results, total, params, baseURL), nil
}

// GetUser returns a user profile as seen by viewerID
func (s *UserService) GetUser(ctx context.Context, viewerID *uint, id uint) (*types.UserResponse, error) {
	var (
		user models.User
		v    = Viewer{ID: viewerID}
	)
	err := readTx(ctx, s.db, func(tx *gorm.DB) error {
		u, err := findUser(tx, id)
		if err != nil {
			return err
		}
		user = *u
		v.Following, err = followingAmong(tx, viewerID, []uint{id})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(&user, v)
	return &resp, nil
}

// SetPassword replaces the password after checking the current one
func (s *UserService) SetPassword(ctx context.Context, userID uint, current, next string) error {
	if !types.ValidPassword(next) {
		return invalid("new password does not meet the password policy")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
			return invalid("Current password is incorrect")
		}
		return tx.Model(user).Update("password_hash", string(hash)).Error
	})
}

// SetAvatar stores a base64 image as the user's avatar and returns its reference
func (s *UserService) SetAvatar(ctx context.Context, userID uint, payload string) (string, error) {
	img, err := storage.DecodeImage(payload)
	if err != nil {
		return "", invalid("avatar must be a base64 encoded image")
	}

	var ref, stale string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		if ref, err = s.images.Save(ctx, img, storage.AvatarFolder); err != nil {
			return err
		}
		if err := tx.Model(user).Update("avatar", ref).Error; err != nil {
			return err
		}
		if user.Avatar != nil && *user.Avatar != ref {
			stale, err = unreferencedAvatar(tx, *user.Avatar)
		}
		return err
	})
	if err != nil {
		return "", err
	}
	s.deleteImage(ctx, stale)
	return ref, nil
}

// DeleteAvatar clears the avatar; a user without one gets a validation error
func (s *UserService) DeleteAvatar(ctx context.Context, userID uint) error {
	var stale string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}
		if user.Avatar == nil {
			return invalid("User has no avatar")
		}
		if err := tx.Model(user).Update("avatar", nil).Error; err != nil {
			return err
		}
		stale, err = unreferencedAvatar(tx, *user.Avatar)
		return err
	})
	if err != nil {
		return err
	}
	s.deleteImage(ctx, stale)
	return nil
}

func (s *UserService) deleteImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("image", ref).Msg("failed to delete avatar")
	}
}

func findUser(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User %d not found", id)
		}
		return nil, err
	}
	return &user, nil
}

func unreferencedAvatar(tx *gorm.DB, ref string) (string, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where("avatar = ?", ref).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", nil
	}
	return ref, nil
}
