package usecase

import (
	"context"
	"sync"
	"time"

	"tripspot/internal/domain/entity"
	"tripspot/internal/domain/repository"
	"tripspot/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	ensured  sync.Map
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// EnsureUser creates the user document on first sight of a uid. Known uids
// are remembered so later requests skip the write.
func (uc *UserUseCase) EnsureUser(ctx context.Context, identity *entity.Identity) error {
	if identity == nil || identity.UID == "" {
		return errors.Unauthorized("Missing identity", nil)
	}
	if _, ok := uc.ensured.Load(identity.UID); ok {
		return nil
	}

	_, err := uc.userRepo.CreateIfAbsent(ctx, &entity.User{
		ID:          identity.UID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		Provider:    identity.Provider,
		CreatedAt:   time.Now(),
		Wishlist:    []string{},
	})
	if err != nil {
		return err
	}

	uc.ensured.Store(identity.UID, struct{}{})
	return nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	if uid == "" {
		return nil, errors.Unauthorized("로그인 후 이용해주세요.", nil)
	}
	return uc.userRepo.GetByID(ctx, uid)
}
