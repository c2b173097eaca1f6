package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/errors"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/models"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/repository"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/utils/password"
)

// IdentityLinker reconciles an external provider identity with the local
// user store: create the user on first contact, link the provider subject
// id, and decide whether the account still needs a human-chosen password.
type IdentityLinker struct {
	users  repository.UserRepository
	links  repository.ExternalAccountRepository
	hasher interfaces.PasswordHasher
	logger *zap.Logger
}

// NewIdentityLinker creates a new IdentityLinker.
func NewIdentityLinker(
	users repository.UserRepository,
	links repository.ExternalAccountRepository,
	hasher interfaces.PasswordHasher,
	logger *zap.Logger,
) *IdentityLinker {
	return &IdentityLinker{
		users:  users,
		links:  links,
		hasher: hasher,
		logger: logger.Named("identity_linker"),
	}
}

// Resolve maps a provider profile onto a local user.
//
// A brand-new email gets a user with a random, never-disclosed password
// hash and password_configured=false. An existing user gains the
// provider's avatar if the account has none. Either way the provider link
// is upserted and needsPasswordSetup reflects whether a human ever chose
// a password for the account.
func (l *IdentityLinker) Resolve(ctx context.Context, profile models.ExternalProfile) (*models.LinkResult, error) {
	if profile.Email == "" {
		return nil, domainErrors.ErrProviderEmailMissing
	}

	user, err := l.users.FindByEmail(ctx, profile.Email)
	isNew := false
	switch {
	case err == nil:
		if user.AvatarURL == "" && profile.AvatarURL != "" {
			if err := l.users.UpdateAvatar(ctx, user.ID, profile.AvatarURL); err != nil {
				return nil, domainErrors.Wrap("identity resolve", err)
			}
			user.AvatarURL = profile.AvatarURL
		}
	case errors.Is(err, domainErrors.ErrUserNotFound):
		user, err = l.createUser(ctx, profile)
		if err != nil {
			return nil, err
		}
		isNew = true
	default:
		return nil, domainErrors.Wrap("identity resolve", err)
	}

	link := &models.ExternalAccount{
		ID:             uuid.New(),
		UserID:         user.ID,
		Provider:       profile.Provider,
		ExternalUserID: profile.ExternalUserID,
	}
	if err := l.links.Upsert(ctx, link); err != nil {
		return nil, domainErrors.Wrap("identity resolve", err)
	}

	return &models.LinkResult{
		User:               user,
		IsNewUser:          isNew,
		NeedsPasswordSetup: !user.PasswordConfigured,
	}, nil
}

func (l *IdentityLinker) createUser(ctx context.Context, profile models.ExternalProfile) (*models.User, error) {
	// The placeholder credential is random and discarded; it exists only
	// so the column is non-empty and unguessable.
	placeholder, err := password.GenerateRandom(32)
	if err != nil {
		return nil, domainErrors.Wrap("identity resolve", err)
	}
	hash, err := l.hasher.Hash(placeholder)
	if err != nil {
		return nil, domainErrors.Wrap("identity resolve", err)
	}

	user := &models.User{
		ID:                 uuid.New(),
		Email:              profile.Email,
		Name:               profile.Name,
		PasswordHash:       hash,
		PasswordConfigured: false,
		AvatarURL:          profile.AvatarURL,
	}
	if err := l.users.Create(ctx, user); err != nil {
		return nil, domainErrors.Wrap("identity resolve", err)
	}

	l.logger.Info("Created user from external provider",
		zap.String("user_id", user.ID.String()),
		zap.String("provider", profile.Provider),
	)
	return user, nil
}
