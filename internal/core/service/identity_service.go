package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// SessionStore persists the single active session snapshot (Redis).
type SessionStore interface {
	Save(ctx context.Context, user *domain.User) error
	Load(ctx context.Context) (*domain.User, error)
	Clear(ctx context.Context) error
}

// MasterCredential is the reserved credential pair that always authenticates
// as an administrator, provisioning its user record on first use.
type MasterCredential struct {
	Email  string
	Secret string
}

// IdentityOptions tunes identity behaviour.
type IdentityOptions struct {
	// EnforceUniqueEmail rejects registration with an already-used email.
	// Off by default: the legacy behaviour allowed duplicates.
	EnforceUniqueEmail bool
}

// IdentityService implements authentication, registration, and staff management.
type IdentityService struct {
	repo      ports.IdentityRepository
	sessions  SessionStore
	master    MasterCredential
	opts      IdentityOptions
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewIdentityService(
	repo ports.IdentityRepository,
	sessions SessionStore,
	master MasterCredential,
	opts IdentityOptions,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &IdentityService{
		repo:      repo,
		sessions:  sessions,
		master:    master,
		opts:      opts,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Authenticate verifies the credential pair and establishes a session.
//
// The reserved master pair always succeeds: its user record is provisioned on
// first use, and the session role is forced to ADMIN even when a conflicting
// record carries a different role. Standard accounts with a stored secret must
// match it; accounts with no stored secret authenticate unconditionally
// (legacy-account mode).
func (s *IdentityService) Authenticate(ctx context.Context, email, secret string) (string, *domain.User, error) {
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.isMasterPair(email, secret) {
		return s.authenticateMaster(ctx)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if user.HasSecret() {
		if bcrypt.CompareHashAndPassword([]byte(user.SecretHash), []byte(secret)) != nil {
			return "", nil, domain.ErrInvalidCredentials
		}
	}

	return s.establishSession(ctx, user)
}

func (s *IdentityService) isMasterPair(email, secret string) bool {
	if s.master.Email == "" || email != s.master.Email {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.master.Secret)) == 1
}

func (s *IdentityService) authenticateMaster(ctx context.Context) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, s.master.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(s.master.Secret), bcrypt.DefaultCost)
		if hashErr != nil {
			return "", nil, hashErr
		}
		now := stampNow()
		user, err = s.repo.Create(ctx, &domain.User{
			ID:         "adm_master",
			Name:       "Super Gestor",
			Email:      s.master.Email,
			Role:       domain.RoleAdmin,
			AvatarURL:  avatarURL("Super Gestor"),
			SecretHash: string(hash),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return "", nil, fmt.Errorf("provision master account: %w", err)
		}
		s.log.Info().Str("user_id", user.ID).Msg("master account provisioned")
	} else if err != nil {
		return "", nil, err
	}

	// The master session is always ADMIN, whatever the stored record says.
	session := *user
	session.Role = domain.RoleAdmin
	return s.establishSession(ctx, &session)
}

func (s *IdentityService) establishSession(ctx context.Context, user *domain.User) (string, *domain.User, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Save(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to persist session snapshot")
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session established")
	return token, user, nil
}

// Register creates a WORKER account and immediately establishes a session.
// An empty secret is allowed and yields a legacy account with no credential.
func (s *IdentityService) Register(ctx context.Context, name, email, secret string) (string, *domain.User, error) {
	if name == "" || email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.opts.EnforceUniqueEmail {
		if _, err := s.repo.FindByEmail(ctx, email); err == nil {
			return "", nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
	}

	var secretHash string
	if secret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return "", nil, err
		}
		secretHash = string(hash)
	}

	now := stampNow()
	user, err := s.repo.Create(ctx, &domain.User{
		ID:         fmt.Sprintf("usr_%d", time.Now().UnixNano()),
		Name:       name,
		Email:      email,
		Role:       domain.RoleWorker,
		AvatarURL:  avatarURL(name),
		SecretHash: secretHash,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("email", email).Msg("user registered")
	return s.establishSession(ctx, user)
}

// UpdateProfile merges the provided fields into the matching record. When the
// edited record is the active session's user, the persisted session snapshot
// is refreshed with the same merge.
func (s *IdentityService) UpdateProfile(ctx context.Context, id string, updates ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		user.Name = updates.Name
	}
	if updates.Role != "" {
		if !updates.Role.Valid() {
			return nil, fmt.Errorf("update profile: unknown role %q", updates.Role)
		}
		user.Role = updates.Role
	}
	if updates.AvatarURL != "" {
		user.AvatarURL = updates.AvatarURL
	}
	if updates.Department != "" {
		user.Department = updates.Department
	}
	if updates.Secret != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(updates.Secret), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		user.SecretHash = string(hash)
	}
	user.UpdatedAt = stampNow()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if active, loadErr := s.sessions.Load(ctx); loadErr == nil && active != nil && active.ID == id {
		if saveErr := s.sessions.Save(ctx, user); saveErr != nil {
			s.log.Warn().Err(saveErr).Str("user_id", id).Msg("failed to refresh session snapshot")
		}
	}

	s.log.Info().Str("user_id", id).Msg("profile updated")
	return user, nil
}

// DeleteUser removes the record unconditionally. Guarding against deleting the
// active session's own account is the caller's responsibility.
func (s *IdentityService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Logout clears the persisted session snapshot.
func (s *IdentityService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *IdentityService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// EnsureSeedUsers seeds the two built-in default records (one ADMIN, one
// WORKER) when the store is empty, mirroring a fresh installation.
func (s *IdentityService) EnsureSeedUsers(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	seeds := []struct {
		id, name, email, secret string
		role                    domain.Role
	}{
		{"adm_001", "Sarah Connor", "sarah.connor@omnicorp.com", "admin123", domain.RoleAdmin},
		{"usr_001", "Carlos Mendes", "carlos.mendes@omnicorp.com", "user123", domain.RoleWorker},
	}

	now := stampNow()
	for _, seed := range seeds {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(seed.secret), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}
		if _, err := s.repo.Create(ctx, &domain.User{
			ID:         seed.id,
			Name:       seed.name,
			Email:      seed.email,
			Role:       seed.role,
			AvatarURL:  avatarURL(seed.name),
			SecretHash: string(hash),
			CreatedAt:  now,
			UpdatedAt:  now,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.email, err)
		}
		s.log.Info().Str("email", seed.email).Str("role", string(seed.role)).Msg("default user seeded")
	}
	return nil
}

func (s *IdentityService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// avatarURL builds a generated-avatar reference for accounts created without
// an uploaded picture.
func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// stampNow returns the current UTC time at millisecond precision, the finest
// resolution a bson datetime can hold, so persisted records reload with equal
// timestamps.
func stampNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
