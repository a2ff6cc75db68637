package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

// UserService covers the caller's own profile and admin user management.
type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	validate ports.InputValidator
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, sessions ports.SessionStore, validate ports.InputValidator, log zerolog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, validate: validate, log: log}
}

func (s *UserService) Profile(ctx context.Context, sess *access.Session) (*domain.User, error) {
	if err := access.Check(sess, access.ActionProfileRead); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(sess, access.ActionProfileRead, access.Resource{OwnerID: user.ID}); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes name, email or password of the caller's account.
// A password change requires the current password when one is set.
func (s *UserService) UpdateProfile(ctx context.Context, sess *access.Session, in ports.UpdateProfileInput) (*domain.User, error) {
	if err := access.Check(sess, access.ActionProfileUpdate); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(sess, access.ActionProfileUpdate, access.Resource{OwnerID: user.ID}); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	var ch ports.ProfileChanges
	ch.Name = in.Name

	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, *in.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		ch.Email = in.Email
	}

	if in.NewPassword != nil {
		if user.HasPassword() {
			if in.CurrentPassword == "" {
				return nil, domain.ErrPasswordRequired
			}
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
				return nil, domain.ErrWrongPassword
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		ch.PasswordHash = &h
	}

	updated, err := s.users.UpdateProfile(ctx, user.ID, ch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return updated, nil
}

func (s *UserService) List(ctx context.Context, sess *access.Session, in ports.ListUsersInput) (ports.Page[*domain.User], error) {
	if err := access.Check(sess, access.ActionUserList); err != nil {
		return ports.Page[*domain.User]{}, err
	}
	if err := s.validate.Struct(in); err != nil {
		return ports.Page[*domain.User]{}, err
	}

	q := in.PageQuery.Normalize()
	users, total, err := s.users.List(ctx, ports.UserFilter{
		Role:      domain.Role(in.Role),
		Search:    strings.TrimSpace(in.Search),
		PageQuery: q,
	})
	if err != nil {
		return ports.Page[*domain.User]{}, err
	}
	return ports.NewPage(users, total, q), nil
}

// UpdateRole changes a user's role and revokes their sessions so the new
// role takes effect on the next sign-in.
func (s *UserService) UpdateRole(ctx context.Context, sess *access.Session, userID string, in ports.UpdateRoleInput) (*domain.User, error) {
	if err := access.Authorize(sess, access.ActionUserUpdateRole, access.Resource{OwnerID: userID}); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateRole(ctx, userID, domain.Role(in.Role))
	if err != nil {
		return nil, err
	}
	if err := s.sessions.RevokeUser(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke sessions after role change")
	}

	s.log.Info().Str("user_id", userID).Str("role", in.Role).Str("by", sess.UserID).Msg("role changed")
	return user, nil
}

// Delete removes a user. Admins cannot delete themselves; that is rejected
// before the store is touched.
func (s *UserService) Delete(ctx context.Context, sess *access.Session, userID string) error {
	if err := access.Authorize(sess, access.ActionUserDelete, access.Resource{OwnerID: userID}); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.sessions.RevokeUser(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke sessions after delete")
	}
	s.log.Info().Str("user_id", userID).Str("by", sess.UserID).Msg("user deleted")
	return nil
}
