package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/models"
)

// ResolveLocation confirms the country, state and city rows all exist. The
// three lookups are independent reads and run concurrently; misses are
// reported in priority order country → state → city.
func (s *Store) ResolveLocation(ctx context.Context, countryID, stateID, cityID uuid.UUID) error {
	var countryOK, stateOK, cityOK bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		countryOK, err = s.exists(gctx, "countries", countryID)
		return err
	})
	g.Go(func() (err error) {
		stateOK, err = s.exists(gctx, "states", stateID)
		return err
	})
	g.Go(func() (err error) {
		cityOK, err = s.exists(gctx, "cities", cityID)
		return err
	})
	if err := g.Wait(); err != nil {
		return apperrors.Internal(messages.InternalServerError, err)
	}

	switch {
	case !countryOK:
		return apperrors.NotFound(messages.CountryIDNotFound)
	case !stateOK:
		return apperrors.NotFound(messages.StateIDNotFound)
	case !cityOK:
		return apperrors.NotFound(messages.CityIDNotFound)
	}
	return nil
}

// CheckUserUnique fails with a conflict when any user already holds the
// email or username, case-insensitively.
func (s *Store) CheckUserUnique(ctx context.Context, email, userName string) error {
	var existing uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM users
		 WHERE LOWER(email) = LOWER($1) OR LOWER(user_name) = LOWER($2)`,
		email, userName).Scan(&existing)
	if err == nil {
		return apperrors.Conflict(messages.UserAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return apperrors.Internal(messages.UserCreateError, err)
	}
	return nil
}

// UserNameTakenByOther fails with a conflict when a different user already
// holds the username, case-insensitively.
func (s *Store) UserNameTakenByOther(ctx context.Context, userName string, excludeID uuid.UUID) error {
	var existing uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE LOWER(user_name) = LOWER($1) AND id <> $2`,
		userName, excludeID).Scan(&existing)
	if err == nil {
		return apperrors.Conflict(messages.UserNameAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return apperrors.Internal(messages.UserEditError, err)
	}
	return nil
}

// translateUserErr maps constraint violations on the users table to the
// matching catalog message, using the constraint name to tell which foreign
// key raced.
func translateUserErr(err error, internalMsg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return apperrors.Conflict(messages.UserAlreadyExists)
		case pqForeignKeyViolation:
			switch {
			case strings.Contains(pqErr.Constraint, "country"):
				return apperrors.NotFound(messages.CountryIDNotFound)
			case strings.Contains(pqErr.Constraint, "state"):
				return apperrors.NotFound(messages.StateIDNotFound)
			case strings.Contains(pqErr.Constraint, "city"):
				return apperrors.NotFound(messages.CityIDNotFound)
			}
		}
	}
	return apperrors.Internal(internalMsg, err)
}

// CreateUser inserts a new unverified account together with its first OTP.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (name, user_name, email, password, mobile, country_code,
			country_id, state_id, city_id, otp, otp_created_at, otp_expires_at, otp_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.UserName, u.Email, u.Password, u.Mobile, u.CountryCode,
		u.CountryID, u.StateID, u.CityID, u.OTP, u.OTPCreatedAt, u.OTPExpiresAt, u.OTPCount).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translateUserErr(err, messages.UserCreateError)
	}
	return nil
}

const userColumns = `id, name, user_name, email, password, mobile, country_code,
	country_id, state_id, city_id, verify, otp, otp_created_at, otp_expires_at,
	otp_verified_at, otp_count, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var otp sql.NullString
	var otpCreated, otpExpires, otpVerified sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.UserName, &u.Email, &u.Password, &u.Mobile,
		&u.CountryCode, &u.CountryID, &u.StateID, &u.CityID, &u.Verify,
		&otp, &otpCreated, &otpExpires, &otpVerified, &u.OTPCount,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.OTP = otp.String
	if otpCreated.Valid {
		t := otpCreated.Time
		u.OTPCreatedAt = &t
	}
	if otpExpires.Valid {
		t := otpExpires.Time
		u.OTPExpiresAt = &t
	}
	if otpVerified.Valid {
		t := otpVerified.Time
		u.OTPVerifiedAt = &t
	}
	return u, nil
}

// GetUserByID fetches one user row by id.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.UserIDNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.UserFetchError, err)
	}
	return u, nil
}

// GetUserByEmail fetches one user row by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.EmailNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.UserFetchError, err)
	}
	return u, nil
}

// FindUserForLogin resolves the login identifier: by email when one was
// supplied, otherwise by username.
func (s *Store) FindUserForLogin(ctx context.Context, email, userName string) (*models.User, error) {
	var row *sql.Row
	if email != "" {
		row = s.db.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	} else {
		row = s.db.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE LOWER(user_name) = LOWER($1)`, userName)
	}
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.EmailOrUsernameNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.InternalServerError, err)
	}
	return u, nil
}

// GetUserProfile fetches the client-visible projection enriched with the
// country, state and city names.
func (s *Store) GetUserProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	err := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.name, u.user_name, u.email, u.mobile, u.country_code,
			c.name, st.name, ci.name
		 FROM users u
		 JOIN countries c ON c.id = u.country_id
		 JOIN states st ON st.id = u.state_id
		 JOIN cities ci ON ci.id = u.city_id
		 WHERE u.id = $1`,
		id).Scan(&p.ID, &p.Name, &p.UserName, &p.Email, &p.Mobile, &p.CountryCode,
		&p.CountryName, &p.StateName, &p.CityName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.UserIDNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.UserFetchError, err)
	}
	return p, nil
}

// UpdateUser rewrites the mutable account fields. Password is only changed
// when u.Password is non-empty (already hashed by the caller).
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	var err error
	if u.Password != "" {
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET name = $1, user_name = $2, mobile = $3, country_code = $4,
				country_id = $5, state_id = $6, city_id = $7, password = $8, updated_at = NOW()
			 WHERE id = $9`,
			u.Name, u.UserName, u.Mobile, u.CountryCode,
			u.CountryID, u.StateID, u.CityID, u.Password, u.ID)
	} else {
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET name = $1, user_name = $2, mobile = $3, country_code = $4,
				country_id = $5, state_id = $6, city_id = $7, updated_at = NOW()
			 WHERE id = $8`,
			u.Name, u.UserName, u.Mobile, u.CountryCode,
			u.CountryID, u.StateID, u.CityID, u.ID)
	}
	if err != nil {
		return translateUserErr(err, messages.UserEditError)
	}
	return nil
}

// DeleteUser removes one account.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return apperrors.Internal(messages.UserDeleteError, err)
	}
	return nil
}

// SetOTP stores a freshly issued code with its lifecycle timestamps and the
// new attempt count.
func (s *Store) SetOTP(ctx context.Context, userID uuid.UUID, code string, createdAt, expiresAt time.Time, count int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET otp = $1, otp_created_at = $2, otp_expires_at = $3,
			otp_count = $4, updated_at = NOW()
		 WHERE id = $5`,
		code, createdAt, expiresAt, count, userID)
	if err != nil {
		return apperrors.Internal(messages.EmailOTPError, err)
	}
	return nil
}

// MarkVerified stamps the verification time and flips the account to
// verified. Re-verifying an already-verified account just re-stamps.
func (s *Store) MarkVerified(ctx context.Context, userID uuid.UUID, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET verify = TRUE, otp_verified_at = $1, updated_at = NOW()
		 WHERE id = $2`,
		at, userID)
	if err != nil {
		return apperrors.Internal(messages.OTPVerificationError, err)
	}
	return nil
}

// UpdatePassword replaces the stored hash for the given email.
func (s *Store) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE LOWER(email) = LOWER($2)`,
		passwordHash, email)
	if err != nil {
		return apperrors.Internal(messages.PasswordResetError, err)
	}
	return nil
}
