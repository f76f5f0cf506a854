package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/pcview/internal/config"
	"github.com/vancomm/pcview/internal/middleware"
	"github.com/vancomm/pcview/internal/repository"
)

type UserStore interface {
	CreateUser(ctx context.Context, params repository.CreateUserParams) (*repository.User, error)
	FetchUser(ctx context.Context, username string) (*repository.User, error)
}

type Auth struct {
	logger  *slog.Logger
	users   UserStore
	cookies *config.Cookies
	jwt     *config.JWT
}

func NewAuth(
	logger *slog.Logger,
	users UserStore,
	cookies *config.Cookies,
	jwt *config.JWT,
) *Auth {
	return &Auth{
		logger:  logger,
		users:   users,
		cookies: cookies,
		jwt:     jwt,
	}
}

type UserInfo struct {
	UserId   int64  `json:"user_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool      `json:"logged_in"`
	User     *UserInfo `json:"user,omitempty"`
}

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username taken")
	ErrBadCredentials     = errors.New("wrong username or password")
)

func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaims(r.Context())
	if !ok {
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.logger, http.StatusOK, Status{})
		return
	}

	a.logger.Debug("refresh cookies", slog.String("username", claims.Username))
	if !a.startSession(w, claims) {
		return
	}
	sendJSONOrLog(w, a.logger, http.StatusOK, Status{
		LoggedIn: true,
		User:     &UserInfo{claims.UserId, claims.Username},
	})
}

func (a Auth) credentials(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseForm(); err != nil {
		sendErrorOrLog(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return "", nil, false
	}
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		sendErrorOrLog(w, a.logger, http.StatusBadRequest, ErrBadAuthBody)
		return "", nil, false
	}
	// bcrypt ignores everything past 72 bytes.
	if len(password) > 72 {
		sendErrorOrLog(w, a.logger, http.StatusBadRequest, ErrBadPasswordTooLong)
		return "", nil, false
	}
	return username, []byte(password), true
}

func (a Auth) startSession(w http.ResponseWriter, claims *config.UserClaims) bool {
	token, err := a.jwt.Sign(claims)
	if err != nil {
		internalError(w, a.logger, "unable to create a jwt token", err)
		return false
	}
	if err := a.cookies.Refresh(w, token); err != nil {
		internalError(w, a.logger, "unable to set auth cookies", err)
		return false
	}
	return true
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := a.credentials(w, r)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		internalError(w, a.logger, "unable to hash password", err)
		return
	}

	user, err := a.users.CreateUser(r.Context(), repository.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendErrorOrLog(w, a.logger, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to insert user", err)
		return
	}

	claims := config.NewUserClaims(user.UserId, user.Username)
	if !a.startSession(w, claims) {
		return
	}
	sendJSONOrLog(w, a.logger, http.StatusCreated, UserInfo{user.UserId, user.Username})
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := a.credentials(w, r)
	if !ok {
		return
	}

	user, err := a.users.FetchUser(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendErrorOrLog(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		internalError(w, a.logger, "unable to fetch user from db", err)
		return
	}

	err = bcrypt.CompareHashAndPassword(user.PasswordHash, password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		sendErrorOrLog(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		internalError(w, a.logger, "bcrypt compare error", err)
		return
	}

	claims := config.NewUserClaims(user.UserId, user.Username)
	if !a.startSession(w, claims) {
		return
	}
	sendJSONOrLog(w, a.logger, http.StatusOK, UserInfo{user.UserId, user.Username})
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
