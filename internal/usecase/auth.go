package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/events"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repo/store"
)

// AuthUsecase manages the mocked session: one configured credential
// pair, a persisted session record, no real identity provider.
type AuthUsecase interface {
	// Current reports loading until the store has been checked once,
	// then authenticated or anonymous.
	Current(ctx context.Context) models.AuthStatus
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
	// ResetPassword is a mock: it validates the email and reports
	// success without delivering anything.
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (*models.Session, error)
	Logout(ctx context.Context) error
}

type authUsecase struct {
	store  store.Store
	events events.Publisher

	mockEmail    string
	mockPassword string

	mu          sync.Mutex
	initialized bool
	session     *models.Session
}

func NewAuthUsecase(conf *config.Config, st store.Store, publisher events.Publisher) AuthUsecase {
	return &authUsecase{
		store:        st,
		events:       publisher,
		mockEmail:    conf.Auth.MockEmail,
		mockPassword: conf.Auth.MockPassword,
	}
}

// ensureLoaded restores the session from the store on first use. A
// corrupt record is discarded rather than wedging startup.
func (uc *authUsecase) ensureLoaded(ctx context.Context) {
	if uc.initialized {
		return
	}
	uc.initialized = true

	data, err := uc.store.Load(ctx, store.KeyCurrentUser)
	if errors.Is(err, models.ErrNotFound) {
		return
	}
	if err != nil {
		log.Errorw(ctx, "load stored session", "error", err)
		return
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Warnw(ctx, "discarding corrupt stored session", "error", err)
		if err := uc.store.Delete(ctx, store.KeyCurrentUser); err != nil {
			log.Errorw(ctx, "delete corrupt stored session", "error", err)
		}
		return
	}
	uc.session = &session
}

func (uc *authUsecase) persist(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := uc.store.Save(ctx, store.KeyCurrentUser, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	uc.session = session
	return nil
}

func (uc *authUsecase) Current(ctx context.Context) models.AuthStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.ensureLoaded(ctx)
	if uc.session == nil {
		return models.AuthStatus{State: models.AuthStateAnonymous}
	}
	session := *uc.session
	return models.AuthStatus{State: models.AuthStateAuthenticated, Session: &session}
}

func (uc *authUsecase) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	if req.Email != uc.mockEmail || req.Password != uc.mockPassword {
		return nil, models.ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		ID:        "1",
		FirstName: "John",
		LastName:  "Doe",
		Email:     req.Email,
		Phone:     "+1 (555) 123-4567",
		Address: models.Address{
			Street:  "123 Main St",
			City:    "New York",
			State:   "NY",
			ZipCode: "10001",
			Country: "USA",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.persist(ctx, session); err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, events.EventAuthLogin, map[string]any{"email": req.Email})
	out := *session
	return &out, nil
}

func (uc *authUsecase) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.persist(ctx, session); err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, events.EventAuthLogin, map[string]any{"email": req.Email, "registered": true})
	out := *session
	return &out, nil
}

func (uc *authUsecase) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log.Infow(ctx, "password reset requested", "email", req.Email)
	return nil
}

func (uc *authUsecase) UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (*models.Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	if uc.session == nil {
		return nil, models.ErrNotAuthenticated
	}

	session := *uc.session
	if req.FirstName != "" {
		session.FirstName = req.FirstName
	}
	if req.LastName != "" {
		session.LastName = req.LastName
	}
	if req.Email != "" {
		session.Email = req.Email
	}
	if req.Phone != "" {
		session.Phone = req.Phone
	}
	if req.Address != nil {
		session.Address = *req.Address
	}
	session.UpdatedAt = time.Now()

	if err := uc.persist(ctx, &session); err != nil {
		return nil, err
	}

	out := session
	return &out, nil
}

func (uc *authUsecase) Logout(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ensureLoaded(ctx)

	if uc.session == nil {
		return nil
	}
	if err := uc.store.Delete(ctx, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	uc.session = nil

	uc.events.Publish(ctx, events.EventAuthLogout, nil)
	return nil
}
