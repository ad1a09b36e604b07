package onboarding

import (
	"context"
	"errors"

	"foodie/internal/domain"
	"foodie/internal/pkg/apperr"
	"foodie/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	chefs    ChefRepository
	sessions *SessionStore
	log      *zap.Logger
}

func NewService(chefs ChefRepository, sessions *SessionStore, log *zap.Logger) *Service {
	if sessions == nil {
		sessions = NewSessionStore()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{chefs: chefs, sessions: sessions, log: log}
}

// Status redirects chefs whose stored profile is already live and otherwise
// returns the caller's wizard, starting a new one if needed.
func (s *Service) Status(ctx context.Context, caller *domain.Identity) (*StatusResponse, error) {
	if caller == nil || caller.UserID == "" {
		return nil, apperr.Unauthorized()
	}

	onboarded, err := s.isOnboarded(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if onboarded {
		s.sessions.Delete(caller.UserID)
		return &StatusResponse{Onboarded: true, Redirect: dashboardPath}, nil
	}

	view := s.wizard(caller).View()
	return &StatusResponse{Wizard: &view}, nil
}

func (s *Service) UpdateDraft(ctx context.Context, caller *domain.Identity, patch DraftPatch) (*View, error) {
	return s.act(caller, func(w *Wizard) error { return w.Update(patch) })
}

func (s *Service) MarkSLAScrolled(ctx context.Context, caller *domain.Identity) (*View, error) {
	return s.act(caller, func(w *Wizard) error { return w.MarkSLAScrolled() })
}

func (s *Service) RecordDryRun(ctx context.Context, caller *domain.Identity, accepted bool) (*View, error) {
	return s.act(caller, func(w *Wizard) error { return w.RecordDryRun(accepted) })
}

func (s *Service) Next(ctx context.Context, caller *domain.Identity) (*View, error) {
	return s.act(caller, func(w *Wizard) error { return w.Next(ctx) })
}

func (s *Service) Back(ctx context.Context, caller *domain.Identity) (*View, error) {
	return s.act(caller, func(w *Wizard) error { return w.Back() })
}

func (s *Service) Retry(ctx context.Context, caller *domain.Identity) (*View, error) {
	return s.act(caller, func(w *Wizard) error { return w.Retry(ctx) })
}

func (s *Service) act(caller *domain.Identity, fn func(w *Wizard) error) (*View, error) {
	if caller == nil || caller.UserID == "" {
		return nil, apperr.Unauthorized()
	}
	w := s.wizard(caller)
	if err := fn(w); err != nil {
		return nil, translate(err)
	}
	view := w.View()
	return &view, nil
}

func (s *Service) wizard(caller *domain.Identity) *Wizard {
	return s.sessions.GetOrCreate(caller.UserID, func() *Wizard {
		return NewWizard(s.submitterFor(*caller))
	})
}

func (s *Service) submitterFor(caller domain.Identity) Submitter {
	return SubmitterFunc(func(ctx context.Context, draft Draft) error {
		return s.Complete(ctx, &caller, draft)
	})
}

// Complete validates the draft again on the server and stores the chef
// profile as live. A chef may only go live once.
func (s *Service) Complete(ctx context.Context, caller *domain.Identity, draft Draft) error {
	if caller == nil || caller.UserID == "" {
		return apperr.Unauthorized()
	}
	if draft.Email == "" {
		draft.Email = caller.Email
	}

	if err := draft.submissionGate(); err != nil {
		return apperr.Wrap(apperr.ErrValidation, ErrDraftRejected, "%s", err.Error())
	}
	if err := draft.validate(); err != nil {
		return apperr.Wrap(apperr.ErrValidation, ErrDraftRejected, "%s", err.Error())
	}

	onboarded, err := s.isOnboarded(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if onboarded {
		return apperr.InvalidState("already onboarded")
	}

	chef := draftToChef(caller.UserID, draft)
	if err := s.chefs.Upsert(ctx, chef); err != nil {
		return apperr.Persistence(err, "Failed to complete onboarding")
	}

	s.log.Info("chef onboarding completed", zap.String("user_id", caller.UserID))
	return nil
}

func (s *Service) isOnboarded(ctx context.Context, userID string) (bool, error) {
	chef, err := s.chefs.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, apperr.Persistence(err, "Failed to load chef profile")
	}
	return chef.IsOnboarded(), nil
}

func draftToChef(userID string, d Draft) *domain.Chef {
	return &domain.Chef{
		UserID:             userID,
		FullName:           d.FullName,
		Email:              d.Email,
		Phone:              d.Phone,
		CuisineStrengths:   d.CuisineStrengths,
		Location:           d.Location,
		Experiences:        d.Experiences,
		GuestCapacity:      d.GuestCapacity,
		PriceTier:          d.PriceTier,
		TravelRadius:       d.TravelRadius,
		AvailabilityType:   d.AvailabilityType,
		WeeklySchedule:     d.WeeklySchedule,
		SLAAccepted:        d.SLAAccepted,
		IDFrontURL:         d.IDFrontURL,
		IDBackURL:          d.IDBackURL,
		FoodCertificateURL: d.FoodCertificateURL,
		PortfolioURLs:      d.PortfolioURLs,
		DryRunAccepted:     d.DryRunAccepted,
		OnboardingStep:     domain.OnboardingComplete,
	}
}

// translate maps wizard errors onto the shared taxonomy. Submission failures
// keep the kind chosen by Complete.
func translate(err error) error {
	var (
		appErr  *apperr.Error
		gateErr *GateError
	)
	switch {
	case errors.Is(err, ErrSubmissionFailed):
		if errors.As(err, &appErr) {
			return err
		}
		return apperr.Persistence(err, "Failed to complete onboarding")
	case errors.As(err, &gateErr):
		return apperr.Wrap(apperr.ErrValidation, err, "%s", apperr.Message(gateErr.Reason))
	case errors.Is(err, ErrNoTransition),
		errors.Is(err, ErrWrongStep),
		errors.Is(err, ErrDraftLocked),
		errors.Is(err, ErrSubmissionInFlight),
		errors.Is(err, ErrAlreadySubmitted):
		return apperr.Wrap(apperr.ErrInvalidState, err, "%s", err.Error())
	}
	return err
}
