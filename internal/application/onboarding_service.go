package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	repo "github.com/valoris-se/valoris-api/internal/domain/repository"
	"github.com/valoris-se/valoris-api/internal/payment"
	"github.com/valoris-se/valoris-api/pkg/helpers"
	"github.com/valoris-se/valoris-api/pkg/mailer"
)

// Fixed business constants for creator onboarding.
const (
	onboardingTTL   = 6 * time.Hour
	creatorPriceSek = 199
)

// EmailPublisher is the queue side of the welcome-mail pipeline.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// OnboardingService owns the paid creator signup flow: the pending
// session created at intent time and the webhook-driven provisioning
// state machine (pending -> consumed, expired sessions behave as not
// found).
type OnboardingService struct {
	Sessions     repo.OnboardingRepository
	Users        repo.UserRepository
	Payments     payment.Provider
	Mail         EmailPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	FrontendURL  string
	Logger       *logrus.Logger
}

func NewOnboardingService(
	sessions repo.OnboardingRepository,
	users repo.UserRepository,
	payments payment.Provider,
	mail EmailPublisher,
	es *elasticsearch.Client,
	esUsersIndex string,
	frontendURL string,
	logger *logrus.Logger,
) *OnboardingService {
	return &OnboardingService{
		Sessions:     sessions,
		Users:        users,
		Payments:     payments,
		Mail:         mail,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		FrontendURL:  frontendURL,
		Logger:       logger,
	}
}

type CreateIntentResult struct {
	ClientSecret string
	Ref          string
}

// CreateIntent hashes the submitted password, persists a pending
// onboarding session and asks the payment processor for an intent tagged
// with the session id.
func (s *OnboardingService) CreateIntent(ctx context.Context, name, email, password string) (*CreateIntentResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, entity.Validationf("missing fields")
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	sess := &entity.OnboardingSession{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleCreator,
		ExpiresAt:    time.Now().Add(onboardingTTL),
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	intent, err := s.Payments.CreateIntent(ctx, payment.IntentParams{
		Amount:      creatorPriceSek * 100,
		Currency:    "sek",
		Description: "Valoris – Creator onboarding (199 SEK)",
		Ref:         sess.ID,
		Email:       email,
		Role:        string(entity.RoleCreator),
	})
	if err != nil {
		s.Logger.WithError(err).WithField("ref", sess.ID).Error("create payment intent failed")
		return nil, errors.New("failed to create payment intent")
	}

	return &CreateIntentResult{ClientSecret: intent.ClientSecret, Ref: sess.ID}, nil
}

// HandleEvent runs the provisioning state machine for a verified
// webhook event. Business misses (unknown ref, expired or already
// consumed session, provisioning failures) are logged and swallowed so
// the processor never retries them; only signature verification, which
// happens before this point, may reject a delivery.
func (s *OnboardingService) HandleEvent(ctx context.Context, evt *payment.Event) {
	log := s.Logger.WithFields(logrus.Fields{"event": evt.Type, "ref": evt.Ref})

	switch evt.Kind {
	case payment.EventIgnored:
		return
	case payment.EventPaymentFailed:
		log.Info("payment failed, no state change")
		return
	}

	if evt.Ref == "" {
		log.Info("no ref in event metadata, skipping")
		return
	}

	sess, err := s.Sessions.GetByID(ctx, evt.Ref)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			log.Warn("onboarding session not found or expired")
		} else {
			log.WithError(err).Error("onboarding session lookup failed")
		}
		return
	}
	if sess.Used() {
		log.WithField("email", sess.Email).Info("onboarding already consumed")
		return
	}

	s.provision(ctx, sess, log)
}

// provision creates the creator account unless the email is already
// taken, then marks the session consumed. The unique email constraint
// guarantees at most one created user per session under concurrent
// duplicate deliveries; the conditional MarkUsed lets exactly one caller
// win the consume race.
func (s *OnboardingService) provision(ctx context.Context, sess *entity.OnboardingSession, log *logrus.Entry) {
	u := &entity.User{
		Name:         sess.Name,
		Email:        sess.Email,
		PasswordHash: sess.PasswordHash,
		Role:         entity.RoleCreator,
	}
	created, err := s.Users.CreateIfAbsent(ctx, u)
	if err != nil {
		log.WithError(err).Error("creator provisioning failed")
		return
	}

	if created {
		log.WithField("email", u.Email).Info("creator user created")
		// Both side effects are best-effort; neither may fail the
		// transition.
		s.publishWelcome(ctx, u, log)
		s.indexUser(ctx, u, log)
	} else {
		log.WithField("email", u.Email).Info("user already exists, skipping creation")
	}

	won, err := s.Sessions.MarkUsed(ctx, sess.ID)
	if err != nil {
		log.WithError(err).Error("mark onboarding consumed failed")
		return
	}
	if !won {
		log.Info("onboarding consumed by a concurrent delivery")
	}
}

func (s *OnboardingService) publishWelcome(ctx context.Context, u *entity.User, log *logrus.Entry) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Name":     u.Name,
			"LoginURL": strings.TrimRight(s.FrontendURL, "/") + "/login",
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		log.WithError(err).Warn("welcome email publish failed")
	}
}

func (s *OnboardingService) indexUser(ctx context.Context, u *entity.User, log *logrus.Entry) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		log.WithError(err).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		log.WithField("status", res.Status()).Warn("es index response error")
	}
}
