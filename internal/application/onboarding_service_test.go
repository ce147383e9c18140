package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	"github.com/valoris-se/valoris-api/internal/payment"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

// --- fakes ---

type fakeSessionRepo struct {
	sessions map[string]*entity.OnboardingSession
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.OnboardingSession{}}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *entity.OnboardingSession) error {
	f.nextID++
	s.ID = fmt.Sprintf("sess-%d", f.nextID)
	s.CreatedAt = time.Now()
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*entity.OnboardingSession, error) {
	s, ok := f.sessions[id]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, entity.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) MarkUsed(ctx context.Context, id string) (bool, error) {
	s, ok := f.sessions[id]
	if !ok || s.UsedAt != nil {
		return false, nil
	}
	now := time.Now()
	s.UsedAt = &now
	return true, nil
}

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	created int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return errors.New("duplicate email")
	}
	u.ID = "user-" + u.Email
	f.byEmail[u.Email] = u
	f.created++
	return nil
}

func (f *fakeUserRepo) CreateIfAbsent(ctx context.Context, u *entity.User) (bool, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return false, nil
	}
	return true, f.Create(ctx, u)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return u, nil
}

type fakeProvider struct {
	lastParams payment.IntentParams
	intentErr  error
}

func (f *fakeProvider) CreateIntent(ctx context.Context, p payment.IntentParams) (*payment.Intent, error) {
	f.lastParams = p
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil
}

func (f *fakeProvider) ParseEvent(payload []byte, sigHeader string) (*payment.Event, error) {
	return nil, errors.New("not used")
}

type fakePublisher struct {
	published []any
	err       error
}

func (f *fakePublisher) PublishJSON(ctx context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, body)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(t *testing.T) (*OnboardingService, *fakeSessionRepo, *fakeUserRepo, *fakeProvider, *fakePublisher) {
	t.Helper()
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	provider := &fakeProvider{}
	pub := &fakePublisher{}
	svc := NewOnboardingService(sessions, users, provider, pub, nil, "", "https://app.valoris.se", quietLogger())
	return svc, sessions, users, provider, pub
}

// --- CreateIntent ---

func TestCreateIntent(t *testing.T) {
	svc, sessions, _, provider, _ := newTestService(t)

	res, err := svc.CreateIntent(context.Background(), "  Anna Svensson ", "Anna@Example.COM", "hunter2secret")
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if res.ClientSecret != "pi_1_secret" {
		t.Errorf("client secret = %q", res.ClientSecret)
	}

	sess, ok := sessions.sessions[res.Ref]
	if !ok {
		t.Fatalf("no session stored under ref %q", res.Ref)
	}
	if sess.Email != "anna@example.com" {
		t.Errorf("email not normalized: %q", sess.Email)
	}
	if sess.Name != "Anna Svensson" {
		t.Errorf("name not trimmed: %q", sess.Name)
	}
	if sess.Role != entity.RoleCreator {
		t.Errorf("role = %q", sess.Role)
	}
	if sess.PasswordHash == "hunter2secret" || sess.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if !helpers.CompareHashAndPassword(sess.PasswordHash, "hunter2secret") {
		t.Error("stored hash does not verify")
	}
	until := time.Until(sess.ExpiresAt)
	if until < 5*time.Hour+59*time.Minute || until > 6*time.Hour {
		t.Errorf("ttl = %v, want ~6h", until)
	}

	if provider.lastParams.Amount != 19900 {
		t.Errorf("amount = %d, want 19900", provider.lastParams.Amount)
	}
	if provider.lastParams.Currency != "sek" {
		t.Errorf("currency = %q", provider.lastParams.Currency)
	}
	if provider.lastParams.Ref != sess.ID {
		t.Errorf("intent ref %q != session id %q", provider.lastParams.Ref, sess.ID)
	}
}

func TestCreateIntentMissingFields(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	for _, in := range [][3]string{
		{"", "a@b.se", "secret123"},
		{"Anna", "", "secret123"},
		{"Anna", "a@b.se", ""},
	} {
		_, err := svc.CreateIntent(context.Background(), in[0], in[1], in[2])
		if !errors.Is(err, entity.ErrValidation) {
			t.Errorf("CreateIntent(%q,%q,...) error = %v, want validation", in[0], in[1], err)
		}
	}
}

func TestCreateIntentProviderFailure(t *testing.T) {
	svc, _, _, provider, _ := newTestService(t)
	provider.intentErr = errors.New("stripe down")

	_, err := svc.CreateIntent(context.Background(), "Anna", "a@b.se", "secret123")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, entity.ErrValidation) {
		t.Error("provider failure must not surface as a validation error")
	}
}

// --- HandleEvent ---

func succeededEvent(ref string) *payment.Event {
	return &payment.Event{Kind: payment.EventPaymentSucceeded, Type: "payment_intent.succeeded", Ref: ref}
}

func createSession(t *testing.T, svc *OnboardingService) string {
	t.Helper()
	res, err := svc.CreateIntent(context.Background(), "Anna", "anna@example.com", "secret123")
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	return res.Ref
}

func TestHandleEventProvisionsCreator(t *testing.T) {
	svc, sessions, users, _, pub := newTestService(t)
	ref := createSession(t, svc)

	svc.HandleEvent(context.Background(), succeededEvent(ref))

	u, err := users.GetByEmail(context.Background(), "anna@example.com")
	if err != nil {
		t.Fatalf("user not provisioned: %v", err)
	}
	if u.Role != entity.RoleCreator {
		t.Errorf("role = %q", u.Role)
	}
	if sessions.sessions[ref].UsedAt == nil {
		t.Error("session not marked consumed")
	}
	if len(pub.published) != 1 {
		t.Fatalf("welcome jobs published = %d, want 1", len(pub.published))
	}
}

func TestHandleEventDuplicateDelivery(t *testing.T) {
	svc, _, users, _, pub := newTestService(t)
	ref := createSession(t, svc)

	svc.HandleEvent(context.Background(), succeededEvent(ref))
	svc.HandleEvent(context.Background(), succeededEvent(ref))
	svc.HandleEvent(context.Background(), succeededEvent(ref))

	if users.created != 1 {
		t.Errorf("users created = %d, want 1", users.created)
	}
	if len(pub.published) != 1 {
		t.Errorf("welcome jobs published = %d, want 1", len(pub.published))
	}
}

func TestHandleEventCheckoutCompleted(t *testing.T) {
	svc, _, users, _, _ := newTestService(t)
	ref := createSession(t, svc)

	svc.HandleEvent(context.Background(), &payment.Event{
		Kind: payment.EventCheckoutCompleted,
		Type: "checkout.session.completed",
		Ref:  ref,
	})

	if users.created != 1 {
		t.Errorf("users created = %d, want 1", users.created)
	}
}

func TestHandleEventNoOps(t *testing.T) {
	svc, _, users, _, pub := newTestService(t)
	ref := createSession(t, svc)

	svc.HandleEvent(context.Background(), &payment.Event{Kind: payment.EventIgnored, Type: "charge.updated"})
	svc.HandleEvent(context.Background(), &payment.Event{Kind: payment.EventPaymentFailed, Type: "payment_intent.payment_failed", Ref: ref})
	svc.HandleEvent(context.Background(), &payment.Event{Kind: payment.EventPaymentSucceeded, Type: "payment_intent.succeeded", Ref: ""})
	svc.HandleEvent(context.Background(), succeededEvent("sess-unknown"))

	if users.created != 0 {
		t.Errorf("users created = %d, want 0", users.created)
	}
	if len(pub.published) != 0 {
		t.Errorf("jobs published = %d, want 0", len(pub.published))
	}
}

func TestHandleEventExpiredSession(t *testing.T) {
	svc, sessions, users, _, _ := newTestService(t)
	ref := createSession(t, svc)
	sessions.sessions[ref].ExpiresAt = time.Now().Add(-time.Minute)

	svc.HandleEvent(context.Background(), succeededEvent(ref))

	if users.created != 0 {
		t.Errorf("users created = %d, want 0", users.created)
	}
	if sessions.sessions[ref].UsedAt != nil {
		t.Error("expired session must not be consumed")
	}
}

func TestHandleEventExistingEmailStillConsumesSession(t *testing.T) {
	svc, sessions, users, _, pub := newTestService(t)
	ref := createSession(t, svc)

	// The email was taken between intent and payment.
	_ = users.Create(context.Background(), &entity.User{Name: "Other", Email: "anna@example.com", Role: entity.RoleUser})
	users.created = 0

	svc.HandleEvent(context.Background(), succeededEvent(ref))

	if users.created != 0 {
		t.Errorf("users created = %d, want 0", users.created)
	}
	if len(pub.published) != 0 {
		t.Error("no welcome mail for an existing account")
	}
	if sessions.sessions[ref].UsedAt == nil {
		t.Error("session must still be consumed")
	}
}

func TestHandleEventPublishFailureIsSwallowed(t *testing.T) {
	svc, sessions, users, _, pub := newTestService(t)
	ref := createSession(t, svc)
	pub.err = errors.New("amqp closed")

	svc.HandleEvent(context.Background(), succeededEvent(ref))

	if users.created != 1 {
		t.Errorf("users created = %d, want 1", users.created)
	}
	if sessions.sessions[ref].UsedAt == nil {
		t.Error("publish failure must not block consumption")
	}
}
