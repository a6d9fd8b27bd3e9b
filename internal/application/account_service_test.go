package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/entity"
	repo "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/repository"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/helpers"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/mailer"
)

// fakeRepo is an in-memory AccountRepository with the same contract as
// the postgres implementation, including the duplicate-email sentinel.
// skipEmailLookup simulates the register pre-check racing with a
// concurrent insert: GetByEmail misses but the unique constraint fires.
type fakeRepo struct {
	mu              sync.Mutex
	accounts        map[string]*entity.Account
	nextID          int
	skipEmailLookup bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: map[string]*entity.Account{}}
}

func (r *fakeRepo) Create(a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.accounts {
		if ex.Email == a.Email {
			return repo.ErrDuplicateEmail
		}
	}
	r.nextID++
	a.ID = fmt.Sprintf("acc-%d", r.nextID)
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipEmailLookup {
		return nil, repo.ErrNotFound
	}
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeRepo) Update(a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeRepo) List() ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) SetVerified(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.IsVerified = true
	a.UpdatedAt = time.Now()
	return nil
}

type fakeVerifyStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeVerifyStore() *fakeVerifyStore {
	return &fakeVerifyStore{tokens: map[string]string{}}
}

func (s *fakeVerifyStore) Put(_ context.Context, token, accountID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = accountID
	return nil
}

func (s *fakeVerifyStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.tokens[token]
	delete(s.tokens, token)
	return id, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func newTestService(r repo.AccountRepository, verify VerificationStore, pub Publisher) *Service {
	tokens := helpers.NewTokenManager("test-secret", 3*time.Hour, time.Hour)
	return NewService(r, tokens, verify, 24*time.Hour, "http://localhost:8080/verify-email", pub, nil, "", nil, "", nil)
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "abcd1234",
		Role:     "Attendee",
		Phone:    "555-0100",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	p, regToken, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, regToken)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, entity.RoleAttendee, p.Role)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	lp, loginToken, err := svc.Login(ctx, "alice@example.com", "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, p.ID, lp.ID)

	claims, err := svc.Tokens.Parse(loginToken)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.AccountID)
	assert.Equal(t, "Attendee", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	regClaims, err := svc.Tokens.Parse(regToken)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), regClaims.ExpiresAt.Time, time.Minute)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		message string
	}{
		{
			name:    "bad email",
			mutate:  func(in *RegisterInput) { in.Email = "a@b" },
			message: "Invalid email format",
		},
		{
			name:    "non-com tld",
			mutate:  func(in *RegisterInput) { in.Email = "a@b.org" },
			message: "Invalid email format",
		},
		{
			name:    "short password",
			mutate:  func(in *RegisterInput) { in.Password = "short1" },
			message: "Password must be at least 8 characters long and contain both letters and numbers.",
		},
		{
			name:    "no digit",
			mutate:  func(in *RegisterInput) { in.Password = "alllettersnodigit" },
			message: "Password must be at least 8 characters long and contain both letters and numbers.",
		},
		{
			name:    "unknown role",
			mutate:  func(in *RegisterInput) { in.Role = "Superuser" },
			message: "Invalid role",
		},
		{
			name: "organizer without organization",
			mutate: func(in *RegisterInput) {
				in.Role = "Organizer"
				in.Organization = "  "
			},
			message: "Organization is required for the 'Organizer' role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
			in := validInput()
			tt.mutate(&in)

			_, _, err := svc.Register(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestRegisterOrganizer(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	in := validInput()
	in.Role = "Organizer"
	in.Organization = "EventCo"

	p, _, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "EventCo", p.Organization)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, validInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateEmailConstraintRace(t *testing.T) {
	// The pre-insert lookup misses but the unique constraint still
	// rejects; the caller sees the same conflict either way.
	r := newFakeRepo()
	svc := newTestService(r, newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	r.skipEmailLookup = true
	_, _, err = svc.Register(ctx, validInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterPasswordNeverStoredPlain(t *testing.T) {
	r := newFakeRepo()
	svc := newTestService(r, newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	p, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	stored, err := r.GetByID(p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "abcd1234", stored.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(stored.PasswordHash, "abcd1234"))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "abcd1234")
	_, _, wrongPwErr := svc.Login(ctx, "alice@example.com", "wrongpass1")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	p, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	before := p.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	updated, err := svc.UpdateProfile(ctx, p.ID, UpdateProfileInput{Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, p.Name, updated.Name)
	assert.Equal(t, p.ProfilePicture, updated.ProfilePicture)
	assert.Equal(t, p.Organization, updated.Organization)
	assert.True(t, updated.UpdatedAt.After(before))
}

func TestUpdateProfileOrganizationGatedByRole(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	// Attendee: organization silently ignored.
	p, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	updated, err := svc.UpdateProfile(ctx, p.ID, UpdateProfileInput{Organization: "Sneaky Inc"})
	require.NoError(t, err)
	assert.Empty(t, updated.Organization)

	// Organizer: organization applied.
	in := validInput()
	in.Email = "bob@example.com"
	in.Role = "Organizer"
	in.Organization = "EventCo"
	op, _, err := svc.Register(ctx, in)
	require.NoError(t, err)
	updated, err = svc.UpdateProfile(ctx, op.ID, UpdateProfileInput{Organization: "NewCo"})
	require.NoError(t, err)
	assert.Equal(t, "NewCo", updated.Organization)
}

func TestUpdateProfileUnknownAccount(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	_, err := svc.UpdateProfile(context.Background(), "missing", UpdateProfileInput{Name: "X"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDeleteAccount(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteAccount(ctx, "missing"), ErrAccountNotFound)

	p, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, p.ID))
	_, err = svc.GetProfile(p.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestVerifyEmailConsumesToken(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), pub)
	ctx := context.Background()

	p, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, "alice@example.com", job.To)

	verifyURL, _ := job.Data["VerifyURL"].(string)
	i := strings.Index(verifyURL, "?token=")
	require.Greater(t, i, 0)
	token := verifyURL[i+len("?token="):]

	// The verification token is not the session token.
	_, parseErr := svc.Tokens.Parse(token)
	assert.Error(t, parseErr)

	require.NoError(t, svc.VerifyEmail(ctx, token))
	verified, err := svc.GetProfile(p.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	// Single use: a second attempt fails.
	assert.ErrorIs(t, svc.VerifyEmail(ctx, token), ErrInvalidVerifyToken)
}

func TestListAccountsScrubbed(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeVerifyStore(), &fakePublisher{})
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	in := validInput()
	in.Email = "bob@example.com"
	_, _, err = svc.Register(ctx, in)
	require.NoError(t, err)

	profiles, err := svc.ListAccounts()
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	b, err := json.Marshal(profiles)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "$2a$")
}
