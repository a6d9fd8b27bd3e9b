package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/entity"
	repo "github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/domain/repository"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/helpers"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/mailer"
	mailtpl "github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/mailer/templates"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/validation"
)

// VerificationStore holds single-use email verification tokens keyed by
// the token value. Consume must delete the token it resolves.
type VerificationStore interface {
	Put(ctx context.Context, token, accountID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

// Publisher enqueues outbound email jobs. Delivery happens elsewhere; a
// publish failure never fails the operation that requested the email.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Service orchestrates the account lifecycle: registration, login,
// profile reads and mutations, email verification, and the
// administrative listing/search/delete operations.
type Service struct {
	Repo            repo.AccountRepository
	Tokens          *helpers.TokenManager
	Verify          VerificationStore
	VerifyTTL       time.Duration
	VerifyURL       string
	Pub             Publisher
	GCS             *storage.Client
	GCSBucket       string
	ES              *elasticsearch.Client
	ESAccountsIndex string
	Logger          *logrus.Logger
}

func NewService(r repo.AccountRepository, tokens *helpers.TokenManager, verify VerificationStore, verifyTTL time.Duration, verifyURL string, pub Publisher, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *Service {
	return &Service{
		Repo:            r,
		Tokens:          tokens,
		Verify:          verify,
		VerifyTTL:       verifyTTL,
		VerifyURL:       verifyURL,
		Pub:             pub,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		ES:              es,
		ESAccountsIndex: esIndex,
		Logger:          logger,
	}
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	Phone        string
	Organization string
}

// Register creates a new account and returns its projection together
// with a session token. The email check before insert is a fast-path
// rejection only; the store's unique constraint is authoritative.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Profile, string, error) {
	if existing, err := s.Repo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, "", err
	}

	if !validation.EmailValid(in.Email) {
		return nil, "", validationErr("Invalid email format")
	}
	if !validation.PasswordValid(in.Password) {
		return nil, "", validationErr("Password must be at least 8 characters long and contain both letters and numbers.")
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, "", validationErr("Invalid role")
	}
	if !validation.OrganizerValid(in.Role, in.Organization) {
		return nil, "", validationErr("Organization is required for the 'Organizer' role")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	a := &entity.Account{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        in.Phone,
		Organization: in.Organization,
	}
	if err := s.Repo.Create(a); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.Tokens.Generate(a.ID, string(a.Role), s.Tokens.RegisterTTL)
	if err != nil {
		return nil, "", err
	}

	s.sendVerificationEmail(ctx, a)
	s.indexAccount(ctx, a)

	p := NewProfile(a)
	return &p, token, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Profile, string, error) {
	a, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.Tokens.Generate(a.ID, string(a.Role), s.Tokens.LoginTTL)
	if err != nil {
		return nil, "", err
	}
	p := NewProfile(a)
	return &p, token, nil
}

func (s *Service) GetProfile(accountID string) (*Profile, error) {
	a, err := s.Repo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	p := NewProfile(a)
	return &p, nil
}

type UpdateProfileInput struct {
	Name           string
	Phone          string
	ProfilePicture string
	Organization   string
}

// UpdateProfile overwrites the provided fields and leaves empty ones
// untouched. Organization only applies to organizer accounts; for any
// other role it is silently ignored.
func (s *Service) UpdateProfile(ctx context.Context, accountID string, in UpdateProfileInput) (*Profile, error) {
	a, err := s.Repo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Phone != "" {
		a.Phone = in.Phone
	}
	if in.ProfilePicture != "" {
		a.ProfilePicture = in.ProfilePicture
	}
	if in.Organization != "" && a.Role == entity.RoleOrganizer {
		a.Organization = in.Organization
	}
	a.UpdatedAt = time.Now()

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	s.indexAccount(ctx, a)

	p := NewProfile(a)
	return &p, nil
}

// VerifyEmail consumes a verification token and marks the account
// verified. Tokens are single use; a second attempt fails.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if s.Verify == nil {
		return ErrInvalidVerifyToken
	}
	id, err := s.Verify.Consume(ctx, token)
	if err != nil {
		return err
	}
	if id == "" {
		return ErrInvalidVerifyToken
	}
	if err := s.Repo.SetVerified(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Account deleted after the token was issued.
			return ErrInvalidVerifyToken
		}
		return err
	}
	return nil
}

// UploadPicture stores a profile picture in GCS and records its public
// URL on the account.
func (s *Service) UploadPicture(ctx context.Context, accountID string, r io.Reader, filename, contentType string) (*Profile, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}
	a, err := s.Repo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profile-pictures", accountID, randomToken(16)+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	a.ProfilePicture = url
	a.UpdatedAt = time.Now()
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	s.indexAccount(ctx, a)

	p := NewProfile(a)
	return &p, nil
}

// ListAccounts returns the scrubbed projection of every account.
func (s *Service) ListAccounts() ([]Profile, error) {
	accounts, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewProfile(a))
	}
	return out, nil
}

// DeleteAccount removes an account permanently.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	s.deleteIndexDoc(ctx, id)
	return nil
}

// sendVerificationEmail issues a fresh single-use verification token and
// enqueues the welcome email carrying its link. Failures are logged and
// never surface into the registration result.
func (s *Service) sendVerificationEmail(ctx context.Context, a *entity.Account) {
	if s.Verify == nil || s.Pub == nil {
		return
	}
	tok := randomToken(32)
	if err := s.Verify.Put(ctx, tok, a.ID, s.VerifyTTL); err != nil {
		s.logWarn(err, a.ID, "store verification token failed")
		return
	}
	job := mailer.EmailJob{
		To:       a.Email,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"Name":      a.Name,
			"VerifyURL": s.VerifyURL + "?token=" + tok,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.logWarn(err, a.ID, "enqueue welcome email failed")
	}
}

// Search performs a multi_match query on name and email.
func (s *Service) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESAccountsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// indexAccount mirrors the account's safe fields into the search index.
// The password hash never reaches the index.
func (s *Service) indexAccount(ctx context.Context, a *entity.Account) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           a.ID,
		"name":         a.Name,
		"email":        a.Email,
		"role":         string(a.Role),
		"organization": a.Organization,
		"is_verified":  a.IsVerified,
		"created_at":   a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAccountsIndex, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.logWarn(err, a.ID, "index account failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.logWarn(nil, a.ID, "index account response error: "+res.Status())
	}
}

func (s *Service) deleteIndexDoc(ctx context.Context, id string) {
	if s.ES == nil || s.ESAccountsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESAccountsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.logWarn(err, id, "delete index doc failed")
		return
	}
	_ = res.Body.Close()
}

func (s *Service) logWarn(err error, accountID, msg string) {
	if s.Logger == nil {
		return
	}
	e := s.Logger.WithField("account_id", accountID)
	if err != nil {
		e = e.WithError(err)
	}
	e.Warn(msg)
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
