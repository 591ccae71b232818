package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tennis-space/backend/internal/session"
)

const minPasswordLength = 6

var (
	errEmailExists     = errors.New("EMAIL_EXISTS")
	errEmailNotFound   = errors.New("EMAIL_NOT_FOUND")
	errInvalidPassword = errors.New("INVALID_PASSWORD")
	errWeakPassword    = errors.New("WEAK_PASSWORD : Password should be at least 6 characters")
	errUserNotFound    = errors.New("USER_NOT_FOUND")
	errTokenRevoked    = errors.New("TOKEN_REVOKED")
)

type memAccount struct {
	uid   string
	email string
	name  string
	hash  []byte
	// gen is bumped on sign-out; tokens carrying an older value are revoked.
	gen int
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Gen   int    `json:"gen"`
	jwt.RegisteredClaims
}

// MemoryProvider keeps accounts in process and issues HS256 tokens. It backs
// tests and BACKEND=memory.
type MemoryProvider struct {
	mu      sync.Mutex
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	byEmail map[string]*memAccount
	byUID   map[string]*memAccount
}

func NewMemoryProvider(secret string, ttl time.Duration) *MemoryProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryProvider{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		byEmail: map[string]*memAccount{},
		byUID:   map[string]*memAccount{},
	}
}

func (p *MemoryProvider) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

func (p *MemoryProvider) SignIn(_ context.Context, email, password string) (session.Session, error) {
	p.mu.Lock()
	acc, ok := p.byEmail[strings.ToLower(email)]
	p.mu.Unlock()
	if !ok {
		return session.Session{}, errEmailNotFound
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return session.Session{}, errInvalidPassword
	}
	return p.issue(acc)
}

func (p *MemoryProvider) CreateAccount(_ context.Context, email, password string) (session.Session, error) {
	if len(password) < minPasswordLength {
		return session.Session{}, errWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return session.Session{}, err
	}

	key := strings.ToLower(email)
	p.mu.Lock()
	if _, exists := p.byEmail[key]; exists {
		p.mu.Unlock()
		return session.Session{}, errEmailExists
	}
	acc := &memAccount{uid: uuid.NewString(), email: email, hash: hash}
	p.byEmail[key] = acc
	p.byUID[acc.uid] = acc
	p.mu.Unlock()

	return p.issue(acc)
}

func (p *MemoryProvider) UpdateDisplayName(_ context.Context, uid, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.byUID[uid]
	if !ok {
		return errUserNotFound
	}
	acc.name = name
	return nil
}

func (p *MemoryProvider) Verify(_ context.Context, token string) (session.Session, error) {
	p.mu.Lock()
	now := p.now
	p.mu.Unlock()

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		return session.Session{}, err
	}

	p.mu.Lock()
	acc, known := p.byUID[claims.Subject]
	var gen int
	if known {
		gen = acc.gen
	}
	p.mu.Unlock()
	if !known {
		return session.Session{}, errUserNotFound
	}
	if claims.Gen != gen {
		return session.Session{}, errTokenRevoked
	}

	s := session.Session{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		Token:       token,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

func (p *MemoryProvider) SignOut(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.byUID[uid]
	if !ok {
		return errUserNotFound
	}
	acc.gen++
	return nil
}

func (p *MemoryProvider) issue(acc *memAccount) (session.Session, error) {
	p.mu.Lock()
	now := p.now()
	email, name, gen := acc.email, acc.name, acc.gen
	p.mu.Unlock()

	exp := now.Add(p.ttl)
	claims := tokenClaims{
		Email: email,
		Name:  name,
		Gen:   gen,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return session.Session{}, err
	}
	return session.Session{
		UID:         acc.uid,
		Email:       email,
		DisplayName: name,
		Token:       signed,
		ExpiresAt:   exp,
	}, nil
}
