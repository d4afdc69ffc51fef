package testutil

import (
	"context"
	"sync"

	"github.com/quoteflow/quote-service/internal/auth"
	ierr "github.com/quoteflow/quote-service/internal/errors"
)

// FakeEmailSender records sent mail so tests can assert on it.
type FakeEmailSender struct {
	mu   sync.Mutex
	Sent []FakeEmail
}

type FakeEmail struct {
	To      string
	Subject string
	HTML    string
}

func NewFakeEmailSender() *FakeEmailSender {
	return &FakeEmailSender{}
}

func (f *FakeEmailSender) Send(_ context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, FakeEmail{To: to, Subject: subject, HTML: html})
	return nil
}

func (f *FakeEmailSender) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Sent)
}

func (f *FakeEmailSender) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = nil
}

// FakeAuthProvider accepts tokens registered through AddToken and records
// deleted users.
type FakeAuthProvider struct {
	mu      sync.Mutex
	tokens  map[string]*auth.Claims
	Deleted []string
}

func NewFakeAuthProvider() *FakeAuthProvider {
	return &FakeAuthProvider{tokens: make(map[string]*auth.Claims)}
}

func (f *FakeAuthProvider) AddToken(token, userID, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &auth.Claims{UserID: userID, Email: email}
}

func (f *FakeAuthProvider) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if claims, ok := f.tokens[token]; ok {
		return claims, nil
	}
	return nil, ierr.NewError("invalid token").Mark(ierr.ErrUnauthorized)
}

func (f *FakeAuthProvider) DeleteUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, userID)
	return nil
}
