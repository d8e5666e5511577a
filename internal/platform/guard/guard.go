package guard

import (
	"errors"
	"time"

	"stockroom/internal/database"
	puser "stockroom/internal/platform/user"
	"stockroom/pkg/passwd"
)

const maxCredentialLen = 100

// CredentialStore is the slice of the user service the guard needs.
type CredentialStore interface {
	GetByUsername(username string) (*database.User, error)
	UpdatePasswordHash(userID int, newHash string) error
	RecordLogin(userID int, at time.Time) error
}

// AttemptLedger records login attempts and answers sliding-window
// queries over them. Records are append-only.
type AttemptLedger interface {
	Record(origin, username string, success bool, at time.Time) error
	CountSince(origin, username string, since time.Time) (int64, error)
	OldestSince(origin, username string, since time.Time) (time.Time, error)
}

type Status int

const (
	StatusAuthenticated Status = iota
	StatusInvalidInput
	StatusInvalidCredentials
	StatusRateLimited
	StatusStoreUnavailable
)

// Outcome is the guard's only way of reporting a result; it never
// panics and callers never see raw store errors.
type Outcome struct {
	Status     Status
	UserID     int
	Username   string
	Role       string
	RetryAfter time.Duration
	Err        error
}

// Guard enforces authentication policy for (origin, username) pairs.
// Whether a pair is locked is recomputed from the ledger on every call,
// never cached, so concurrent requests only depend on the datastore's
// single-row atomicity.
type Guard struct {
	store  CredentialStore
	ledger AttemptLedger
	limit  int
	window time.Duration

	now       func() time.Time
	dummyHash string
}

func New(store CredentialStore, ledger AttemptLedger, limit int, window time.Duration) *Guard {
	return &Guard{
		store:  store,
		ledger: ledger,
		limit:  limit,
		window: window,
		now:    time.Now,
		// Verified against for unknown usernames so the miss path costs
		// the same as a wrong password for an existing account.
		dummyHash: passwd.Hash("stockroom"),
	}
}

func (g *Guard) Authenticate(origin, username, password string) Outcome {
	if username == "" || password == "" || len(username) > maxCredentialLen || len(password) > maxCredentialLen {
		return Outcome{Status: StatusInvalidInput}
	}

	now := g.now()
	windowStart := now.Add(-g.window)

	count, err := g.ledger.CountSince(origin, username, windowStart)
	if err != nil {
		return Outcome{Status: StatusStoreUnavailable, Err: err}
	}
	if count >= int64(g.limit) {
		retryAfter := g.window
		if oldest, err := g.ledger.OldestSince(origin, username, windowStart); err == nil {
			retryAfter = oldest.Add(g.window).Sub(now)
		}
		// Probes against a locked pair still land in the ledger, so
		// hammering during lockout extends it instead of going unseen.
		if err := g.ledger.Record(origin, username, false, now); err != nil {
			return Outcome{Status: StatusStoreUnavailable, Err: err}
		}
		return Outcome{Status: StatusRateLimited, RetryAfter: roundUpSecond(retryAfter)}
	}

	usr, err := g.store.GetByUsername(username)
	if err != nil {
		if !errors.Is(err, puser.ErrUserNotFound) {
			return Outcome{Status: StatusStoreUnavailable, Err: err}
		}
		passwd.Verify(password, g.dummyHash)
		if err := g.ledger.Record(origin, username, false, now); err != nil {
			return Outcome{Status: StatusStoreUnavailable, Err: err}
		}
		return Outcome{Status: StatusInvalidCredentials}
	}

	if !passwd.Verify(password, usr.PasswordHash) {
		if err := g.ledger.Record(origin, username, false, now); err != nil {
			return Outcome{Status: StatusStoreUnavailable, Err: err}
		}
		return Outcome{Status: StatusInvalidCredentials}
	}

	if passwd.SchemeOf(usr.PasswordHash) == passwd.SchemeLegacy {
		if err := g.store.UpdatePasswordHash(usr.ID, passwd.Hash(password)); err != nil {
			return Outcome{Status: StatusStoreUnavailable, Err: err}
		}
	}

	if err := g.ledger.Record(origin, username, true, now); err != nil {
		return Outcome{Status: StatusStoreUnavailable, Err: err}
	}
	if err := g.store.RecordLogin(usr.ID, now); err != nil {
		return Outcome{Status: StatusStoreUnavailable, Err: err}
	}

	return Outcome{
		Status:   StatusAuthenticated,
		UserID:   usr.ID,
		Username: usr.Username,
		Role:     usr.Role,
	}
}

func roundUpSecond(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Second
	}
	rounded := d.Truncate(time.Second)
	if rounded < d {
		rounded += time.Second
	}
	return rounded
}
