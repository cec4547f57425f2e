// Package reconcile runs the transfer-notification reconciliation session:
// it consumes a stream of opaque node events, decodes them, verifies each
// transfer against the holder key, persists accepted cash notes, and applies
// them to the wallet ledger as one coherent unit.
package reconcile

import (
	"context"
	"errors"
	"sync"

	"github.com/bochaco/stableset-net/internal/pkg/types"
	"github.com/bochaco/stableset-net/internal/transfers"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
// A service instance runs a single session per lifecycle.
var ErrServiceAlreadyStarted = errors.New("service already started")

// NoteStore persists verified cash notes for later recovery. Optional: when
// no store is configured, notes are deposited without file persistence.
type NoteStore interface {
	Persist(ctx context.Context, note transfers.CashNote) error
}

// Ledger is the wallet the session deposits into. It is exclusively owned by
// this session for its whole duration.
type Ledger interface {
	Deposit(ctx context.Context, notes []transfers.CashNote) error
	Balance(ctx context.Context) (types.NanoTokens, error)
}

// Service is the reconciliation session entrypoint.
type Service interface {
	// Start registers the notification filter, subscribes to the stream, and
	// launches the consuming loop. Returns ErrServiceAlreadyStarted on a
	// second call.
	Start(ctx context.Context) error

	// Close cancels the session and waits for any in-flight batch to finish,
	// so a deposit is never left half-applied. Safe to call if the service
	// was never started.
	Close()

	// Done is closed when the loop has exited, either because the stream
	// closed or a fatal error occurred.
	Done() <-chan struct{}

	// Err returns the fatal error that terminated the loop, or nil after a
	// graceful stream close.
	Err() error
}

// closeFunc tears down the session's background work.
type closeFunc func()

// service wires the notification source, holder key, ledger, and optional
// note store into a single sequential consumer.
type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool
	closeFunc closeFunc
	done      chan struct{}

	// errMu is separate from mu: the loop records its fatal error while
	// Close may be holding mu waiting for the loop to finish.
	errMu sync.Mutex
	err   error

	source    NotificationSource
	holder    *transfers.HolderKey
	ledger    Ledger
	noteStore NoteStore // nil when file persistence is disabled
	reporter  BalanceReporter
}

var _ Service = (*service)(nil)

// Option customizes the service built by New.
type Option func(*service)

// WithNoteStore enables per-note file persistence through the given store.
func WithNoteStore(ns NoteStore) Option {
	return func(s *service) {
		s.noteStore = ns
	}
}

// WithBalanceReporter replaces the default log-based batch reporter.
func WithBalanceReporter(r BalanceReporter) Option {
	return func(s *service) {
		s.reporter = r
	}
}

// New creates a reconciliation service for the given holder key. The ledger
// and note store must not be shared with any other session.
func New(source NotificationSource, holder *transfers.HolderKey, ledger Ledger, opts ...Option) *service {
	s := &service{
		source:   source,
		holder:   holder,
		ledger:   ledger,
		reporter: logBalanceReporter{},
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start implements Service.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	holderPublicKey := s.holder.PublicKeyBytes()

	if err := s.source.RegisterFilter(ctx, holderPublicKey); err != nil {
		cancel()
		return err
	}

	eventsCh, err := s.source.Subscribe(ctx, holderPublicKey)
	if err != nil {
		cancel()
		return err
	}

	go s.run(ctx, eventsCh)

	s.closeFunc = func() {
		cancel()
		<-s.done
	}
	s.isStarted = true
	return nil
}

// Close implements Service.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
}

// Done implements Service.
func (s *service) Done() <-chan struct{} {
	return s.done
}

// Err implements Service.
func (s *service) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()

	return s.err
}

// setErr records the fatal error that terminated the loop.
func (s *service) setErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()

	s.err = err
}
