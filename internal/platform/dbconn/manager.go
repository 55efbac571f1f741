// Package dbconn owns the process-wide session to the author store. A Manager
// dials in the background, retries on a fixed delay until it succeeds, and is
// the only component allowed to open or close the session.
package dbconn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned by Session until the first dial succeeds.
var ErrNotConnected = errors.New("store not connected")

// DefaultRetryDelay is the fixed wait between failed dials.
const DefaultRetryDelay = 5 * time.Second

// DialFunc opens a session and verifies it is reachable.
type DialFunc[T any] func(ctx context.Context) (T, error)

// CloseFunc releases a session opened by DialFunc.
type CloseFunc[T any] func(ctx context.Context, session T) error

// Observer receives connection lifecycle events. *metrics.Metrics satisfies it.
type Observer interface {
	ConnectAttempt()
	ConnectFailed()
	SetConnected(ok bool)
}

type Options[T any] struct {
	Name       string
	Target     string
	Dial       DialFunc[T]
	Close      CloseFunc[T]
	RetryDelay time.Duration
	Logger     *logrus.Logger
	Observer   Observer
}

type Manager[T any] struct {
	name       string
	target     string
	dial       DialFunc[T]
	closeFn    CloseFunc[T]
	retryDelay time.Duration
	log        *logrus.Logger
	obs        Observer

	session   atomic.Pointer[T]
	connected chan struct{}
	done      chan struct{}
	started   atomic.Bool
	startOnce sync.Once
	closeOnce sync.Once
	cancel    context.CancelFunc
	closed    bool
	mu        sync.Mutex
}

func New[T any](opts Options[T]) *Manager[T] {
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	name := opts.Name
	if name == "" {
		name = "store"
	}
	return &Manager[T]{
		name:       name,
		target:     RedactURL(opts.Target),
		dial:       opts.Dial,
		closeFn:    opts.Close,
		retryDelay: delay,
		log:        log,
		obs:        opts.Observer,
		connected:  make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the connect loop. Only the first call has an effect, and
// none after Close; the loop exits once a session is established or ctx is
// cancelled.
func (m *Manager[T]) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed {
			return
		}
		loopCtx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		m.started.Store(true)
		go m.run(loopCtx)
	})
}

func (m *Manager[T]) run(ctx context.Context) {
	defer close(m.done)
	for {
		if m.attempt(ctx) {
			return
		}
		timer := time.NewTimer(m.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// attempt reports whether the loop should stop.
func (m *Manager[T]) attempt(ctx context.Context) bool {
	entry := m.log.WithFields(logrus.Fields{"store": m.name, "target": m.target})
	m.observe(func(o Observer) { o.ConnectAttempt() })

	session, err := m.dial(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		m.observe(func(o Observer) { o.ConnectFailed() })
		entry.WithError(err).WithField("retry_in", m.retryDelay.String()).Error("Connection error")
		return false
	}

	m.session.Store(&session)
	m.observe(func(o Observer) { o.SetConnected(true) })
	close(m.connected)
	entry.Info("Connected successfully")
	return true
}

func (m *Manager[T]) observe(fn func(Observer)) {
	if m.obs != nil {
		fn(m.obs)
	}
}

// Session returns the established session or ErrNotConnected.
func (m *Manager[T]) Session() (T, error) {
	if s := m.session.Load(); s != nil {
		return *s, nil
	}
	var zero T
	return zero, ErrNotConnected
}

func (m *Manager[T]) Connected() bool {
	return m.session.Load() != nil
}

// Ready is closed once the first dial succeeds.
func (m *Manager[T]) Ready() <-chan struct{} {
	return m.connected
}

// Close stops the connect loop and closes the session if one was opened.
func (m *Manager[T]) Close(ctx context.Context) error {
	var err error
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		cancel := m.cancel
		m.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		if m.started.Load() {
			select {
			case <-m.done:
			case <-ctx.Done():
				err = ctx.Err()
				return
			}
		}

		s := m.session.Swap(nil)
		if s == nil {
			return
		}
		m.observe(func(o Observer) { o.SetConnected(false) })
		if m.closeFn != nil {
			err = m.closeFn(ctx, *s)
		}
		m.log.WithField("store", m.name).Info("Connection closed")
	})
	return err
}
