// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"sync"
	"time"
)

// Session owns one panel connection end to end: dialing and
// authenticating through a [Transport], fanning inbound bytes out to
// every registered [Consumer] via a [ConsumerRegistry], and reconnecting
// with bounded retries when the connection drops unexpectedly.
//
// In the cooperative single-threaded scheduler this design originates
// from, a session's internal state needed no locking at all. Here the
// read loop, a caller blocked in a request, and a background reconnect
// attempt are three genuinely concurrent goroutines, so connectMu and
// writeMu are both load bearing.
type Session struct {
	cfg            *Config
	transport      Transport
	logger         SLogger
	username       string
	password       string
	hasCredentials bool

	registry  *ConsumerRegistry
	connected *TwoSidedEvent

	connectMu sync.Mutex
	writeMu   sync.Mutex

	cancelCtx context.Context
	cancel    context.CancelFunc

	readDone chan struct{}
}

// NewSession returns an unconnected [*Session]. Call [Session.Connect]
// before issuing any request.
func NewSession(cfg *Config, transport Transport, logger SLogger) *Session {
	if logger == nil {
		logger = DefaultSLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		cfg:       cfg,
		transport: transport,
		logger:    logger,
		registry:  NewConsumerRegistry(),
		connected: NewTwoSidedEvent(),
		cancelCtx: ctx,
		cancel:    cancel,
	}
}

// WithCredentials configures the username/password pair the
// authentication exchange sends when the panel issues a LOGIN prompt. It
// returns the session for chaining and must be called before Connect.
func (s *Session) WithCredentials(username, password string) *Session {
	s.username = username
	s.password = password
	s.hasCredentials = true
	return s
}

// Connected reports whether the session currently believes it is
// connected and authenticated.
func (s *Session) Connected() bool {
	return s.connected.IsSet()
}

// Connect dials the transport, starts the read loop, and authenticates.
// It is idempotent while already connected.
func (s *Session) Connect(ctx context.Context) error {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()
	return s.establishConnection(ctx)
}

func (s *Session) establishConnection(ctx context.Context) error {
	if s.connected.IsSet() {
		return nil
	}
	ctx, cancelConnect := context.WithTimeout(ctx, s.cfg.ConnectionTimeout)
	defer cancelConnect()
	if err := s.transport.Connect(ctx); err != nil {
		return err
	}

	s.readDone = make(chan struct{})
	go s.readLoop()

	authCtx, cancel := context.WithTimeout(ctx, s.cfg.AuthenticationTimeout)
	defer cancel()
	if err := authenticate(authCtx, s); err != nil {
		s.transport.Disconnect()
		return err
	}

	s.connected.Set()
	s.logger.Info("session connected")
	return nil
}

// Disconnect tears the session down permanently: no further automatic
// reconnect attempts follow a call to Disconnect.
func (s *Session) Disconnect() error {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()
	s.cancel()
	err := s.transport.Disconnect()
	s.connected.Clear()
	s.registry.AbortAll(NewConnectionError("session disconnected by caller", nil))
	return err
}

func (s *Session) readLoop() {
	defer close(s.readDone)
	buf := make([]byte, 4096)
	for {
		n, err := s.transport.Read(buf)
		if err != nil {
			s.handleDisconnect(err)
			return
		}
		if n == 0 {
			continue
		}
		s.registry.Feed(string(buf[:n]), s.logger)
	}
}

func (s *Session) handleDisconnect(cause error) {
	s.connected.Clear()
	s.transport.Disconnect()
	s.registry.AbortAll(NewConnectionError("panel connection lost", cause))
	s.logger.Info("session disconnected", "err", cause)

	select {
	case <-s.cancelCtx.Done():
		return
	default:
		go s.reconnectLoop()
	}
}

func (s *Session) reconnectLoop() {
	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		select {
		case <-s.cancelCtx.Done():
			return
		case <-time.After(s.cfg.ReconnectDelay):
		}

		s.logger.Info("reconnect attempt", "attempt", attempt, "max_retries", s.cfg.MaxRetries)

		s.connectMu.Lock()
		err := s.establishConnection(s.cancelCtx)
		s.connectMu.Unlock()
		if err == nil {
			return
		}
	}
	s.logger.Info("reconnect attempts exhausted", "max_retries", s.cfg.MaxRetries)
}

// WriteLine writes raw bytes to the transport. Callers append their own
// line delimiter; the panel protocol's delimiter is not fixed across
// every command.
func (s *Session) WriteLine(data string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.transport.Write([]byte(data))
	return err
}

// ReadLine waits for the next complete line terminated by delimiter,
// independent of any in-flight request. Used by the authentication
// exchange to consume an intermediate prompt it does not need to parse.
func (s *Session) ReadLine(ctx context.Context, delimiter string) (string, error) {
	consumer := NewFutureConsumer[string](WaitLine(delimiter))
	_, unregister := s.registry.Register(consumer)
	defer unregister()

	result, err := consumer.Wait(ctx)
	if err != nil {
		return "", err
	}
	if result.IsError() {
		return "", result.Err
	}
	return result.Value, nil
}

// Subscription is a live registration of a notification [QueueConsumer]
// against a [Session]. Panel-originated events accumulate on an unbounded
// FIFO independent of any in-flight request; callers drain it with Next
// and release it with Close once they no longer care about events.
type Subscription struct {
	consumer   *QueueConsumer[Notification]
	unregister func()
}

// Subscribe registers a queue-consumer that decodes every complete line
// the panel sends as a [Notification], matching panel_state_consumer in
// the source material: unsolicited events flow here for the lifetime of
// the returned [*Subscription], entirely separate from request/response
// traffic. Most callers pass [Config.NotificationDelimiter].
func (s *Session) Subscribe(delimiter string) *Subscription {
	decoder := Compose[string, string, Notification](WaitLine(delimiter), ParseNotification)
	consumer := NewQueueConsumer[Notification](decoder)
	_, unregister := s.registry.Register(consumer)
	return &Subscription{consumer: consumer, unregister: unregister}
}

// Next blocks until a notification arrives, the subscription terminates
// because the session disconnected, or ctx is done. The second return
// value is false once the subscription has drained after termination, or
// after ctx expires.
func (sub *Subscription) Next(ctx context.Context) (FlowResult[Notification], bool) {
	return sub.consumer.Next(ctx)
}

// Close deregisters the subscription. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.unregister()
}

// SendRequest registers a [FutureConsumer] decoding the response with
// transformer, writes data, and waits for it to settle. This is the
// single request/response primitive every command constructor in
// commands.go builds on.
func SendRequest[Out any](ctx context.Context, s *Session, data string, transformer Transformer[string, Out]) (Out, error) {
	var zero Out
	consumer := NewFutureConsumer[Out](transformer)
	req := NewRequest[Out](data, consumer)

	_, unregister := s.registry.Register(consumer)
	defer unregister()

	if err := s.WriteLine(req.Data); err != nil {
		req.MarkDone()
		return zero, err
	}

	result, err := consumer.Wait(ctx)
	req.MarkDone()
	if err != nil {
		return zero, err
	}
	if result.IsError() {
		return zero, result.Err
	}
	return result.Value, nil
}
