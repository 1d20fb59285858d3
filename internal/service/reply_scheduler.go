package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/repository"
	"github.com/chattermate/chattermate-backend/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

var (
	repliesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "persona_replies_generated_total",
		Help: "Total number of persona replies successfully generated",
	})
	replyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "persona_reply_failures_total",
		Help: "Total number of reply pipelines that terminated without delivering",
	}, []string{"stage"})
	pipelinesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "persona_reply_pipelines_active",
		Help: "Number of reply pipelines currently running",
	})
)

// SchedulerOptions tune the reply pipeline.
type SchedulerOptions struct {
	// TypingDelay is the simulated-typing wait between successful
	// generation and delivery of the reply.
	TypingDelay time.Duration
	// GenerationTimeout bounds a single generation call.
	GenerationTimeout time.Duration
	// MaxConcurrent bounds how many pipelines run at once; admission
	// waits inside the detached goroutine, never in the caller.
	MaxConcurrent int64
}

// ReplyScheduler runs the asynchronous persona-reply pipeline. Each
// stored user message spawns one detached pipeline:
//
//	Sent → GenerationRequested → GenerationFailed (terminal, silent)
//	                           → GenerationSucceeded → DeliveryScheduled → Delivered
//
// Failures never propagate to the sender's request; they are observable
// only through logs, metrics, and the absence of a reply. Pending
// deliveries are tracked by originating message id so they can be
// cancelled (cleanup, shutdown).
type ReplyScheduler struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	generator   Generator
	opts        SchedulerOptions

	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[uint64]chan struct{} // originating message id → cancel signal
}

// NewReplyScheduler creates a ReplyScheduler.
func NewReplyScheduler(
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	generator Generator,
	opts SchedulerOptions,
) *ReplyScheduler {
	if opts.TypingDelay <= 0 {
		opts.TypingDelay = 2 * time.Second
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = 30 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 32
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ReplyScheduler{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		generator:   generator,
		opts:        opts,
		sem:         semaphore.NewWeighted(opts.MaxConcurrent),
		ctx:         ctx,
		cancel:      cancel,
		pending:     make(map[uint64]chan struct{}),
	}
}

// Schedule launches the reply pipeline for a just-stored user message.
// Returns immediately; the caller's request cycle is never blocked.
func (s *ReplyScheduler) Schedule(msg *domain.Message) {
	s.wg.Add(1)
	go s.run(msg)
}

func (s *ReplyScheduler) run(msg *domain.Message) {
	defer s.wg.Done()

	if err := s.sem.Acquire(s.ctx, 1); err != nil {
		// Shutdown while waiting for admission.
		return
	}
	defer s.sem.Release(1)

	pipelinesActive.Inc()
	defer pipelinesActive.Dec()

	log := logger.GetLogger().With().
		Uint64("message_id", msg.ID).
		Uint64("sender_id", msg.SenderID).
		Uint64("receiver_id", msg.ReceiverID).
		Logger()

	receiver, err := s.userRepo.FindByID(msg.ReceiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug().Msg("receiver profile not found, skipping reply")
		} else {
			log.Error().Err(err).Msg("loading receiver profile failed")
			replyFailures.WithLabelValues("profile").Inc()
		}
		return
	}

	prompt := BuildPersonaPrompt(receiver, msg.Body)
	log.Debug().Msg("reply generation requested")

	genCtx, cancel := context.WithTimeout(s.ctx, s.opts.GenerationTimeout)
	reply, err := s.generator.Generate(genCtx, prompt)
	cancel()
	if err != nil {
		// Terminal and silent: no reply message, no retry, nothing
		// surfaced to the original sender.
		log.Warn().Err(err).Msg("reply generation failed")
		replyFailures.WithLabelValues("generation").Inc()
		return
	}
	repliesGenerated.Inc()

	s.deliverAfterDelay(msg, reply, log)
}

// deliverAfterDelay waits out the simulated-typing delay, then stores the
// reply. The wait is cancellable through Cancel or Shutdown.
func (s *ReplyScheduler) deliverAfterDelay(msg *domain.Message, reply string, log zerolog.Logger) {
	cancelCh := make(chan struct{})
	s.mu.Lock()
	s.pending[msg.ID] = cancelCh
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, msg.ID)
		s.mu.Unlock()
	}()

	log.Debug().Dur("delay", s.opts.TypingDelay).Msg("reply delivery scheduled")

	timer := time.NewTimer(s.opts.TypingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-cancelCh:
		log.Debug().Msg("reply delivery cancelled")
		return
	case <-s.ctx.Done():
		log.Debug().Msg("reply delivery abandoned on shutdown")
		return
	}

	replyMsg := &domain.Message{
		SenderID:   msg.ReceiverID,
		ReceiverID: msg.SenderID,
		Body:       reply,
	}
	if err := s.messageRepo.Create(replyMsg); err != nil {
		// The triggering request completed long ago; log only.
		log.Error().Err(err).Msg("storing generated reply failed")
		replyFailures.WithLabelValues("store").Inc()
		return
	}

	log.Info().Uint64("reply_id", replyMsg.ID).Msg("persona reply delivered")
}

// Cancel aborts the pending delivery for the given originating message
// id, if one exists. Generation already in flight is not interrupted;
// its result is discarded at the delivery gate.
func (s *ReplyScheduler) Cancel(messageID uint64) {
	s.mu.Lock()
	ch, ok := s.pending[messageID]
	if ok {
		delete(s.pending, messageID)
	}
	s.mu.Unlock()
	if ok {
		close(ch)
	}
}

// PendingCount reports how many deliveries are waiting on their typing delay.
func (s *ReplyScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Shutdown cancels all in-flight pipelines and waits for them to exit.
func (s *ReplyScheduler) Shutdown() {
	s.cancel()
	s.wg.Wait()
}
