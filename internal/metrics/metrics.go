package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for bidding, matching and auctions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	BidsAdmitted         prometheus.Counter
	BidsRejected         *prometheus.CounterVec
	BidAdmissionDuration prometheus.Histogram
	MatchesCreated       prometheus.Counter
	MatchReviews         *prometheus.CounterVec
	CandidateGenDuration prometheus.Histogram
	AuctionTransitions   *prometheus.CounterVec
	NotificationsDropped prometheus.Counter
	NotificationsFailed  prometheus.Counter
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BidsAdmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_bids_admitted_total",
			Help: "Total number of bids admitted",
		}),
		BidsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lostfound_bids_rejected_total",
			Help: "Total number of bids rejected, by reason",
		}, []string{"reason"}),
		BidAdmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lostfound_bid_admission_duration_seconds",
			Help:    "Duration of SubmitBid including time spent waiting for the auction lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		MatchesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_matches_created_total",
			Help: "Total number of candidate matches created",
		}),
		MatchReviews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lostfound_match_reviews_total",
			Help: "Total number of candidate match reviews, by outcome",
		}, []string{"outcome"}),
		CandidateGenDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lostfound_candidate_generation_duration_seconds",
			Help:    "Duration of one candidate generation run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		AuctionTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lostfound_auction_transitions_total",
			Help: "Total number of auction state transitions, by target state",
		}, []string{"to"}),
		NotificationsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_notifications_dropped_total",
			Help: "Notifications dropped because the dispatch queue was full",
		}),
		NotificationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_notifications_failed_total",
			Help: "Notifications the sink failed to deliver",
		}),
	}
}

// IncrementBidAdmitted records an admitted bid.
func (m *Metrics) IncrementBidAdmitted() {
	if m == nil {
		return
	}
	m.BidsAdmitted.Inc()
}

// IncrementBidRejected records a rejected bid with its reason label.
func (m *Metrics) IncrementBidRejected(reason string) {
	if m == nil {
		return
	}
	m.BidsRejected.WithLabelValues(reason).Inc()
}

// ObserveBidAdmission records the duration of a SubmitBid call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveBidAdmission(start time.Time) {
	if m == nil {
		return
	}
	m.BidAdmissionDuration.Observe(time.Since(start).Seconds())
}

// IncrementMatchesCreated records newly persisted candidate matches.
func (m *Metrics) IncrementMatchesCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MatchesCreated.Add(float64(n))
}

// IncrementMatchReview records a confirm or discard.
func (m *Metrics) IncrementMatchReview(outcome string) {
	if m == nil {
		return
	}
	m.MatchReviews.WithLabelValues(outcome).Inc()
}

// ObserveCandidateGeneration records the duration of a candidate generation run.
func (m *Metrics) ObserveCandidateGeneration(start time.Time) {
	if m == nil {
		return
	}
	m.CandidateGenDuration.Observe(time.Since(start).Seconds())
}

// IncrementAuctionTransition records an auction entering state to.
func (m *Metrics) IncrementAuctionTransition(to string) {
	if m == nil {
		return
	}
	m.AuctionTransitions.WithLabelValues(to).Inc()
}

// IncrementNotificationDropped records a notification lost to a full queue.
func (m *Metrics) IncrementNotificationDropped() {
	if m == nil {
		return
	}
	m.NotificationsDropped.Inc()
}

// IncrementNotificationFailed records a notification the sink rejected.
func (m *Metrics) IncrementNotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationsFailed.Inc()
}
