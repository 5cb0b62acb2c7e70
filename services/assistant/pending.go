package assistant

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"schedulit/models"

	"github.com/go-redis/redis/v8"
)

const pendingPrefix = "pend:"

// PendingStore keeps at most one pending disambiguation per user.
type PendingStore interface {
	Get(ctx context.Context, userID string) (*models.PendingDisambiguation, error)
	Set(ctx context.Context, userID string, p *models.PendingDisambiguation) error
	Clear(ctx context.Context, userID string) error
}

// RedisPendingStore implements PendingStore with a TTL so abandoned
// choices expire on their own.
type RedisPendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPendingStore(client *redis.Client, ttl time.Duration) *RedisPendingStore {
	return &RedisPendingStore{client: client, ttl: ttl}
}

func (s *RedisPendingStore) Get(ctx context.Context, userID string) (*models.PendingDisambiguation, error) {
	data, err := s.client.Get(ctx, pendingPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p models.PendingDisambiguation
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisPendingStore) Set(ctx context.Context, userID string, p *models.PendingDisambiguation) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, pendingPrefix+userID, b, s.ttl).Err()
}

func (s *RedisPendingStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, pendingPrefix+userID).Err()
}

// Resolution is the outcome of feeding a reply to a pending disambiguation.
type Resolution int

const (
	// ResolutionNotPending means no choice was waiting for this user.
	ResolutionNotPending Resolution = iota
	// ResolutionSelected means the reply picked one candidate.
	ResolutionSelected
	// ResolutionCancelled means the reply was not a valid selection; the
	// pending state is discarded and the reply is a fresh command.
	ResolutionCancelled
)

// Disambiguator runs the one-round clarification flow for ambiguous
// delete/move commands.
type Disambiguator struct {
	Store PendingStore
}

// Begin stores the candidate set for the user, replacing any earlier one.
// Callers only begin with two or more candidates.
func (d *Disambiguator) Begin(ctx context.Context, userID string, intent models.Intent, candidates []models.CandidateEvent) error {
	return d.Store.Set(ctx, userID, &models.PendingDisambiguation{
		Action:     intent.Action,
		Intent:     intent,
		Candidates: candidates,
		CreatedAt:  time.Now(),
	})
}

// Matches "1", "option 2", "2nd" and the like.
var selectionRe = regexp.MustCompile(`^(?:option\s+)?([0-9]+)(?:st|nd|rd|th)?$`)

// Resume consumes the pending state. A reply naming an in-range candidate
// returns it; any other reply cancels. Selection and cancellation both clear
// the stored state, keeping this a single-round flow.
func (d *Disambiguator) Resume(ctx context.Context, userID, reply string) (Resolution, *models.PendingDisambiguation, *models.CandidateEvent, error) {
	pending, err := d.Store.Get(ctx, userID)
	if err != nil {
		return ResolutionNotPending, nil, nil, err
	}
	if pending == nil {
		return ResolutionNotPending, nil, nil, nil
	}

	if err := d.Store.Clear(ctx, userID); err != nil {
		return ResolutionNotPending, nil, nil, err
	}

	m := selectionRe.FindStringSubmatch(normalizeReply(reply))
	if m == nil {
		return ResolutionCancelled, pending, nil, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > len(pending.Candidates) {
		// An out-of-range number is a cancellation, not a crash.
		return ResolutionCancelled, pending, nil, nil
	}

	selected := pending.Candidates[n-1]
	return ResolutionSelected, pending, &selected, nil
}

func normalizeReply(reply string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(reply), ".!"))
}
