package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"skillcert/backend/models"
)

// Sampler draws the question set for one quiz session: SessionSize distinct
// questions picked uniformly at random from the role's pool, in draw order.
// Each session is an independent draw; no ordering is promised beyond "each
// question appears at most once".
type Sampler struct {
	bank QuestionBank
	mu   sync.Mutex
	rng  *rand.Rand
}

func NewSampler(bank QuestionBank) *Sampler {
	return &Sampler{
		bank: bank,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Sampler) Sample(role string) ([]models.Question, error) {
	pool, err := s.bank.PoolByRole(role)
	if err != nil {
		return nil, err
	}

	if len(pool) < SessionSize {
		return nil, fmt.Errorf("%w for %s: need at least %d, have %d",
			ErrInsufficientPool, role, SessionSize, len(pool))
	}

	// rand.Rand is not safe for concurrent use.
	s.mu.Lock()
	perm := s.rng.Perm(len(pool))
	s.mu.Unlock()

	selected := make([]models.Question, 0, SessionSize)
	for _, idx := range perm[:SessionSize] {
		selected = append(selected, pool[idx])
	}
	return selected, nil
}
