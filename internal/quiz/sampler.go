package quiz

import (
	"math/rand"

	"github.com/rmarques/quizdesk/internal/models"
)

// Sampler draws a blended, shuffled selection from the two question pools.
// The random source is injected so runs can be reproduced in tests.
type Sampler struct {
	rng   *rand.Rand
	ratio float64
}

func NewSampler(rng *rand.Rand, ratio float64) *Sampler {
	return &Sampler{rng: rng, ratio: ratio}
}

// Select shuffles each pool, takes floor(total*ratio) questions from the
// specific pool and the remainder from the general pool, then shuffles the
// combined sequence. A pool smaller than its quota contributes what it has;
// the shortfall is NOT redistributed to the other pool, so the result may
// be shorter than total. Input slices are never mutated.
func (s *Sampler) Select(specific, general []models.Question, total int) []models.Question {
	if total <= 0 {
		return nil
	}

	sp := s.shuffled(specific)
	ge := s.shuffled(general)

	numSpecific := int(float64(total) * s.ratio)
	numGeneral := total - numSpecific
	if numSpecific > len(sp) {
		numSpecific = len(sp)
	}
	if numGeneral > len(ge) {
		numGeneral = len(ge)
	}

	selected := make([]models.Question, 0, numSpecific+numGeneral)
	selected = append(selected, sp[:numSpecific]...)
	selected = append(selected, ge[:numGeneral]...)
	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

func (s *Sampler) shuffled(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	copy(out, questions)
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
