package sim

import (
	"context"
	"fmt"

	"github.com/mrsinham/doctoroncall/internal/clinic"
)

// Run plays s to its ending with strategy. There is no clock: an idle
// plan spends the patient's whole allowed time at once. onReview, if not
// nil, is called after every patient.
func Run(ctx context.Context, s *clinic.Session, strategy Strategy, onReview func(clinic.Review)) (clinic.Ending, error) {
	for s.Phase() != clinic.PhaseEnded {
		if err := ctx.Err(); err != nil {
			return clinic.Ending{}, err
		}

		if s.Phase() == clinic.PhaseDayComplete {
			if err := s.ContinueDay(); err != nil {
				return clinic.Ending{}, fmt.Errorf("continue day: %w", err)
			}
			continue
		}

		r, err := play(s, strategy.Treat(s.Current()))
		if err != nil {
			return clinic.Ending{}, err
		}
		if onReview != nil {
			onReview(r)
		}
	}
	return s.Ending(), nil
}

func play(s *clinic.Session, plan Plan) (clinic.Review, error) {
	if plan.Idle {
		r, err := s.Elapse(s.Current().AllowedTime)
		if err != nil {
			return clinic.Review{}, fmt.Errorf("elapse: %w", err)
		}
		if r == nil {
			return clinic.Review{}, fmt.Errorf("patient %s did not time out", s.Current().Name)
		}
		return *r, nil
	}

	if err := s.SelectMedication(plan.Medication); err != nil {
		return clinic.Review{}, fmt.Errorf("select medication: %w", err)
	}
	if plan.Admit {
		if err := s.Admit(); err != nil {
			return clinic.Review{}, fmt.Errorf("admit: %w", err)
		}
	}
	r, err := s.FinishCare()
	if err != nil {
		return clinic.Review{}, fmt.Errorf("finish care: %w", err)
	}
	return r, nil
}
