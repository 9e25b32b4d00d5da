// Package testutil provides shared fixtures and stubs for tests.
package testutil

import (
	"testing"

	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

// NewTestPlayer creates a level-1 Cruzados character, failing the test
// on constructor errors.
func NewTestPlayer(t testing.TB, name string) *model.Player {
	t.Helper()
	p, err := model.NewPlayer(name, "Cruzados")
	if err != nil {
		t.Fatalf("creating test player %q: %v", name, err)
	}
	return p
}

// StubPayment implements the payment interface with a fixed answer,
// recording every charge.
type StubPayment struct {
	Accept  bool
	Charges []float64
}

// Charge records the amount and returns the configured answer.
func (s *StubPayment) Charge(usd float64) bool {
	s.Charges = append(s.Charges, usd)
	return s.Accept
}

// StubAdProvider implements the ad provider interface with a fixed
// completion answer, counting impressions.
type StubAdProvider struct {
	Complete bool
	Shown    int
}

// ShowRewarded counts the impression and returns the configured answer.
func (s *StubAdProvider) ShowRewarded() bool {
	s.Shown++
	return s.Complete
}
