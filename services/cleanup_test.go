package services_test

import (
	"testing"
	"time"

	"go-storefront/models"
	"go-storefront/services"

	"github.com/stretchr/testify/assert"
)

func TestPurgeEligible(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name          string
		returnRequest string
		scheduledDate time.Time
		want          bool
	}{
		{"approved return past schedule", models.ReturnApproved, past, true},
		{"rejected return past schedule", models.ReturnRejected, past, true},
		{"completed return past schedule", models.ReturnCompleted, past, true},
		{"approved return future schedule", models.ReturnApproved, future, false},
		{"pending return past schedule", models.ReturnPending, past, false},
		{"no return past schedule", models.ReturnNone, past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := models.Order{
				ReturnRequest: tt.returnRequest,
				ScheduledDate: tt.scheduledDate,
			}
			assert.Equal(t, tt.want, services.PurgeEligible(order, now))
		})
	}
}

func TestTerminalReturnStatesExcludePending(t *testing.T) {
	assert.NotContains(t, services.TerminalReturnStates, models.ReturnPending)
	assert.NotContains(t, services.TerminalReturnStates, models.ReturnNone)
}
