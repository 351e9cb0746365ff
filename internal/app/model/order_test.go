package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Next(t *testing.T) {
	assert.Equal(t, OrderStatusPreparing, OrderStatusAccepted.Next())
	assert.Equal(t, OrderStatusFindingCourier, OrderStatusPreparing.Next())
	assert.Equal(t, OrderStatusOutForDelivery, OrderStatusFindingCourier.Next())
	assert.Equal(t, OrderStatusDelivered, OrderStatusOutForDelivery.Next())

	// The final status never advances
	assert.Equal(t, OrderStatusDelivered, OrderStatusDelivered.Next())
}

func TestOrderStatus_IsFinal(t *testing.T) {
	for _, status := range StatusSequence() {
		if status == OrderStatusDelivered {
			assert.True(t, status.IsFinal())
		} else {
			assert.False(t, status.IsFinal(), "status %s should not be final", status)
		}
	}
}

func TestOrderStatus_Message(t *testing.T) {
	for _, status := range StatusSequence() {
		assert.NotEmpty(t, status.Message(), "status %s needs a customer-facing message", status)
	}
}

func TestStatusSequence_Immutable(t *testing.T) {
	seq := StatusSequence()
	seq[0] = OrderStatusDelivered

	assert.Equal(t, OrderStatusAccepted, StatusSequence()[0])
}
