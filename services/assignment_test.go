package services_test

import (
	"testing"

	"go-storefront/models"
	"go-storefront/services"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func deliveryMan(available bool, activeOrders int) models.User {
	orders := make([]primitive.ObjectID, activeOrders)
	for i := range orders {
		orders[i] = primitive.NewObjectID()
	}
	return models.User{
		ID:   primitive.NewObjectID(),
		Role: models.RoleDeliveryMan,
		DeliveryManInfo: &models.DeliveryManInfo{
			AvailableForDelivery: available,
			AssignedOrders:       orders,
		},
	}
}

func TestEligibleForAssignment(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want bool
	}{
		{"available with no orders", deliveryMan(true, 0), true},
		{"available just under the limit", deliveryMan(true, services.MaxActiveAssignments-1), true},
		{"available at the limit", deliveryMan(true, services.MaxActiveAssignments), false},
		{"available over the limit", deliveryMan(true, services.MaxActiveAssignments+2), false},
		{"unavailable with no orders", deliveryMan(false, 0), false},
		{"buyer role", models.User{Role: models.RoleBuyer}, false},
		{"deliveryman role without info block", models.User{Role: models.RoleDeliveryMan}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.EligibleForAssignment(tt.user))
		})
	}
}

func TestEligibleForAssignmentSelectsExactSubset(t *testing.T) {
	pool := []models.User{
		deliveryMan(true, 0),
		deliveryMan(true, 4),
		deliveryMan(true, 5),
		deliveryMan(false, 1),
		deliveryMan(true, 7),
		{ID: primitive.NewObjectID(), Role: models.RoleBuyer},
	}

	eligible := []models.User{}
	for _, u := range pool {
		if services.EligibleForAssignment(u) {
			eligible = append(eligible, u)
		}
	}

	assert.Len(t, eligible, 2)
	for _, u := range eligible {
		assert.Equal(t, models.RoleDeliveryMan, u.Role)
		assert.True(t, u.DeliveryManInfo.AvailableForDelivery)
		assert.Less(t, len(u.DeliveryManInfo.AssignedOrders), services.MaxActiveAssignments)
	}
}

func TestOrderIsUnassigned(t *testing.T) {
	unassigned := models.Order{ID: primitive.NewObjectID()}
	assert.True(t, unassigned.IsUnassigned())

	dm := primitive.NewObjectID()
	assigned := models.Order{ID: primitive.NewObjectID(), AssignedTo: &dm}
	assert.False(t, assigned.IsUnassigned())
}
