package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	statusID := kernel.NewUUID()

	t.Run("should create a valid command", func(t *testing.T) {
		cmd, err := commands.NewTransitionOrderCommand(orderID, statusID, "note", "admin", nil)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.StatusID().IsEqual(statusID))
		assert.Equal(t, "note", cmd.Notes())
		assert.Equal(t, "admin", cmd.Actor())
		assert.Nil(t, cmd.EmployeeID())
	})

	t.Run("should carry the acting employee when set", func(t *testing.T) {
		employeeID := kernel.NewUUID()

		cmd, err := commands.NewTransitionOrderCommand(orderID, statusID, "", employeeID.String(), &employeeID)

		require.NoError(t, err)
		require.NotNil(t, cmd.EmployeeID())
		assert.True(t, cmd.EmployeeID().IsEqual(employeeID))
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewTransitionOrderCommand(invalid, statusID, "", "admin", nil)

		require.Error(t, err)
	})

	t.Run("should fail with invalid status id", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewTransitionOrderCommand(orderID, invalid, "", "admin", nil)

		require.Error(t, err)
	})

	t.Run("should fail with empty actor", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(orderID, statusID, "", "", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("should fail validation for zero value command", func(t *testing.T) {
		var cmd commands.TransitionOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}
