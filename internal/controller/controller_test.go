package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-records/internal/calculator"
	"github.com/ukydev/fleet-records/internal/editor"
	"github.com/ukydev/fleet-records/internal/factory"
	"github.com/ukydev/fleet-records/internal/models"
)

// MockPrompter is a mock implementation of Prompter
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) EditVehicle(session *editor.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockPrompter) Confirm(title string) (bool, error) {
	args := m.Called(title)
	return args.Bool(0), args.Error(1)
}

// enter returns a Run hook that types values into the session and submits it.
func enter(variant models.Variant, values map[string]string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		s := args.Get(0).(*editor.Session)
		if err := s.SelectVariant(variant); err != nil {
			panic(err)
		}
		for k, v := range values {
			if err := s.Set(k, v); err != nil {
				panic(err)
			}
		}
		if _, err := s.Submit(); err != nil {
			panic(err)
		}
	}
}

func cancel(args mock.Arguments) {
	_ = args.Get(0).(*editor.Session).Cancel()
}

var golfInput = map[string]string{
	editor.KeyBrand:          "VW",
	editor.KeyModel:          "Golf",
	editor.KeyBasePrice:      "15000",
	editor.KeyCurbWeight:     "1200",
	editor.KeyEngineCapacity: "1.6",
	editor.KeyFuelType:       "Petrol",
	editor.KeyEmissionClass:  "Euro 5",
}

func newController(p Prompter, vehicles ...models.Vehicle) *Controller {
	fleet := models.NewFleet("Training Fleet")
	for _, v := range vehicles {
		fleet.Add(v)
	}
	return New(models.NewOrganization("Training Division", fleet), p)
}

func TestController_EmptyFleetSummary(t *testing.T) {
	c := newController(new(MockPrompter))
	assert.Equal(t,
		"Total: 0 | ICE: 0 | EV: 0 | Hybrid: 0 | Price sum: 0 | Avg price: 0 | Weight sum: 0.0 kg | Avg weight: 0.0 kg",
		c.SummaryText())
	assert.Empty(t, c.DisplayRows())
}

func TestController_Add(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p)

	var published []calculator.Summary
	c.OnSummary(func(s calculator.Summary) { published = append(published, s) })

	p.On("EditVehicle", mock.AnythingOfType("*editor.Session")).Run(enter(models.VariantICE, golfInput)).Return(nil).Once()
	changed, err := c.Add()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t,
		"Total: 1 | ICE: 1 | EV: 0 | Hybrid: 0 | Price sum: 15000 | Avg price: 15000 | Weight sum: 1200.0 kg | Avg weight: 1200.0 kg",
		c.SummaryText())

	p.On("EditVehicle", mock.AnythingOfType("*editor.Session")).Run(enter(models.VariantElectric, map[string]string{
		editor.KeyBrand:      "Tesla",
		editor.KeyModel:      "Model 3",
		editor.KeyBasePrice:  "35000",
		editor.KeyCurbWeight: "1700",
	})).Return(nil).Once()
	changed, err = c.Add()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t,
		"Total: 2 | ICE: 1 | EV: 1 | Hybrid: 0 | Price sum: 50000 | Avg price: 25000 | Weight sum: 2900.0 kg | Avg weight: 1450.0 kg",
		c.SummaryText())

	require.Len(t, published, 2)
	assert.Equal(t, c.Summary(), published[1])
	p.AssertExpectations(t)
}

func TestController_AddRoundTripThroughDisplayRows(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p)

	p.On("EditVehicle", mock.Anything).Run(enter(models.VariantICE, golfInput)).Return(nil).Once()
	p.On("EditVehicle", mock.Anything).Run(enter(models.VariantElectric, map[string]string{
		editor.KeyBrand: "Tesla", editor.KeyModel: "Model 3", editor.KeyBasePrice: "35000.5",
		editor.KeyCurbWeight: "1700.25", editor.KeyMaxRangeKm: "420", editor.KeyFastCharge: "0",
	})).Return(nil).Once()
	p.On("EditVehicle", mock.Anything).Run(enter(models.VariantHybrid, map[string]string{
		editor.KeyBrand: "Toyota", editor.KeyModel: "Prius", editor.KeyBasePrice: "28000",
		editor.KeyCurbWeight: "1380", editor.KeyEngineCapacity: "1.8", editor.KeyBatteryCapacity: "8.8",
	})).Return(nil).Once()

	for i := 0; i < 3; i++ {
		_, err := c.Add()
		require.NoError(t, err)
	}

	assert.Equal(t, []DisplayRow{
		{Type: "ICE", Brand: "VW", Model: "Golf", BasePrice: 15000, CurbWeight: 1200, Extra: "1.6 L, Petrol, Euro 5"},
		{Type: "EV", Brand: "Tesla", Model: "Model 3", BasePrice: 35000.5, CurbWeight: 1700.25, Extra: "420 km, No Fast"},
		{Type: "Hybrid", Brand: "Toyota", Model: "Prius", BasePrice: 28000, CurbWeight: 1380, Extra: "ICE 1.8 L, Bat 8.8 kWh"},
	}, c.DisplayRows())
}

func TestController_AddRejected(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p)
	called := false
	c.OnSummary(func(calculator.Summary) { called = true })

	p.On("EditVehicle", mock.Anything).Run(cancel).Return(nil)
	changed, err := c.Add()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, c.Organization().Fleet.Len())
	assert.False(t, called)
}

func TestController_AddPrompterLeavesSessionOpen(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p)

	var session *editor.Session
	p.On("EditVehicle", mock.Anything).Run(func(args mock.Arguments) {
		session = args.Get(0).(*editor.Session)
	}).Return(nil)

	changed, err := c.Add()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, editor.Rejected, session.State())
}

func TestController_AddPrompterError(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p)

	p.On("EditVehicle", mock.Anything).Return(errors.New("no terminal"))
	changed, err := c.Add()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no terminal")
	assert.False(t, changed)
	assert.Equal(t, 0, c.Organization().Fleet.Len())
}

func TestController_Edit(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p, factory.CreateSeedICE(), factory.CreateSeedElectric())

	var prefilled []editor.Field
	p.On("EditVehicle", mock.Anything).Run(func(args mock.Arguments) {
		s := args.Get(0).(*editor.Session)
		prefilled = s.Fields()
		enter(models.VariantHybrid, map[string]string{editor.KeyBatteryCapacity: "13"})(args)
	}).Return(nil)

	changed, err := c.Edit(1)
	require.NoError(t, err)
	assert.True(t, changed)

	// session was pre-populated from the selected vehicle
	require.NotEmpty(t, prefilled)
	assert.Equal(t, "Tesla", prefilled[0].Value)

	items := c.Organization().Fleet.Items()
	require.Len(t, items, 2)
	assert.Equal(t, factory.CreateSeedICE(), items[0])
	assert.Equal(t, models.HybridVehicle{
		Base:            factory.CreateSeedElectric().Base,
		BatteryCapacity: 13,
	}, items[1])
	assert.Contains(t, c.SummaryText(), "ICE: 1 | EV: 0 | Hybrid: 1")
}

func TestController_EditRejectedLeavesFleet(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p, factory.CreateSeedICE())
	p.On("EditVehicle", mock.Anything).Run(cancel).Return(nil)

	changed, err := c.Edit(0)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []models.Vehicle{factory.CreateSeedICE()}, c.Organization().Fleet.Items())
}

func TestController_SelectionRequired(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p, factory.CreateSeedICE())

	for name, op := range map[string]func(int) (bool, error){
		"edit":   c.Edit,
		"delete": c.Delete,
	} {
		t.Run(name, func(t *testing.T) {
			changed, err := op(NoSelection)
			assert.False(t, changed)

			var selErr *SelectionRequiredError
			require.True(t, errors.As(err, &selErr))
			assert.Equal(t, name, selErr.Action)
			assert.Contains(t, err.Error(), "nothing selected")
			assert.Equal(t, 1, c.Organization().Fleet.Len())
		})
	}
	p.AssertNotCalled(t, "EditVehicle", mock.Anything)
	p.AssertNotCalled(t, "Confirm", mock.Anything)
}

func TestController_IndexOutOfRange(t *testing.T) {
	p := new(MockPrompter)
	c := newController(p, factory.CreateSeedICE())

	_, err := c.Edit(1)
	assert.ErrorIs(t, err, models.ErrIndexOutOfRange)
	_, err = c.Delete(5)
	assert.ErrorIs(t, err, models.ErrIndexOutOfRange)

	p.AssertNotCalled(t, "EditVehicle", mock.Anything)
	p.AssertNotCalled(t, "Confirm", mock.Anything)
}

func TestController_Delete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		p := new(MockPrompter)
		c := newController(p, factory.CreateSeedICE(), factory.CreateSeedElectric())
		published := 0
		c.OnSummary(func(calculator.Summary) { published++ })

		p.On("Confirm", DeleteConfirmation).Return(true, nil)
		changed, err := c.Delete(0)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []models.Vehicle{factory.CreateSeedElectric()}, c.Organization().Fleet.Items())
		assert.Equal(t, 1, published)
		assert.Contains(t, c.SummaryText(), "Total: 1 | ICE: 0 | EV: 1")
	})

	t.Run("declined", func(t *testing.T) {
		p := new(MockPrompter)
		c := newController(p, factory.CreateSeedICE())
		p.On("Confirm", DeleteConfirmation).Return(false, nil)

		changed, err := c.Delete(0)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 1, c.Organization().Fleet.Len())
	})

	t.Run("confirm error", func(t *testing.T) {
		p := new(MockPrompter)
		c := newController(p, factory.CreateSeedICE())
		p.On("Confirm", DeleteConfirmation).Return(false, assert.AnError)

		changed, err := c.Delete(0)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, changed)
		assert.Equal(t, 1, c.Organization().Fleet.Len())
	})
}
