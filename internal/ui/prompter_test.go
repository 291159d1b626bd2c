package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-records/internal/editor"
	"github.com/ukydev/fleet-records/internal/factory"
	"github.com/ukydev/fleet-records/internal/models"
)

func answers(pairs map[string]string) map[string][]string {
	out := make(map[string][]string, len(pairs))
	for k, v := range pairs {
		out[k] = []string{v}
	}
	return out
}

func TestFormPrompter_EditVehicle_Accepts(t *testing.T) {
	ui := &scriptedUI{
		selects: []string{"EV"},
		inputs: answers(map[string]string{
			"Brand":             "Nissan",
			"Model":             "Leaf",
			"Price":             "28000",
			"Curb weight (kg)":  "1500",
			"Max range (km)":    "270",
			"Fast charge (0/1)": "yes",
		}),
	}
	s := editor.NewSession(nil)

	require.NoError(t, NewFormPrompter(ui).EditVehicle(s))

	assert.Equal(t, editor.Accepted, s.State())
	v, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, models.ElectricVehicle{
		Base:              models.Base{Brand: "Nissan", Model: "Leaf", BasePrice: 28000, CurbWeight: 1500},
		MaxRangeKm:        270,
		FastChargeSupport: true,
	}, v)
}

func TestFormPrompter_EditVehicle_KeepsPrefilledValues(t *testing.T) {
	ui := &scriptedUI{
		selects: []string{"ICE"},
		inputs:  answers(map[string]string{"Price": "14000"}),
	}
	s := editor.NewSession(factory.CreateSeedICE())

	require.NoError(t, NewFormPrompter(ui).EditVehicle(s))

	v, ok := s.Result()
	require.True(t, ok)
	want := factory.CreateSeedICE()
	want.BasePrice = 14000
	assert.Equal(t, want, v)
}

func TestFormPrompter_EditVehicle_RetriesInvalidInput(t *testing.T) {
	ui := &scriptedUI{
		selects: []string{"Hybrid", "Hybrid"},
		inputs: map[string][]string{
			"Brand":                  {"Toyota"},
			"Model":                  {"Prius"},
			"Price":                  {"abc", "30000"},
			"Curb weight (kg)":       {"1400"},
			"Engine capacity (L)":    {"1.8"},
			"Battery capacity (kWh)": {"1.3"},
		},
	}
	s := editor.NewSession(nil)

	require.NoError(t, NewFormPrompter(ui).EditVehicle(s))

	require.Len(t, ui.notes, 1)
	assert.Contains(t, ui.notes[0], "Invalid input")
	assert.Contains(t, ui.notes[0], editor.KeyBasePrice)

	v, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, models.HybridVehicle{
		Base:            models.Base{Brand: "Toyota", Model: "Prius", BasePrice: 30000, CurbWeight: 1400},
		EngineCapacity:  1.8,
		BatteryCapacity: 1.3,
	}, v)
}

func TestFormPrompter_EditVehicle_AbortCancels(t *testing.T) {
	ui := &scriptedUI{}
	s := editor.NewSession(nil)

	require.NoError(t, NewFormPrompter(ui).EditVehicle(s))

	assert.Equal(t, editor.Rejected, s.State())
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestFormPrompter_EditVehicle_PropagatesUIErrors(t *testing.T) {
	ui := &scriptedUI{err: ErrNotInteractive}
	s := editor.NewSession(nil)

	err := NewFormPrompter(ui).EditVehicle(s)
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.False(t, s.State().Terminal())
}

func TestFormPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		ui      *scriptedUI
		want    bool
		wantErr error
	}{
		{"yes", &scriptedUI{confirms: []bool{true}}, true, nil},
		{"no", &scriptedUI{confirms: []bool{false}}, false, nil},
		{"aborted", &scriptedUI{}, false, nil},
		{"failure", &scriptedUI{err: errors.New("tty gone")}, false, errors.New("tty gone")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFormPrompter(tt.ui).Confirm("Delete the selected vehicle?")
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
