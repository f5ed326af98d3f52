package sensors

import (
	"errors"
	"fmt"
	"iter"

	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

// LmSensorsBackend enumerates temperatures using libsensors
type LmSensorsBackend struct{}

func (b *LmSensorsBackend) Scan(visit func(temperatures iter.Seq2[Temperature, error]) error) error {
	gosensors.Init()
	defer gosensors.Cleanup()

	chips := gosensors.GetDetectedChips()
	return visit(lmSensorsTemperatures(chips))
}

func lmSensorsTemperatures(chips []gosensors.Chip) iter.Seq2[Temperature, error] {
	return func(yield func(Temperature, error) bool) {
		for _, chip := range chips {
			name := computeIdentifier(chip)
			for _, feature := range chip.GetFeatures() {
				if feature.Type != gosensors.FeatureTypeTemp {
					continue
				}

				t := Temperature{
					Chip:  name,
					Label: feature.GetLabel(),
				}
				input, err := findSubFeature(feature.GetSubFeatures(), gosensors.SubFeatureTypeTempInput)
				if err == nil {
					t.Value = input.GetValue()
				}
				if !yield(t, err) {
					return
				}
			}
		}
	}
}

func findSubFeature(subfeatures []gosensors.SubFeature, subFeatureType gosensors.SubFeatureType) (gosensors.SubFeature, error) {
	for _, s := range subfeatures {
		if s.Type == subFeatureType {
			return s, nil
		}
	}
	return gosensors.SubFeature{}, errors.New("missing temperature input")
}

// computeIdentifier builds the chip name the same way the "sensors" command does
func computeIdentifier(chip gosensors.Chip) string {
	var bus string
	switch chip.Bus.Type {
	case BusTypeIsa:
		bus = "isa"
	case BusTypePci:
		bus = "pci"
	case BusTypeAcpi:
		bus = "acpi"
	default:
		return chip.Prefix
	}
	return fmt.Sprintf("%s-%s-%04x", chip.Prefix, bus, chip.Addr)
}
