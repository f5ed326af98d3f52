package sensors

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/markusressel/ipmi2go/internal/ui"
)

var (
	// ErrSensorUnavailable is returned when the backend cannot enumerate any temperature sensor at all
	ErrSensorUnavailable = errors.New("no temperature sensors available")
	// ErrNoPackageSensorFound is returned when sensors were found, but none of them
	// provides a valid CPU package temperature
	ErrNoPackageSensorFound = errors.New("no CPU package temperature sensor found")
)

// Temperature is a single temperature input of a chip, in degrees celsius
type Temperature struct {
	Chip  string
	Label string
	Value float64
}

// Reading is the result of a single sampling call
type Reading struct {
	// Value is the maximum of all package temperatures
	Value float64
	// Detail contains all package temperatures, only populated when requested
	Detail []Temperature
}

// TemperatureSource provides the worst-case CPU package temperature
type TemperatureSource interface {
	Read(verbose bool) (Reading, error)
}

// Backend enumerates all temperature inputs of the system.
type Backend interface {
	// Scan passes a sequence of all temperature inputs to visit. The sequence is only
	// valid for the duration of the visit call. Per-entry errors are yielded alongside
	// the entry they belong to and do not end the sequence.
	Scan(visit func(temperatures iter.Seq2[Temperature, error]) error) error
}

// NewBackend creates the backend configured by the given config
func NewBackend(config configuration.SensorConfig) (Backend, error) {
	switch config.Backend {
	case configuration.SensorBackendLmSensors:
		return &LmSensorsBackend{}, nil
	case configuration.SensorBackendHwMon:
		return &HwMonBackend{Path: config.HwMonPath}, nil
	}
	return nil, fmt.Errorf("no matching sensor backend: %s", config.Backend)
}

// Matcher decides which chips and labels represent CPU package temperatures
type Matcher struct {
	chips  []string
	labels []string
}

func NewMatcher(chips []string, labels []string) Matcher {
	return Matcher{
		chips:  lowerAll(chips),
		labels: lowerAll(labels),
	}
}

func lowerAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.ToLower(v))
	}
	return result
}

func containsAny(value string, substrings []string) bool {
	value = strings.ToLower(value)
	for _, s := range substrings {
		if strings.Contains(value, s) {
			return true
		}
	}
	return false
}

// IsPackageSensor reports whether the chip with the given name provides CPU package sensors
func (m Matcher) IsPackageSensor(chip string) bool {
	return containsAny(chip, m.chips)
}

// IsPackageTemperatureLabel reports whether the given label is a package temperature
func (m Matcher) IsPackageTemperatureLabel(label string) bool {
	return containsAny(label, m.labels)
}

// IsPackageTemperature combines IsPackageSensor and IsPackageTemperatureLabel
func (m Matcher) IsPackageTemperature(t Temperature) bool {
	return m.IsPackageSensor(t.Chip) && m.IsPackageTemperatureLabel(t.Label)
}

// PackageTemperatures filters the given sequence down to package temperatures.
// Errors are passed through untouched.
func (m Matcher) PackageTemperatures(temperatures iter.Seq2[Temperature, error]) iter.Seq2[Temperature, error] {
	return func(yield func(Temperature, error) bool) {
		for t, err := range temperatures {
			if err == nil && !m.IsPackageTemperature(t) {
				continue
			}
			if !yield(t, err) {
				return
			}
		}
	}
}

// MaxTemperature folds the given sequence into a Reading holding the maximum value.
// Entries with errors or non-finite values are skipped. If no entry raises the
// maximum above zero ErrNoPackageSensorFound is returned, a zero reading is never valid.
func MaxTemperature(temperatures iter.Seq2[Temperature, error], verbose bool) (Reading, error) {
	reading := Reading{}
	for t, err := range temperatures {
		if err != nil {
			ui.Debug("Skipping sensor %s %s: %v", t.Chip, t.Label, err)
			continue
		}
		if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
			ui.Debug("Skipping sensor %s %s: invalid value %v", t.Chip, t.Label, t.Value)
			continue
		}
		if verbose {
			reading.Detail = append(reading.Detail, t)
		}
		reading.Value = math.Max(reading.Value, t.Value)
	}

	if reading.Value <= 0 {
		return reading, ErrNoPackageSensorFound
	}
	return reading, nil
}

// counted passes all entries of the given sequence through, counting them in count
func counted(temperatures iter.Seq2[Temperature, error], count *int) iter.Seq2[Temperature, error] {
	return func(yield func(Temperature, error) bool) {
		for t, err := range temperatures {
			*count++
			if !yield(t, err) {
				return
			}
		}
	}
}

type packageTemperatureSource struct {
	backend Backend
	matcher Matcher
}

// NewTemperatureSource creates a TemperatureSource reporting the maximum of all
// package temperatures found by backend.
func NewTemperatureSource(backend Backend, matcher Matcher) TemperatureSource {
	return &packageTemperatureSource{
		backend: backend,
		matcher: matcher,
	}
}

func (s *packageTemperatureSource) Read(verbose bool) (Reading, error) {
	var reading Reading
	var readErr error
	found := 0

	err := s.backend.Scan(func(temperatures iter.Seq2[Temperature, error]) error {
		packages := s.matcher.PackageTemperatures(counted(temperatures, &found))
		reading, readErr = MaxTemperature(packages, verbose)
		return nil
	})
	if err != nil {
		return Reading{}, err
	}
	if found <= 0 {
		return Reading{}, ErrSensorUnavailable
	}
	return reading, readErr
}

// ListTemperatures collects all temperature inputs of the given backend,
// skipping (and logging) entries that could not be read.
func ListTemperatures(backend Backend) ([]Temperature, error) {
	var result []Temperature
	err := backend.Scan(func(temperatures iter.Seq2[Temperature, error]) error {
		for t, err := range temperatures {
			if err != nil {
				ui.Warning("Unable to read sensor %s %s: %v", t.Chip, t.Label, err)
				continue
			}
			result = append(result, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(result) <= 0 {
		return nil, ErrSensorUnavailable
	}
	return result, nil
}

// NewConfiguredTemperatureSource creates the TemperatureSource described by the given config
func NewConfiguredTemperatureSource(config configuration.SensorConfig) (TemperatureSource, error) {
	backend, err := NewBackend(config)
	if err != nil {
		return nil, err
	}
	return NewTemperatureSource(backend, NewMatcher(config.Chips, config.Labels)), nil
}
