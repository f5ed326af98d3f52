package internal

import (
	"context"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/ipmi2go/internal/sensors"
	"github.com/markusressel/ipmi2go/internal/util"
)

// TemperatureStats summarizes the values of a TemperatureMonitor window
type TemperatureStats struct {
	Current float64
	Min     float64
	Avg     float64
	Max     float64
	// Samples is the total number of samples taken so far
	Samples int
}

// TemperatureMonitor samples a TemperatureSource periodically and keeps
// the most recent values in a rolling window.
type TemperatureMonitor struct {
	source      sensors.TemperatureSource
	pollingRate time.Duration
	windowSize  int
	window      *rolling.PointPolicy
	samples     int
}

func NewTemperatureMonitor(source sensors.TemperatureSource, pollingRate time.Duration, windowSize int) *TemperatureMonitor {
	return &TemperatureMonitor{
		source:      source,
		pollingRate: pollingRate,
		windowSize:  windowSize,
		window:      util.CreateRollingWindow(windowSize),
	}
}

// Run samples immediately and then once per polling interval until ctx is cancelled
// or reading the temperature fails.
func (m *TemperatureMonitor) Run(ctx context.Context, onSample func(stats TemperatureStats)) error {
	tick := time.NewTicker(m.pollingRate)
	defer tick.Stop()
	for {
		stats, err := m.Sample()
		if err != nil {
			return err
		}
		onSample(stats)

		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}

// Sample reads the temperature once and appends it to the window
func (m *TemperatureMonitor) Sample() (TemperatureStats, error) {
	reading, err := m.source.Read(false)
	if err != nil {
		return TemperatureStats{}, err
	}

	if m.samples == 0 {
		// initialize the window with the first value, so the stats are meaningful right away
		util.FillWindow(m.window, m.windowSize, reading.Value)
	} else {
		m.window.Append(reading.Value)
	}
	m.samples++

	return TemperatureStats{
		Current: reading.Value,
		Min:     util.GetWindowMin(m.window),
		Avg:     util.GetWindowAvg(m.window),
		Max:     util.GetWindowMax(m.window),
		Samples: m.samples,
	}, nil
}
