package sensors

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/markusressel/ipmi2go/internal/util"
)

var tempInputRegex = regexp.MustCompile(`^temp(\d+)_input$`)

// HwMonBackend enumerates temperatures by reading the sysfs hwmon interface
// directly, which works without libsensors being installed.
type HwMonBackend struct {
	// Path is the hwmon class directory, usually /sys/class/hwmon
	Path string
}

func (b *HwMonBackend) Scan(visit func(temperatures iter.Seq2[Temperature, error]) error) error {
	entries, err := os.ReadDir(b.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSensorUnavailable, err)
	}

	var devices []string
	for _, entry := range entries {
		devices = append(devices, filepath.Join(b.Path, entry.Name()))
	}

	return visit(hwMonTemperatures(devices))
}

func hwMonTemperatures(devices []string) iter.Seq2[Temperature, error] {
	return func(yield func(Temperature, error) bool) {
		for _, device := range devices {
			name, err := util.ReadStringFromFile(filepath.Join(device, "name"))
			chip := fmt.Sprintf("%s-%s", name, filepath.Base(device))
			if err != nil {
				if !yield(Temperature{Chip: filepath.Base(device)}, err) {
					return
				}
				continue
			}

			for _, index := range findTempInputs(device) {
				t := Temperature{
					Chip:  chip,
					Label: getLabel(device, index),
				}
				milliDegrees, err := util.ReadIntFromFile(filepath.Join(device, fmt.Sprintf("temp%d_input", index)))
				if err == nil {
					t.Value = float64(milliDegrees) / 1000
				}
				if !yield(t, err) {
					return
				}
			}
		}
	}
}

// findTempInputs returns the sorted indices of all temp*_input files of a device
func findTempInputs(device string) []int {
	entries, err := os.ReadDir(device)
	if err != nil {
		return nil
	}

	var result []int
	for _, entry := range entries {
		match := tempInputRegex.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		result = append(result, index)
	}
	sort.Ints(result)
	return result
}

// getLabel reads the label of a temperature input, falling back to its file name
func getLabel(device string, index int) string {
	label, err := util.ReadStringFromFile(filepath.Join(device, fmt.Sprintf("temp%d_label", index)))
	if err != nil || len(strings.TrimSpace(label)) <= 0 {
		return fmt.Sprintf("temp%d", index)
	}
	return label
}
