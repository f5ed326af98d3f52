package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/configuration"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/tomlazar/table"
)

func capturePlainOutput(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	pterm.SetDefaultOutput(&buf)
	pterm.DisableStyling()
	global.NoColor = true
	t.Cleanup(func() {
		pterm.SetDefaultOutput(os.Stdout)
		global.NoColor = false
	})
	return &buf
}

func TestPrintTableKeepsPercentSigns(t *testing.T) {
	// GIVEN
	output := capturePlainOutput(t)

	// WHEN
	err := printTable(table.Table{
		Headers: []string{"Temperature (°C)", "Duty (%)"},
		Rows:    [][]string{{"65.0", "10"}},
	})

	// THEN
	assert.NoError(t, err)
	assert.Contains(t, output.String(), "Duty (%)")
	assert.Contains(t, output.String(), "65.0")
	assert.NotContains(t, output.String(), "%!")
}

func TestPrintCurve(t *testing.T) {
	// GIVEN
	output := capturePlainOutput(t)
	config := configuration.DefaultConfiguration().Curve

	// WHEN
	err := printCurve(config, 5)

	// THEN
	assert.NoError(t, err)
	text := output.String()
	assert.NotContains(t, text, "%!")
	assert.Contains(t, text, "Temperature (°C)")
	assert.Contains(t, text, "Duty (%)")
	assert.Contains(t, text, "Duty (%) / Temperature from 30°C to 100°C")
	// 65°C on the default curve
	assert.Regexp(t, `65\.0\s+10\b`, text)
}
