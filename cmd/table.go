package cmd

import (
	"bytes"

	"github.com/markusressel/ipmi2go/cmd/global"
	"github.com/markusressel/ipmi2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

func tableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}

func renderTable(t table.Table) (string, error) {
	var buf bytes.Buffer
	if err := t.WriteTable(&buf, tableConfig()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// printTable renders t to console. Cell values are printed verbatim.
func printTable(t table.Table) error {
	tableString, err := renderTable(t)
	if err != nil {
		return err
	}
	ui.Printfln("%s", tableString)
	return nil
}
