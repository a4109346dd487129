// Package plugin registers the project linters with golangci-lint's module
// plugin system (custom-gcl).
package plugin

import (
	"fmt"

	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/usekaneo/kaneo-sub002/tools/linters/enumvalidator"
)

func init() {
	register.Plugin("enumvalidator", New)
}

// Settings is the linters-settings.custom.enumvalidator.settings block.
type Settings struct {
	// ExtraTypes are further named string types to treat as enums.
	ExtraTypes []string `json:"extra-types"`
}

type enumPlugin struct {
	settings Settings
}

func New(conf any) (register.LinterPlugin, error) {
	settings, err := register.DecodeSettings[Settings](conf)
	if err != nil {
		return nil, fmt.Errorf("enumvalidator settings: %w", err)
	}
	return &enumPlugin{settings: settings}, nil
}

func (p *enumPlugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{enumvalidator.New(p.settings.ExtraTypes...)}, nil
}

// GetLoadMode asks for type information; enums are recognised by named type.
func (p *enumPlugin) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
