package config

import (
	"fmt"

	"github.com/Veraticus/finpilot/internal/classification"
	"github.com/Veraticus/finpilot/internal/common"
	"github.com/spf13/viper"
)

// LoadImportRules returns the categorization rules for imports: any rules
// under import.rules followed by the built-in ones.
//
//	import:
//	  rules:
//	    - name: Climbing gym
//	      category: Health
//	      pattern: '\bMOVEMENT\b'
//	      priority: 110
func LoadImportRules(v *viper.Viper) ([]classification.Rule, error) {
	var custom []classification.Rule
	if err := v.UnmarshalKey("import.rules", &custom); err != nil {
		return nil, fmt.Errorf("%w: import.rules: %w", common.ErrInvalidConfig, err)
	}
	return append(custom, classification.DefaultRules()...), nil
}
