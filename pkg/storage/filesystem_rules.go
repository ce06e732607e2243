package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/lexguard/lexguard/pkg/domain/compliance"
)

// ruleSchemaJSON validates external rule files before they reach the
// registry, so malformed definitions fail at load with a path to the
// offending field instead of surfacing as odd evaluation behavior.
const ruleSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["rules"],
  "properties": {
    "rules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "category", "severity", "validation_logic"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "name": { "type": "string", "minLength": 1 },
          "description": { "type": "string" },
          "category": { "type": "string" },
          "jurisdiction": { "type": "string" },
          "regulation": { "type": "string" },
          "severity": { "enum": ["critical", "high", "medium", "low"] },
          "keywords": { "type": "array", "items": { "type": "string" } },
          "patterns": { "type": "array", "items": { "type": "string" } },
          "validation_logic": {
            "type": "object",
            "required": ["type", "rules"],
            "properties": {
              "type": { "enum": ["ai", "custom", "keyword", "pattern"] },
              "confidence": { "type": "number", "minimum": 0, "maximum": 1 },
              "rules": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["condition", "action", "message"],
                  "properties": {
                    "condition": { "type": "string", "minLength": 1 },
                    "action": { "enum": ["exempt", "flag", "recommend", "require"] },
                    "message": { "type": "string" },
                    "priority": { "type": "integer" }
                  }
                }
              }
            }
          },
          "exemptions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["condition", "reason"],
              "properties": {
                "condition": { "type": "string" },
                "reason": { "type": "string" },
                "valid_until": { "type": "string" }
              }
            }
          },
          "version": { "type": "string" }
        }
      }
    }
  }
}`

var ruleSchemaLoader = gojsonschema.NewStringLoader(ruleSchemaJSON)

// ruleFile is the on-disk shape of rules.yaml.
type ruleFile struct {
	Rules []*compliance.ComplianceRule `yaml:"rules"`
}

// LoadRules reads and schema-validates the workspace rule file. A
// missing file is not an error: the built-in rule set stands alone.
func (r *FilesystemRepository) LoadRules() ([]*compliance.ComplianceRule, error) {
	retryer := retry.New[[]*compliance.ComplianceRule](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]*compliance.ComplianceRule, error) {
		path, err := r.ResolvePath(RulesFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read rules file: %w", err)
		}

		if err := validateRuleFile(data); err != nil {
			return nil, err
		}

		var file ruleFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
		}
		return file.Rules, nil
	})
}

// SaveRules writes the rule file back out.
func (r *FilesystemRepository) SaveRules(rules []*compliance.ComplianceRule) error {
	path, err := r.ResolvePath(RulesFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(ruleFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// validateRuleFile checks the YAML document against the rule schema.
func validateRuleFile(data []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse rules file: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to normalize rules file: %w", err)
	}

	result, err := gojsonschema.Validate(ruleSchemaLoader, gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to validate rules file: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("rules file is invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}
