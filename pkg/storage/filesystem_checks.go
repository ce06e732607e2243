package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/fortify/retry"

	"github.com/lexguard/lexguard/pkg/domain/compliance"
)

// Compile-time check that the repository implements CheckStore
var _ compliance.CheckStore = (*FilesystemRepository)(nil)

// SaveChecks replaces the stored checks for one document.
func (r *FilesystemRepository) SaveChecks(documentID string, checks []compliance.ComplianceCheck) error {
	all, err := r.LoadAllChecks()
	if err != nil {
		return err
	}
	if all == nil {
		all = make(map[string][]compliance.ComplianceCheck)
	}
	all[documentID] = checks

	path, err := r.ResolvePath(ChecksFile)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checks: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadChecks returns the stored checks for one document.
func (r *FilesystemRepository) LoadChecks(documentID string) ([]compliance.ComplianceCheck, error) {
	all, err := r.LoadAllChecks()
	if err != nil {
		return nil, err
	}
	return all[documentID], nil
}

// LoadAllChecks returns every stored check keyed by document ID.
func (r *FilesystemRepository) LoadAllChecks() (map[string][]compliance.ComplianceCheck, error) {
	retryer := retry.New[map[string][]compliance.ComplianceCheck](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (map[string][]compliance.ComplianceCheck, error) {
		path, err := r.ResolvePath(ChecksFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return map[string][]compliance.ComplianceCheck{}, nil
			}
			return nil, fmt.Errorf("failed to read checks file: %w", err)
		}

		var all map[string][]compliance.ComplianceCheck
		if err := json.Unmarshal(data, &all); err != nil {
			return nil, fmt.Errorf("failed to unmarshal checks: %w", err)
		}
		return all, nil
	})
}
