package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"business-agent-service/internal/agent/repository"
	"business-agent-service/internal/model"
	"business-agent-service/pkg/log"
)

// Store loads business profiles from a directory of <business_id>.json
// files once at startup. Profiles are validated at load: a structurally
// broken file fails the whole load instead of failing at first use.
type Store struct {
	l        log.Logger
	profiles map[string]model.BusinessProfile
}

// New reads and validates every profile in dir.
func New(l log.Logger, dir string) (*Store, error) {
	ctx := context.Background()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents dir %s: %w", dir, err)
	}

	profiles := make(map[string]model.BusinessProfile)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
		}

		var profile model.BusinessProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
		}
		if profile.ID == "" {
			profile.ID = strings.TrimSuffix(entry.Name(), ".json")
		}
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}

		warnUnextractableParams(ctx, l, profile)
		profiles[profile.ID] = profile
	}

	l.Infof(ctx, "loaded %d business profiles from %s", len(profiles), dir)
	return &Store{l: l, profiles: profiles}, nil
}

// warnUnextractableParams flags declared parameter types that have no
// extraction rule and no default; such parameters can never be filled.
func warnUnextractableParams(ctx context.Context, l log.Logger, profile model.BusinessProfile) {
	for id, action := range profile.Agent.Actions {
		for _, p := range action.Parameters {
			if p.Type != "string" && p.Default == nil {
				l.Warnf(ctx, "business %s action %s: parameter %q has type %q with no extraction rule and no default",
					profile.ID, id, p.Name, p.Type)
			}
		}
	}
}

// GetBusiness returns the profile for the given business ID.
func (s *Store) GetBusiness(ctx context.Context, businessID string) (model.BusinessProfile, error) {
	profile, ok := s.profiles[businessID]
	if !ok {
		return model.BusinessProfile{}, repository.ErrBusinessNotFound
	}
	return profile, nil
}
