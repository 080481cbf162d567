package onboarding

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ajwalsh/piggy/internal/cache"
)

// ErrNoProfile is returned when the cache holds no profile for the owner.
var ErrNoProfile = errors.New("onboarding profile not found")

// Route is the post-auth destination.
type Route string

const (
	RouteDashboard  Route = "dashboard"
	RouteOnboarding Route = "onboarding"
)

type Service struct {
	cache *cache.Store
}

func NewService(c *cache.Store) *Service {
	return &Service{cache: c}
}

// Load reads the owner's profile from the local cache.
func (s *Service) Load(ownerID uuid.UUID) (*Profile, error) {
	p, err := cache.GetJSON[Profile](s.cache, profileKey(ownerID))
	if err != nil {
		if errors.Is(err, cache.ErrNoEntry) {
			return nil, ErrNoProfile
		}

		return nil, err
	}

	return p, nil
}

// Save persists the profile, stamping CreatedAt on first save.
func (s *Service) Save(p *Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	p.LastUpdated = now

	return cache.PutJSON(s.cache, profileKey(p.OwnerID), p)
}

// Complete validates the wizard, marks setup done, persists the profile and
// purges cache entries belonging to other owners so a fresh account never
// sees a previous user's data.
func (s *Service) Complete(p *Profile) error {
	if err := p.validateComplete(); err != nil {
		return err
	}

	p.SetupComplete = true
	if err := s.Save(p); err != nil {
		return err
	}

	return s.cache.PurgeUserScoped(p.OwnerID.String())
}

// DecidePostAuthRoute picks the owner's landing page from cache contents
// alone: Dashboard exactly when a completed profile exists, Onboarding
// otherwise. No network involved, so it is deterministic and testable
// without a live backend.
func DecidePostAuthRoute(c *cache.Store, ownerID uuid.UUID) Route {
	p, err := cache.GetJSON[Profile](c, profileKey(ownerID))
	if err != nil || !p.SetupComplete {
		return RouteOnboarding
	}

	return RouteDashboard
}

func profileKey(ownerID uuid.UUID) string {
	return cache.Key("onboarding", ownerID.String())
}
