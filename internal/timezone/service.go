package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// Service resolves the local timezone of a coordinate
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	GetLocation(latitude, longitude float64) (*time.Location, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	once     sync.Once
	initErr  error
)

// NewService creates or returns the singleton timezone service.
// tzf.Finder keeps the timezone polygons in memory, so it is loaded once.
func NewService() (Service, error) {
	once.Do(func() {
		finder, findErr := tzf.NewDefaultFinder()
		if findErr != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", findErr)
			return
		}
		instance = &service{
			finder: finder,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates,
// e.g. "Asia/Kolkata" or "Europe/London"
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timezone := s.finder.GetTimezoneName(longitude, latitude)
	if timezone == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}

	return timezone, nil
}

// GetLocation returns the loaded *time.Location for the given coordinates
func (s *service) GetLocation(latitude, longitude float64) (*time.Location, error) {
	name, err := s.GetTimezone(latitude, longitude)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone location %s: %w", name, err)
	}

	return loc, nil
}
