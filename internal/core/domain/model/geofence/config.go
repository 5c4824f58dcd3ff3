package geofence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tracking/internal/core/domain/model/kernel"
)

// serviceAreasFile mirrors the YAML layout of the service-area configuration.
type serviceAreasFile struct {
	ServiceAreas []serviceAreaEntry `yaml:"serviceAreas"`
}

type serviceAreaEntry struct {
	Name         string  `yaml:"name"`
	Latitude     float64 `yaml:"latitude"`
	Longitude    float64 `yaml:"longitude"`
	RadiusMeters float64 `yaml:"radiusMeters"`
}

// LoadServiceAreas reads the fixed service-area list from a YAML file.
// Every entry is validated through the ServiceArea constructor; a single
// malformed entry fails the whole load, since the area list is startup
// configuration and partial coverage would be silently wrong.
func LoadServiceAreas(path string) ([]ServiceArea, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service areas file %s: %w", path, err)
	}

	var file serviceAreasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse service areas file %s: %w", path, err)
	}

	if len(file.ServiceAreas) == 0 {
		return nil, fmt.Errorf("service areas file %s defines no areas", path)
	}

	areas := make([]ServiceArea, 0, len(file.ServiceAreas))
	for i, entry := range file.ServiceAreas {
		center, err := kernel.NewGeoPoint(entry.Latitude, entry.Longitude)
		if err != nil {
			return nil, fmt.Errorf("service area %d (%s): %w", i, entry.Name, err)
		}

		area, err := NewServiceArea(entry.Name, center, entry.RadiusMeters)
		if err != nil {
			return nil, fmt.Errorf("service area %d (%s): %w", i, entry.Name, err)
		}

		areas = append(areas, area)
	}

	return areas, nil
}
