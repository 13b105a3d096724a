// Package simulator generates synthetic crossing records so a fresh
// deployment has data to exercise storage, export and the historical
// endpoints.
package simulator

// Config controls the synthetic data generator.
type Config struct {
	// Days of history to generate, counting back from today.
	Days int `json:"days"`
	// CrossingsPerDay is the number of records per day.
	CrossingsPerDay int `json:"crossings_per_day"`
	// Seed fixes the random source; 0 derives one from the clock.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Days <= 0 {
		c.Days = 7
	}
	if c.CrossingsPerDay <= 0 {
		c.CrossingsPerDay = 48
	}
}
