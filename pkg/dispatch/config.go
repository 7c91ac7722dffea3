package dispatch

import "github.com/batchline/batchline/pkg/settings"

// ConfigFromSettings converts the mapstructure-backed settings block into a
// dispatcher Config. An absent batch size falls back to
// DefaultBatchMaxSize; DrainAll wins over any configured size.
func ConfigFromSettings(s settings.Dispatcher) (Config, error) {
	strategy, err := ParseAckStrategy(s.AckStrategy)
	if err != nil {
		return Config{}, err
	}

	size := s.BatchMaxSize
	if size <= 0 {
		size = DefaultBatchMaxSize
	}
	if s.DrainAll {
		size = 0
	}

	return Config{BatchMaxSize: size, AckStrategy: strategy}, nil
}
