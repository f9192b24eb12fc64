//go:build !darwin && !linux && !windows

package idle

func newSampler(config Config) (Sampler, error) {
	return nil, ErrUnsupported
}
