package plugin

import (
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

// PoolPrefix marks attributes consumed by Base rather than the driver.
const PoolPrefix = "pool."

// PoolOptions tune the connection pool. Parsed from ConnectionParams.Attributes.
type PoolOptions struct {
	MaxOpen     int           `mapstructure:"pool.max_open"`
	MaxIdle     int           `mapstructure:"pool.max_idle"`
	MaxLifetime time.Duration `mapstructure:"pool.max_lifetime"`
	MaxIdleTime time.Duration `mapstructure:"pool.max_idle_time"`
}

// DefaultPoolOptions returns the options used when no pool attribute is set.
// Metadata calls are short and sequential, so the pool stays small.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxOpen:     4,
		MaxIdle:     2,
		MaxLifetime: 30 * time.Minute,
		MaxIdleTime: 5 * time.Minute,
	}
}

// DecodeAttributes decodes string attributes into out, a pointer to a struct
// with mapstructure tags. Values convert weakly: "true", "30s", "a,b".
//
// The attributes no field claimed are returned as driver pass-through
// parameters. Pool attributes are never passed through.
func DecodeAttributes(attrs map[string]string, out any) (map[string]string, error) {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		Metadata:         &md,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, &core.ConfigError{Msg: "attribute decoder", Err: err}
	}

	input := make(map[string]any, len(attrs))
	for k, v := range attrs {
		input[k] = strings.TrimSpace(v)
	}
	if err := dec.Decode(input); err != nil {
		return nil, &core.ConfigError{Msg: "invalid attributes", Err: err}
	}

	extra := make(map[string]string, len(md.Unused))
	for _, k := range md.Unused {
		if strings.HasPrefix(strings.ToLower(k), PoolPrefix) {
			continue
		}
		extra[k] = attrs[k]
	}
	return extra, nil
}

// DisplayParams renders the attributes safe to show in a URL: pool options
// and anything that looks like a credential are left out.
func DisplayParams(attrs map[string]string, sep string) string {
	shown := make(map[string]string, len(attrs))
	for k, v := range attrs {
		lower := strings.ToLower(k)
		if strings.HasPrefix(lower, PoolPrefix) || strings.Contains(lower, "password") || strings.Contains(lower, "secret") {
			continue
		}
		shown[k] = v
	}
	return JoinParams(shown, sep)
}

// JoinParams renders m as sorted key=value pairs joined by sep.
func JoinParams(m map[string]string, sep string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+m[k])
	}
	return strings.Join(parts, sep)
}
