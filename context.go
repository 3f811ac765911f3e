package authflow

import "context"

type deviceIDContextKey struct{}
type regionContextKey struct{}

// WithDeviceID attaches a device identifier to ctx. Audit events emitted
// under this context record it in place of the engine's install ID.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

// WithRegion attaches an ISO 3166-1 alpha-2 region code to ctx. The
// classifier uses it as the default country for phone-number parsing in
// place of [ClassifierConfig.DefaultRegion].
func WithRegion(ctx context.Context, region string) context.Context {
	return context.WithValue(ctx, regionContextKey{}, region)
}

func deviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	deviceID, _ := ctx.Value(deviceIDContextKey{}).(string)
	return deviceID
}

func regionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	region, _ := ctx.Value(regionContextKey{}).(string)
	return region
}
