package rrect

// Option configures a Generator during creation.
//
// Example:
//
//	// Smoother corners, oversized radii clamped instead of rejected
//	g := rrect.NewGenerator(
//	    rrect.WithTrianglesPerCorner(12),
//	    rrect.WithRadiusPolicy(rrect.RadiusClamp),
//	)
type Option func(*options)

// DefaultTrianglesPerCorner is the number of fan triangles emitted per
// rounded corner when no option overrides it.
const DefaultTrianglesPerCorner = 6

// MaxTrianglesPerCorner is the largest fan size whose mesh still fits a
// uint16 index buffer.
const MaxTrianglesPerCorner = (1<<16 - quadCount*verticesPerQuad) / (cornerCount * verticesPerTriangle)

// options holds optional configuration for Generator creation.
type options struct {
	trianglesPerCorner int
	radiusPolicy       RadiusPolicy
}

// defaultOptions returns the default generator options.
func defaultOptions() options {
	return options{
		trianglesPerCorner: DefaultTrianglesPerCorner,
		radiusPolicy:       RadiusReject,
	}
}

// WithTrianglesPerCorner sets the number of triangles in each corner fan.
// Values below 1 keep the default; values above MaxTrianglesPerCorner are
// capped.
func WithTrianglesPerCorner(n int) Option {
	return func(o *options) {
		if n < 1 {
			return
		}
		o.trianglesPerCorner = min(n, MaxTrianglesPerCorner)
	}
}

// WithRadiusPolicy selects how radii larger than half the shorter side of
// the surface are handled.
func WithRadiusPolicy(p RadiusPolicy) Option {
	return func(o *options) {
		o.radiusPolicy = p
	}
}

// RadiusPolicy decides what happens to a radius that exceeds half the
// shorter side of the surface.
type RadiusPolicy int

const (
	// RadiusReject fails with an InvalidRadius DomainError.
	RadiusReject RadiusPolicy = iota

	// RadiusClamp limits the radius to half the shorter side.
	RadiusClamp

	// RadiusUnchecked emits the radius as given. Opposite corners then
	// overlap and the mesh self-intersects.
	RadiusUnchecked
)

// String returns the policy name as accepted by ParseRadiusPolicy.
func (p RadiusPolicy) String() string {
	switch p {
	case RadiusReject:
		return "reject"
	case RadiusClamp:
		return "clamp"
	case RadiusUnchecked:
		return "unchecked"
	default:
		return "unknown"
	}
}

// ParseRadiusPolicy parses a policy name produced by RadiusPolicy.String.
func ParseRadiusPolicy(s string) (RadiusPolicy, bool) {
	switch s {
	case "reject":
		return RadiusReject, true
	case "clamp":
		return RadiusClamp, true
	case "unchecked":
		return RadiusUnchecked, true
	}
	return RadiusReject, false
}
