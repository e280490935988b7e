package spots

// Fallback coordinate when a game's city cannot be resolved (central London).
const (
	DefaultCenterLng = -0.118092
	DefaultCenterLat = 51.509865
)

// Fixed copy used whenever the source free-text fields are blank, so the
// detail view never renders an empty section.
var (
	defaultDescriptionPoints = []string{
		"Hosted session led by friendly local organisers.",
		"Secure a spot early and meet players at a similar level.",
		"All skill levels welcome – bring a positive vibe and energy.",
	}

	defaultRules = []string{
		"Arrive 10 minutes early to warm up and meet everyone.",
		"Respect fellow players and rotate so everyone gets game time.",
		"Let the organiser know if you can no longer attend.",
	}
)

const (
	defaultLocationNote       = "Exact venue details shared after confirmation."
	defaultDescription        = "Join fellow players for an exciting community-run session."
	defaultCancellationPolicy = "Please contact the organiser for the latest cancellation policy."
	defaultSportCode          = "SPORT"
	defaultAbilityLabel       = "All levels"
	defaultGenderLabel        = "Mixed"
	defaultHostName           = "PlayBud Host"
	hostHandle                = "@playbud"
	teamSheetNote             = "Host is playing too – team sheet includes organiser."
)
