// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package ingest

import (
	"strings"

	"github.com/tomtom215/borderwatch/internal/models"
)

// Keyword sets for article triage. Matching is case-insensitive substring
// over title plus description.
var (
	criticalWords = []string{
		"attack", "kill", "dead", "bomb", "kidnap", "abduct", "bandit",
		"terrorist", "massacre", "ambush", "explosion", "slain", "murder",
		"slaughter", "behead",
	}

	highWords = []string{
		"arrest", "military", "operation", "raid", "security", "threat",
		"armed", "gunmen", "robbery", "ransom", "troops", "insurgent",
		"cattle rustling", "rustling",
	}

	mediumWords = []string{
		"warning", "alert", "tension", "clash", "conflict", "unrest",
		"crisis", "displaced", "refugee", "protest", "smuggling", "border",
	}

	// regionWords scope articles to the monitored state, its subregions,
	// and the bordering states and countries whose incidents spill over.
	regionWords = []string{
		"kebbi", "birnin kebbi", "argungu", "yauri", "zuru", "sakaba",
		"fakai", "wasagu", "danko", "jega", "bunza", "kalgo", "aleiro",
		"augie", "bagudo", "dandi", "gwandu", "maiyama", "ngaski",
		"arewa dandi", "shanga", "suru", "koko", "besse",
		"sokoto", "zamfara", "niger state", "katsina",
		"niger republic", "benin republic", "benin",
		"northwest nigeria", "north west", "north-west", "sahel",
		"cross-border", "border security", "border attack",
	}

	nearbyStateWords = []string{"kaduna", "kano", "plateau", "borno", "yobe", "adamawa"}

	// incidentWords gate relevance: an article must describe a concrete
	// security incident, not merely mention the region.
	incidentWords = []string{
		"attack", "kill", "dead", "bomb", "kidnap", "abduct", "bandit",
		"terrorist", "massacre", "ambush", "explosion", "slain", "murder",
		"slaughter", "behead", "raid", "firefight", "clash",
	}

	// politicalNoiseWords reject general political coverage that happens to
	// use security vocabulary.
	politicalNoiseWords = []string{
		"election", "campaign", "vote", "party", "senator", "senate",
		"impeach", "health security", "food security", "foreign aid",
		"job seeker", "recruitment", "bar association",
	}
)

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// ClassifySeverity buckets an article by its most severe keyword match.
func ClassifySeverity(text string) models.Severity {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, criticalWords):
		return models.SeverityCritical
	case containsAny(lower, highWords):
		return models.SeverityHigh
	case containsAny(lower, mediumWords):
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// ClassifyCategory assigns an article to a threat category. The first
// matching category wins; anything unmatched is "general".
func ClassifyCategory(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, []string{"military", "army", "soldier", "troop", "defense", "airforce", "navy"}):
		return "military"
	case containsAny(lower, []string{"bandit", "kidnap", "robbery", "crime", "criminal"}):
		return "criminal"
	case containsAny(lower, []string{"terror", "boko haram", "iswap", "insurgent"}):
		return "terrorism"
	case containsAny(lower, []string{"political", "governor", "government", "election"}):
		return "political"
	default:
		return "general"
	}
}

// IsSecurityRelated reports whether an article describes a concrete
// security incident in or near the monitored region. Political noise is
// rejected outright; everything else must pair an incident keyword with a
// regional mention.
func IsSecurityRelated(text string) bool {
	lower := strings.ToLower(text)

	if containsAny(lower, politicalNoiseWords) {
		return false
	}
	if !containsAny(lower, incidentWords) {
		return false
	}
	if containsAny(lower, regionWords) || containsAny(lower, nearbyStateWords) {
		return true
	}
	return strings.Contains(lower, "northwest")
}
