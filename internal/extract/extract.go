// Package extract converts raw scraping payloads (profile HTML or a
// provider's structured profile-details object) into types.ProfileMetadata.
//
// Extraction never fails past this package: payloads that cannot be trusted
// produce the placeholder profile returned by Placeholder.
package extract

import (
	"fmt"

	"github.com/jonathan/redflag/internal/types"
)

// NoBio is the bio used when the source has none.
const NoBio = "No bio available"

// Placeholder returns the sentinel profile for a username whose data could
// not be fetched or trusted.
func Placeholder(username string) types.ProfileMetadata {
	return types.ProfileMetadata{
		Username:    username,
		Bio:         fmt.Sprintf("Unable to access profile data for @%s. The profile may be private or unavailable.", username),
		Captions:    []string{},
		Placeholder: true,
	}
}
