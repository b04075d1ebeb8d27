package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// admin access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// StorageName is the ledger namespace owning every tracked icon record.
const StorageName = "phpbb_pwakit"

// DefaultIconDir is the storage root used when none is configured.
const DefaultIconDir = "images/site_icons"
