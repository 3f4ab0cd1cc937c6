package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the access
// token on outbound requests.
const AccessTokenHeaderName = "access_token"

// IntegrationID identifies this integration to the Bynder usage API. The
// portal replaces all usages previously reported under the same id.
const IntegrationID = "b242c16d-70f4-4101-8df5-87b35bbe56f0"
