package api

// sessionRequest is the gateway request body. Token is decoded untyped so that
// a present-but-wrong-typed token is distinguishable from a missing one in logs.
type sessionRequest struct {
	Token any `json:"token"`
}

type successResponse struct {
	Success bool `json:"success"`
}
